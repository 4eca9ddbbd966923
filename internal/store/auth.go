package store

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/alexanderramin/hubkit/internal/domain"
	"github.com/alexanderramin/hubkit/internal/repository"
	"github.com/google/uuid"
)

// DefaultAvatar is assigned to every synthesized user.
const DefaultAvatar = "https://images.pexels.com/photos/1239291/pexels-photo-1239291.jpeg?auto=compress&cs=tinysrgb&w=400"

// signInNamespace seeds the deterministic ids handed out by SignIn.
var signInNamespace = uuid.MustParse("6f1c7a52-3d4e-4b8a-9f0e-2c5d8a7b1e93")

// RolePolicy decides the role of a synthesized user. Credentials are never
// checked; the sentinel addresses only pick a demo role.
type RolePolicy struct {
	Sentinels map[string]domain.Role
	Default   domain.Role
	// Directory maps known addresses to existing users, so signing in as a
	// team member keeps their id and profile.
	Directory []domain.User
}

// ShopRoles is the storefront policy.
var ShopRoles = RolePolicy{
	Sentinels: map[string]domain.Role{"admin@store.com": domain.RoleAdmin},
	Default:   domain.RoleUser,
}

// ProjectRoles is the project-management policy. Callers typically add the
// demo team as the Directory.
var ProjectRoles = RolePolicy{
	Sentinels: map[string]domain.Role{
		"admin@pm.com":   domain.RoleAdmin,
		"manager@pm.com": domain.RoleManager,
	},
	Default: domain.RoleMember,
}

// RoleFor returns the role a sign-in with email receives.
func (p RolePolicy) RoleFor(email string) domain.Role {
	if r, ok := p.Sentinels[normalizeEmail(email)]; ok {
		return r
	}
	return p.Default
}

func (p RolePolicy) lookup(email string) (domain.User, bool) {
	key := normalizeEmail(email)
	for _, u := range p.Directory {
		if normalizeEmail(u.Email) == key {
			return u, true
		}
	}
	return domain.User{}, false
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// AuthStore holds the current user.
type AuthStore struct {
	mu      sync.Mutex
	repo    repository.UserRepo
	policy  RolePolicy
	current *domain.User
	opts    options
}

// OpenAuthStore restores a previously persisted user, if any, without
// re-validating it.
func OpenAuthStore(ctx context.Context, repo repository.UserRepo, policy RolePolicy, opts ...Option) (*AuthStore, error) {
	s := &AuthStore{repo: repo, policy: policy, opts: buildOptions(DefaultAuthDelay, opts)}
	u, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("restoring session: %w", err)
	}
	s.current = u
	return s, nil
}

// Current returns a copy of the signed-in user, or nil.
func (s *AuthStore) Current() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	u := *s.current
	return &u
}

// SignIn synthesizes a user for email after the simulated delay. Any
// non-empty password is accepted.
func (s *AuthStore) SignIn(ctx context.Context, email, password string) (user *domain.User, err error) {
	done := observe(ctx, s.opts, "sign-in", map[string]any{"email": email})
	defer func() { done(err) }()

	if err = validateCredentials(email, password); err != nil {
		return nil, err
	}
	if err = wait(ctx, s.opts.delay); err != nil {
		return nil, err
	}

	email = strings.TrimSpace(email)
	u, known := s.policy.lookup(email)
	if !known {
		u = domain.User{
			ID:     uuid.NewSHA1(signInNamespace, []byte(normalizeEmail(email))).String(),
			Email:  email,
			Name:   strings.SplitN(email, "@", 2)[0],
			Role:   s.policy.RoleFor(email),
			Avatar: DefaultAvatar,
		}
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.opts.now()
	}
	return s.setCurrent(ctx, &u)
}

// SignUp registers a fresh user with the default role after the simulated
// delay.
func (s *AuthStore) SignUp(ctx context.Context, email, password, name string) (user *domain.User, err error) {
	done := observe(ctx, s.opts, "sign-up", map[string]any{"email": email})
	defer func() { done(err) }()

	if err = validateCredentials(email, password); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if err = wait(ctx, s.opts.delay); err != nil {
		return nil, err
	}

	u := &domain.User{
		ID:        uuid.New().String(),
		Email:     strings.TrimSpace(email),
		Name:      strings.TrimSpace(name),
		Role:      s.policy.Default,
		Avatar:    DefaultAvatar,
		CreatedAt: s.opts.now(),
	}
	return s.setCurrent(ctx, u)
}

// SignOut clears the current user and its persisted entry.
func (s *AuthStore) SignOut(ctx context.Context) (err error) {
	done := observe(ctx, s.opts, "sign-out", nil)
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err = s.repo.Clear(ctx); err != nil {
		return err
	}
	s.current = nil
	return nil
}

func (s *AuthStore) setCurrent(ctx context.Context, u *domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.Save(ctx, u); err != nil {
		return nil, err
	}
	s.current = u
	out := *u
	return &out, nil
}

func validateCredentials(email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	if !strings.Contains(email, "@") {
		return fmt.Errorf("%w: %q is not an email address", domain.ErrValidation, email)
	}
	if password == "" {
		return fmt.Errorf("%w: password is required", domain.ErrValidation)
	}
	return nil
}
