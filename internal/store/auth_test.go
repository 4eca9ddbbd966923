package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/hubkit/internal/demo"
	"github.com/alexanderramin/hubkit/internal/domain"
	"github.com/alexanderramin/hubkit/internal/repository"
	"github.com/alexanderramin/hubkit/internal/storage"
	"github.com/alexanderramin/hubkit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openAuth(t *testing.T, kv storage.KV, policy RolePolicy, opts ...Option) *AuthStore {
	t.Helper()
	opts = append([]Option{WithDelay(0)}, opts...)
	s, err := OpenAuthStore(context.Background(), repository.NewKVUserRepo(kv), policy, opts...)
	require.NoError(t, err)
	return s
}

func TestSignIn_ShopRoles(t *testing.T) {
	tests := []struct {
		email string
		want  domain.Role
	}{
		{"admin@store.com", domain.RoleAdmin},
		{"Admin@Store.com", domain.RoleAdmin},
		{"shopper@example.com", domain.RoleUser},
		{"admin@pm.com", domain.RoleUser},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			s := openAuth(t, testutil.NewTestKV(t), ShopRoles)
			u, err := s.SignIn(context.Background(), tt.email, "anything")
			require.NoError(t, err)
			assert.Equal(t, tt.want, u.Role)
		})
	}
}

func TestSignIn_ProjectRoles(t *testing.T) {
	tests := []struct {
		email string
		want  domain.Role
	}{
		{"admin@pm.com", domain.RoleAdmin},
		{"manager@pm.com", domain.RoleManager},
		{"member@pm.com", domain.RoleMember},
		{"someone@else.org", domain.RoleMember},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			s := openAuth(t, testutil.NewTestKV(t), ProjectRoles)
			u, err := s.SignIn(context.Background(), tt.email, "pw")
			require.NoError(t, err)
			assert.Equal(t, tt.want, u.Role)
		})
	}
}

func TestSignIn_SynthesizesUser(t *testing.T) {
	clock := newFakeClock()
	s := openAuth(t, testutil.NewTestKV(t), ShopRoles, WithClock(clock.Now))

	u, err := s.SignIn(context.Background(), "ada@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "ada", u.Name)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.Equal(t, DefaultAvatar, u.Avatar)
	assert.Equal(t, clock.Now(), u.CreatedAt)
	assert.NotEmpty(t, u.ID)

	again, err := s.SignIn(context.Background(), "ADA@example.com", "other")
	require.NoError(t, err)
	assert.Equal(t, u.ID, again.ID, "sign-in ids are stable per address")
}

func TestSignIn_DirectoryUser(t *testing.T) {
	policy := ProjectRoles
	policy.Directory = demo.Users()
	s := openAuth(t, testutil.NewTestKV(t), policy)

	u, err := s.SignIn(context.Background(), "jane@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "2", u.ID)
	assert.Equal(t, "Jane Smith", u.Name)
	assert.Equal(t, domain.RoleManager, u.Role)
}

func TestSignIn_Validation(t *testing.T) {
	s := openAuth(t, testutil.NewTestKV(t), ShopRoles)
	ctx := context.Background()

	for _, tc := range []struct{ email, password string }{
		{"", "pw"},
		{"not-an-email", "pw"},
		{"a@b.c", ""},
	} {
		_, err := s.SignIn(ctx, tc.email, tc.password)
		assert.ErrorIs(t, err, domain.ErrValidation, "%q/%q", tc.email, tc.password)
	}
	assert.Nil(t, s.Current())
}

func TestSignIn_HonoursDelayAndCancellation(t *testing.T) {
	s := openAuth(t, testutil.NewTestKV(t), ShopRoles, WithDelay(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.SignIn(ctx, "a@b.c", "pw")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, s.Current())
}

func TestSignIn_WaitsForDelay(t *testing.T) {
	s := openAuth(t, testutil.NewTestKV(t), ShopRoles, WithDelay(20*time.Millisecond))

	start := time.Now()
	_, err := s.SignIn(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestSignUp(t *testing.T) {
	s := openAuth(t, testutil.NewTestKV(t), ShopRoles)
	ctx := context.Background()

	u, err := s.SignUp(ctx, "admin@store.com", "pw", "Grace Hopper")
	require.NoError(t, err)
	assert.Equal(t, "Grace Hopper", u.Name)
	assert.Equal(t, domain.RoleUser, u.Role, "sign-up always gets the default role")

	other, err := s.SignUp(ctx, "admin@store.com", "pw", "Grace Hopper")
	require.NoError(t, err)
	assert.NotEqual(t, u.ID, other.ID)

	_, err = s.SignUp(ctx, "x@y.z", "pw", "  ")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAuth_SessionSurvivesReopen(t *testing.T) {
	kv := testutil.NewTestKV(t)
	ctx := context.Background()

	first := openAuth(t, kv, ShopRoles)
	u, err := first.SignIn(ctx, "admin@store.com", "pw")
	require.NoError(t, err)

	second := openAuth(t, kv, ShopRoles)
	restored := second.Current()
	require.NotNil(t, restored)
	assert.Equal(t, u.ID, restored.ID)
	assert.True(t, restored.IsAdmin())

	require.NoError(t, second.SignOut(ctx))
	assert.Nil(t, second.Current())

	third := openAuth(t, kv, ShopRoles)
	assert.Nil(t, third.Current())
}

func TestAuth_SaveFailureKeepsPreviousUser(t *testing.T) {
	kv := &testutil.FailOnNthWriteKV{KV: storage.NewMemoryKV()}
	s := openAuth(t, kv, ShopRoles)
	ctx := context.Background()

	_, err := s.SignIn(ctx, "first@example.com", "pw")
	require.NoError(t, err)

	kv.FailAlways(errors.New("disk full"))
	_, err = s.SignIn(ctx, "second@example.com", "pw")
	require.Error(t, err)
	assert.Equal(t, "first@example.com", s.Current().Email)

	err = s.SignOut(ctx)
	require.Error(t, err)
	assert.NotNil(t, s.Current())
}

func TestAuth_CurrentIsACopy(t *testing.T) {
	s := openAuth(t, testutil.NewTestKV(t), ShopRoles)
	_, err := s.SignIn(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)

	s.Current().Name = "mutated"
	assert.Equal(t, "a", s.Current().Name)
}

func TestAuth_ReportsUseCases(t *testing.T) {
	obs := &recordingObserver{}
	s := openAuth(t, testutil.NewTestKV(t), ShopRoles, WithObserver(obs))

	_, err := s.SignIn(context.Background(), "bad", "pw")
	require.Error(t, err)

	ev := obs.last()
	assert.Equal(t, "sign-in", ev.Name)
	assert.False(t, ev.Success)
	assert.ErrorIs(t, ev.Err, domain.ErrValidation)
}
