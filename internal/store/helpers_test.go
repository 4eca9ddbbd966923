package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/hubkit/internal/repository"
	"github.com/alexanderramin/hubkit/internal/storage"
	"github.com/alexanderramin/hubkit/internal/testutil"
)

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingObserver) last() UseCaseEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return UseCaseEvent{}
	}
	return r.events[len(r.events)-1]
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// shopFixture wires the storefront stores over one KV with no delays.
type shopFixture struct {
	kv       storage.KV
	auth     *AuthStore
	cart     *CartStore
	notices  *NotificationRelay
	checkout *Checkout
	clock    *fakeClock
}

func newShopFixture(t *testing.T, kv storage.KV) *shopFixture {
	t.Helper()
	ctx := context.Background()
	clock := newFakeClock()

	auth, err := OpenAuthStore(ctx, repository.NewKVUserRepo(kv), ShopRoles, WithDelay(0), WithClock(clock.Now))
	if err != nil {
		t.Fatalf("opening auth store: %v", err)
	}
	cart, err := OpenCartStore(ctx, repository.NewKVCartRepo(kv))
	if err != nil {
		t.Fatalf("opening cart store: %v", err)
	}
	notices := NewNotificationRelay(WithClock(clock.Now))
	checkout := NewCheckout(auth, cart, repository.NewKVOrderRepo(kv), notices, WithDelay(0), WithClock(clock.Now))
	return &shopFixture{kv: kv, auth: auth, cart: cart, notices: notices, checkout: checkout, clock: clock}
}

func newProjectStore(t *testing.T, kv storage.KV, opts ...Option) *ProjectStore {
	t.Helper()
	s, err := OpenProjectStore(context.Background(), repository.NewKVProjectRepo(kv), opts...)
	if err != nil {
		t.Fatalf("opening project store: %v", err)
	}
	return s
}

// emptyProjectStore returns a store whose persisted collection starts empty,
// skipping the demo seed.
func emptyProjectStore(t *testing.T, opts ...Option) (*ProjectStore, storage.KV) {
	t.Helper()
	kv := testutil.NewTestKV(t)
	if err := repository.NewKVProjectRepo(kv).Save(context.Background(), nil); err != nil {
		t.Fatalf("seeding empty projects: %v", err)
	}
	return newProjectStore(t, kv, opts...), kv
}
