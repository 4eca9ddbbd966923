package store

import (
	"testing"
	"time"

	"github.com/alexanderramin/hubkit/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationRelay_ShowAndExpire(t *testing.T) {
	clock := newFakeClock()
	r := NewNotificationRelay(WithClock(clock.Now), WithTTL(5*time.Second))

	first := r.Show(domain.NotifySuccess, "Saved", "Cart updated")
	clock.Advance(2 * time.Second)
	second := r.Show(domain.NotifyWarning, "Low stock", "Only 2 left")

	active := r.Active()
	require.Len(t, active, 2)
	assert.Equal(t, first.ID, active[0].ID)
	assert.Equal(t, second.ID, active[1].ID)
	assert.Equal(t, clock.Now().Add(5*time.Second), second.ExpiresAt)

	clock.Advance(3 * time.Second)
	active = r.Active()
	require.Len(t, active, 1, "first expires exactly at its TTL")
	assert.Equal(t, second.ID, active[0].ID)

	assert.Equal(t, 1, r.Sweep())
	clock.Advance(2 * time.Second)
	assert.Empty(t, r.Active())
	assert.Equal(t, 1, r.Sweep())
	assert.Zero(t, r.Sweep())
}

func TestNotificationRelay_Dismiss(t *testing.T) {
	r := NewNotificationRelay()
	n := r.Show(domain.NotifyError, "Failed", "Try again")

	assert.True(t, r.Dismiss(n.ID))
	assert.False(t, r.Dismiss(n.ID))
	assert.Empty(t, r.Active())
}

func TestNotificationRelay_UnknownKindIsInfo(t *testing.T) {
	r := NewNotificationRelay()
	n := r.Show("shout", "Hi", "")
	assert.Equal(t, domain.NotifyInfo, n.Kind)
}

func TestNotificationRelay_BackgroundSweep(t *testing.T) {
	r := NewNotificationRelay(WithTTL(10 * time.Millisecond))
	require.NoError(t, r.Start())
	require.NoError(t, r.Start(), "starting twice is a no-op")
	defer r.Stop()

	r.Show(domain.NotifyInfo, "Soon gone", "")

	require.Eventually(t, func() bool {
		r.mu.Lock()
		defer r.mu.Unlock()
		return len(r.entries) == 0
	}, 3*time.Second, 50*time.Millisecond)
}

func TestNotificationRelay_StopWithoutStart(t *testing.T) {
	r := NewNotificationRelay()
	assert.NotPanics(t, r.Stop)
}
