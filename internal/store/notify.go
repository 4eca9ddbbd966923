package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/alexanderramin/hubkit/internal/domain"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// sweepSpec is how often a started relay drops expired notifications.
const sweepSpec = "@every 1s"

// NotificationRelay is an in-memory queue of transient status messages.
// Nothing is persisted; every notification expires after the TTL.
type NotificationRelay struct {
	mu      sync.Mutex
	entries []domain.Notification
	opts    options
	cron    *cron.Cron
}

func NewNotificationRelay(opts ...Option) *NotificationRelay {
	return &NotificationRelay{opts: buildOptions(0, opts)}
}

// Start runs the background sweeper until Stop.
func (r *NotificationRelay) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cron != nil {
		return nil
	}
	c := cron.New(cron.WithSeconds())
	if _, err := c.AddFunc(sweepSpec, func() { r.Sweep() }); err != nil {
		return fmt.Errorf("scheduling notification sweep: %w", err)
	}
	c.Start()
	r.cron = c
	return nil
}

// Stop halts the sweeper and waits for a running sweep to finish.
func (r *NotificationRelay) Stop() {
	r.mu.Lock()
	c := r.cron
	r.cron = nil
	r.mu.Unlock()
	if c != nil {
		<-c.Stop().Done()
	}
}

// Show queues a notification. Unknown kinds are shown as info.
func (r *NotificationRelay) Show(kind domain.NotificationKind, title, message string) domain.Notification {
	if !domain.ValidNotificationKinds[kind] {
		kind = domain.NotifyInfo
	}
	now := r.opts.now()
	n := domain.Notification{
		ID:        uuid.New().String(),
		Kind:      kind,
		Title:     title,
		Message:   message,
		CreatedAt: now,
		ExpiresAt: now.Add(r.opts.ttl),
	}

	r.mu.Lock()
	r.entries = append(r.entries, n)
	r.mu.Unlock()

	r.opts.observer.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:      "show-notification",
		StartedAt: now,
		Success:   true,
		Fields:    map[string]any{"kind": string(kind), "title": title},
	})
	return n
}

// Dismiss removes a notification before it expires. It reports whether the
// notification was still queued.
func (r *NotificationRelay) Dismiss(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.entries {
		if r.entries[i].ID == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Active returns the unexpired notifications in the order they were shown.
func (r *NotificationRelay) Active() []domain.Notification {
	now := r.opts.now()
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Notification, 0, len(r.entries))
	for _, n := range r.entries {
		if !n.Expired(now) {
			out = append(out, n)
		}
	}
	return out
}

// Sweep drops expired notifications and returns how many were removed.
func (r *NotificationRelay) Sweep() int {
	now := r.opts.now()
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.entries[:0]
	for _, n := range r.entries {
		if !n.Expired(now) {
			kept = append(kept, n)
		}
	}
	removed := len(r.entries) - len(kept)
	r.entries = kept
	return removed
}
