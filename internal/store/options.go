// Package store holds the application state containers: the signed-in user,
// the cart, orders, projects and tasks, and transient notifications. Every
// mutation is applied to a copy, persisted, and only then made visible.
package store

import (
	"context"
	"time"
)

// Simulated latencies of the original mock backends.
const (
	DefaultAuthDelay     = time.Second
	DefaultCheckoutDelay = 3 * time.Second
	DefaultTTL           = 5 * time.Second
)

type options struct {
	now      func() time.Time
	observer UseCaseObserver
	delay    time.Duration
	ttl      time.Duration
}

// Option configures a store.
type Option func(*options)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithObserver reports every use case to obs.
func WithObserver(obs UseCaseObserver) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// WithDelay sets the simulated backend latency. Zero disables it.
func WithDelay(d time.Duration) Option {
	return func(o *options) {
		o.delay = d
	}
}

// WithTTL sets how long a notification stays visible.
func WithTTL(d time.Duration) Option {
	return func(o *options) {
		o.ttl = d
	}
}

func buildOptions(defaultDelay time.Duration, opts []Option) options {
	o := options{
		now:      func() time.Time { return time.Now().UTC() },
		observer: NoopUseCaseObserver{},
		delay:    defaultDelay,
		ttl:      DefaultTTL,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// wait blocks for d or until ctx is done.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
