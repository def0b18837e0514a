// Package feed keeps a remote value fresh with the cheapest source
// available: realtime pushes when the socket delivers them, HTTP polling
// only when pushes go quiet. Pushing resets a staleness clock; the poll
// ticker skips its fetch while the last push is still fresh.
package feed

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/rvalverde/wheelhouse/internal/logging"
)

// FetchFunc retrieves the current value from the backend.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Feed is a push-preferred subscription for one value.
type Feed[T any] struct {
	clock      clockwork.Clock
	log        logging.Logger
	fetch      FetchFunc[T]
	interval   time.Duration
	staleAfter time.Duration

	mu          sync.Mutex
	value       T
	haveValue   bool
	lastPush    time.Time
	subscribers []func(T)
}

// New builds a feed that polls every interval, unless a push arrived within
// staleAfter.
func New[T any](clock clockwork.Clock, log logging.Logger, fetch FetchFunc[T], interval, staleAfter time.Duration) *Feed[T] {
	return &Feed[T]{
		clock:      clock,
		log:        log,
		fetch:      fetch,
		interval:   interval,
		staleAfter: staleAfter,
	}
}

// Push installs a value delivered over the socket and defers the next poll.
func (f *Feed[T]) Push(v T) {
	f.mu.Lock()
	f.value = v
	f.haveValue = true
	f.lastPush = f.clock.Now()
	subs := f.snapshot()
	f.mu.Unlock()

	for _, fn := range subs {
		fn(v)
	}
}

// Value returns the last known value, pushed or polled.
func (f *Feed[T]) Value() (T, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value, f.haveValue
}

// Subscribe registers a callback for every new value.
func (f *Feed[T]) Subscribe(fn func(T)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subscribers = append(f.subscribers, fn)
}

// Refresh forces one fetch regardless of staleness. Failures keep the last
// good value.
func (f *Feed[T]) Refresh(ctx context.Context) error {
	v, err := f.fetch(ctx)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.value = v
	f.haveValue = true
	subs := f.snapshot()
	f.mu.Unlock()

	for _, fn := range subs {
		fn(v)
	}
	return nil
}

// Run polls until ctx is done. A poll error is logged and swallowed so a
// flaky backend cannot blank the UI.
func (f *Feed[T]) Run(ctx context.Context) {
	ticker := f.clock.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			f.mu.Lock()
			fresh := !f.lastPush.IsZero() && f.clock.Now().Sub(f.lastPush) < f.staleAfter
			f.mu.Unlock()
			if fresh {
				continue
			}
			if err := f.Refresh(ctx); err != nil {
				f.log.Warn(ctx, "poll failed, keeping last value", "err", err.Error())
			}
		}
	}
}

// snapshot copies subscribers; callers hold f.mu.
func (f *Feed[T]) snapshot() []func(T) {
	subs := make([]func(T), len(f.subscribers))
	copy(subs, f.subscribers)
	return subs
}
