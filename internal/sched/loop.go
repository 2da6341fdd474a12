package sched

import (
	"context"
	"time"
)

// Loop serializes work onto a single goroutine. Input handlers and timers
// post functions; Run executes them one at a time, so code running inside the
// loop needs no locking.
type Loop struct {
	events chan func()
	done   chan struct{}
}

// NewLoop creates a loop with the given event buffer size.
func NewLoop(buffer int) *Loop {
	return &Loop{
		events: make(chan func(), buffer),
		done:   make(chan struct{}),
	}
}

// Post queues fn for execution on the loop goroutine. It returns false if
// the loop has already stopped.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.events <- fn:
		return true
	case <-l.done:
		return false
	}
}

// After arms fn to run on the loop goroutine after d. The cancel function
// must be called from the loop goroutine; a cancelled callback that was
// already queued is skipped when dequeued.
func (l *Loop) After(d time.Duration, fn func()) func() {
	cancelled := false
	timer := time.AfterFunc(d, func() {
		l.Post(func() {
			if !cancelled {
				fn()
			}
		})
	})
	return func() {
		cancelled = true
		timer.Stop()
	}
}

// Run executes posted functions until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.events:
			fn()
		}
	}
}

// Done is closed once Run has returned.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
