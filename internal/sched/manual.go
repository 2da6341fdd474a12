// Package sched provides cancellable one-shot scheduling for the game loop.
//
// The engine never owns a ticker. After every tick it arms exactly one
// callback through a Scheduler and keeps the returned cancel function, so a
// reset can invalidate a tick that has not fired yet.
package sched

import (
	"sort"
	"time"
)

// Scheduler arms a one-shot callback. The returned function cancels it;
// calling cancel after the callback ran (or twice) is a no-op.
type Scheduler interface {
	After(d time.Duration, fn func()) (cancel func())
}

// Manual is a Scheduler driven by a virtual clock. Nothing fires until the
// owner calls Advance or FireNext, which makes tick sequences reproducible.
// It is not safe for concurrent use.
type Manual struct {
	now    time.Duration
	seq    uint64
	timers []*manualTimer
}

type manualTimer struct {
	due time.Duration
	seq uint64
	fn  func()
}

// NewManual creates a manual scheduler at virtual time zero.
func NewManual() *Manual {
	return &Manual{}
}

// After schedules fn at now+d on the virtual clock.
func (m *Manual) After(d time.Duration, fn func()) func() {
	if d < 0 {
		d = 0
	}
	m.seq++
	t := &manualTimer{due: m.now + d, seq: m.seq, fn: fn}
	m.timers = append(m.timers, t)
	return func() { m.remove(t) }
}

func (m *Manual) remove(t *manualTimer) {
	for i, other := range m.timers {
		if other == t {
			m.timers = append(m.timers[:i], m.timers[i+1:]...)
			return
		}
	}
}

// Now returns the virtual time elapsed since creation.
func (m *Manual) Now() time.Duration {
	return m.now
}

// Pending returns the number of armed callbacks.
func (m *Manual) Pending() int {
	return len(m.timers)
}

// Next returns the delay until the earliest armed callback.
func (m *Manual) Next() (time.Duration, bool) {
	t := m.earliest()
	if t == nil {
		return 0, false
	}
	return t.due - m.now, true
}

// FireNext jumps the clock to the earliest armed callback and runs it.
// Returns false if nothing is armed.
func (m *Manual) FireNext() bool {
	t := m.earliest()
	if t == nil {
		return false
	}
	m.remove(t)
	m.now = t.due
	t.fn()
	return true
}

// Advance moves the clock forward by d, running every callback that becomes
// due on the way in due order. Callbacks armed while advancing also run if
// they fall inside the window.
func (m *Manual) Advance(d time.Duration) {
	end := m.now + d
	for {
		t := m.earliest()
		if t == nil || t.due > end {
			break
		}
		m.remove(t)
		m.now = t.due
		t.fn()
	}
	m.now = end
}

// earliest returns the timer due first; ties go to the one armed first.
func (m *Manual) earliest() *manualTimer {
	if len(m.timers) == 0 {
		return nil
	}
	sort.SliceStable(m.timers, func(i, j int) bool {
		if m.timers[i].due != m.timers[j].due {
			return m.timers[i].due < m.timers[j].due
		}
		return m.timers[i].seq < m.timers[j].seq
	})
	return m.timers[0]
}
