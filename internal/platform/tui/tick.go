// Package tui provides the Bubble Tea frontend and the SSH server.
// It handles the terminal UI loop, input mapping and tick delivery.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// tickMsg delivers one armed engine tick back into the update loop.
type tickMsg struct {
	id uint64
}

// teaScheduler is a sched.Scheduler for Bubble Tea. Timers become tea.Tick
// commands that come back as tickMsg, so callbacks always run on the update
// goroutine. A cancelled id is forgotten and its message is dropped.
type teaScheduler struct {
	next    uint64
	pending map[uint64]func()
	queued  []tea.Cmd
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{pending: make(map[uint64]func())}
}

// After arms fn. The command is queued until the next Drain.
func (s *teaScheduler) After(d time.Duration, fn func()) func() {
	s.next++
	id := s.next
	s.pending[id] = fn
	s.queued = append(s.queued, tea.Tick(d, func(time.Time) tea.Msg {
		return tickMsg{id: id}
	}))
	return func() { delete(s.pending, id) }
}

// Fire runs the callback for id unless it was cancelled or already fired.
func (s *teaScheduler) Fire(id uint64) bool {
	fn, ok := s.pending[id]
	if !ok {
		return false
	}
	delete(s.pending, id)
	fn()
	return true
}

// Pending returns the number of armed callbacks.
func (s *teaScheduler) Pending() int {
	return len(s.pending)
}

// Drain returns the queued tick commands as one batch, or nil.
func (s *teaScheduler) Drain() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := s.queued
	s.queued = nil
	return tea.Batch(cmds...)
}
