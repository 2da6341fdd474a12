// Package session binds one game engine to a player: it wires the
// frontend's collaborators, logs round transitions and records every
// finished round in the ledger.
package session

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/caterpillar/internal/core"
	"github.com/vovakirdan/caterpillar/internal/games/caterpillar"
	"github.com/vovakirdan/caterpillar/internal/sched"
	"github.com/vovakirdan/caterpillar/internal/storage"
)

// Ledger receives finished rounds. *storage.Store implements it.
type Ledger interface {
	SaveRound(r storage.RoundRecord) (int64, error)
}

// Options configures a session.
type Options struct {
	ID     string // player id, e.g. local user or SSH user
	Logger *log.Logger
	Ledger Ledger // optional
	Game   caterpillar.Options
	Now    func() time.Time // defaults to time.Now
}

// Session owns a single engine. Like the engine it is driven from one
// goroutine.
type Session struct {
	id     string
	engine *caterpillar.Engine
	logger *log.Logger
	ledger Ledger
	now    func() time.Time

	lastState  caterpillar.RoundState
	roundStart time.Time
	rounds     []storage.RoundRecord
}

// New creates the session and its engine. Scheduled ticks are wrapped so
// that every tick is observed. The engine is reset before New returns.
func New(opts Options) *Session {
	s := &Session{
		id:     opts.ID,
		logger: opts.Logger,
		ledger: opts.Ledger,
		now:    opts.Now,
	}
	if s.id == "" {
		s.id = "local"
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.logger = s.logger.With("session", s.id)

	game := opts.Game
	inner := game.Scheduler
	if inner == nil {
		inner = sched.NewManual()
	}
	game.Scheduler = observed{inner: inner, s: s}

	s.engine = caterpillar.New(game)
	s.engine.Reset()
	s.lastState = s.engine.State()
	return s
}

// ID returns the player id.
func (s *Session) ID() string { return s.id }

// Engine returns the underlying engine.
func (s *Session) Engine() *caterpillar.Engine { return s.engine }

// Handle forwards an input action to the engine and observes the result.
func (s *Session) Handle(a core.Action) {
	s.engine.HandleAction(a)
	s.Observe()
}

// Rounds returns the rounds this session finished, oldest first.
func (s *Session) Rounds() []storage.RoundRecord {
	out := make([]storage.RoundRecord, len(s.rounds))
	copy(out, s.rounds)
	return out
}

// Observe compares the engine state with the last observed one. It logs
// transitions and records a finished round exactly once.
func (s *Session) Observe() {
	state := s.engine.State()
	if state == s.lastState {
		return
	}
	prev := s.lastState
	s.lastState = state

	switch {
	case state == caterpillar.StateRunning:
		s.roundStart = s.now()
		s.logger.Info("round started")
	case state.Ended() && !prev.Ended():
		s.finishRound(state == caterpillar.StateWon)
	case state == caterpillar.StateNotStarted:
		s.logger.Debug("round reset", "high_score", s.engine.HighScore())
	}
}

func (s *Session) finishRound(won bool) {
	snap := s.engine.Snapshot()

	var elapsed time.Duration
	if !s.roundStart.IsZero() {
		elapsed = s.now().Sub(s.roundStart)
	}

	rec := storage.RoundRecord{
		Session:   s.id,
		Score:     snap.Score,
		Won:       won,
		Length:    snap.Length(),
		Ticks:     snap.Tick,
		Duration:  elapsed,
		CreatedAt: s.now(),
	}
	s.rounds = append(s.rounds, rec)
	s.roundStart = time.Time{}

	s.logger.Info("round ended",
		"outcome", outcome(won),
		"score", rec.Score,
		"high_score", snap.HighScore,
		"length", rec.Length,
		"ticks", rec.Ticks,
		"duration", rec.Duration,
	)

	if s.ledger == nil {
		return
	}
	if _, err := s.ledger.SaveRound(rec); err != nil {
		s.logger.Warn("cannot record round", "err", err)
	}
}

func outcome(won bool) string {
	if won {
		return "won"
	}
	return "lost"
}

// observed runs Observe after every scheduled callback.
type observed struct {
	inner sched.Scheduler
	s     *Session
}

func (o observed) After(d time.Duration, fn func()) func() {
	return o.inner.After(d, func() {
		fn()
		o.s.Observe()
	})
}
