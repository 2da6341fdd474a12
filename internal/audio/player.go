// Package audio plays the round outcome jingles.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// SampleRate of the speaker and every generated jingle.
const SampleRate = beep.SampleRate(44100)

// Player owns the speaker. A disabled or uninitialized player is silent.
type Player struct {
	mu          sync.Mutex
	enabled     bool
	volume      float64
	initialized bool
	mixer       *beep.Mixer
	current     *beep.Ctrl
	logger      *log.Logger
}

// NewPlayer creates a player. Volume is linear in [0, 1].
func NewPlayer(enabled bool, volume float64, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Default()
	}
	return &Player{
		enabled: enabled,
		volume:  volume,
		mixer:   &beep.Mixer{},
		logger:  logger,
	}
}

// Init opens the speaker. On failure the player stays silent and the
// error is returned for the caller to log.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled || p.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		p.enabled = false
		return fmt.Errorf("audio: cannot init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Enabled reports whether outcomes are audible.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled && p.initialized
}

// PlayOutcome stops any jingle in progress and plays the win or lose jingle.
func (p *Player) PlayOutcome(won bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled || !p.initialized {
		return
	}

	s := LoseJingle(SampleRate, p.volume)
	if won {
		s = WinJingle(SampleRate, p.volume)
	}

	speaker.Lock()
	if p.current != nil {
		p.current.Paused = true
	}
	p.mixer.Clear()
	p.current = &beep.Ctrl{Streamer: s}
	p.mixer.Add(p.current)
	speaker.Unlock()

	p.logger.Debug("outcome jingle", "won", won)
}

// Stop silences the current jingle.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.current == nil {
		return
	}
	speaker.Lock()
	p.current.Paused = true
	p.mixer.Clear()
	speaker.Unlock()
	p.current = nil
}

// Close stops playback and releases the speaker.
func (p *Player) Close() {
	p.Stop()

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}
