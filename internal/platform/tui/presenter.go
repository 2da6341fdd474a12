package tui

import (
	"fmt"

	"github.com/vovakirdan/caterpillar/internal/audio"
)

// hud is the caterpillar.Presenter of the terminal UI. It keeps the score
// line and the outcome flag for View, and plays the outcome jingle.
type hud struct {
	score     int
	highScore int
	outcome   bool // overlay visible
	won       bool
	player    *audio.Player // nil when muted
}

func (h *hud) UpdateScore(score, highScore int) {
	h.score = score
	h.highScore = highScore
}

func (h *hud) ShowOutcome(won bool) {
	h.outcome = true
	h.won = won
	if h.player != nil {
		h.player.PlayOutcome(won)
	}
}

func (h *hud) HideOutcome() {
	h.outcome = false
	if h.player != nil {
		h.player.Stop()
	}
}

// Line returns the score line.
func (h *hud) Line() string {
	return fmt.Sprintf("Score: %d  High Score: %d", h.score, h.highScore)
}
