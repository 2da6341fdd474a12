// Package term is a tcell frontend. It draws straight to the terminal and
// drives the engine from a sched.Loop.
package term

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/caterpillar/internal/core"
)

// mapKey translates a tcell key event to a game action.
func mapKey(ev *tcell.EventKey) core.Action {
	return actionFor(ev.Key(), ev.Rune())
}

// actionFor maps a key and, for tcell.KeyRune, its rune.
func actionFor(k tcell.Key, r rune) core.Action {
	switch k {
	case tcell.KeyUp:
		return core.ActionUp
	case tcell.KeyDown:
		return core.ActionDown
	case tcell.KeyLeft:
		return core.ActionLeft
	case tcell.KeyRight:
		return core.ActionRight
	case tcell.KeyCtrlC:
		return core.ActionQuit
	case tcell.KeyTab:
		return core.ActionScoreboard
	case tcell.KeyCtrlS:
		return core.ActionScreenshot
	case tcell.KeyRune:
	default:
		return core.ActionNone
	}

	switch unicode.ToLower(r) {
	case 'w':
		return core.ActionUp
	case 's':
		return core.ActionDown
	case 'a':
		return core.ActionLeft
	case 'd':
		return core.ActionRight
	case 'r':
		return core.ActionRestart
	}
	if r == 'q' {
		return core.ActionQuit
	}
	return core.ActionNone
}
