package core

// Action represents a semantic input, abstracted from physical key presses.
// Frontends translate keys into actions; the engine only sees actions.
type Action int

const (
	ActionNone        Action = iota // Any unmapped key
	ActionUp                        // W, Up arrow
	ActionDown                      // S, Down arrow
	ActionLeft                      // A, Left arrow
	ActionRight                     // D, Right arrow
	ActionRestart                   // R - the restart control
	ActionQuit                      // Q, Ctrl+C - leave the frontend
	ActionScoreboard                // Tab - toggle the round leaderboard
	ActionScreenshot                // Ctrl+S - save the current frame
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionScoreboard:
		return "Scoreboard"
	case ActionScreenshot:
		return "Screenshot"
	default:
		return "Unknown"
	}
}

// IsDirection reports whether the action steers the caterpillar.
func (a Action) IsDirection() bool {
	return a == ActionUp || a == ActionDown || a == ActionLeft || a == ActionRight
}

// IsFrontend reports whether the action is handled by the frontend itself
// and never forwarded to the engine.
func (a Action) IsFrontend() bool {
	return a == ActionQuit || a == ActionScoreboard || a == ActionScreenshot
}
