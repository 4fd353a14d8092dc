package core

// Action is a semantic control request, abstracted from physical key presses.
type Action int

const (
	ActionNone   Action = iota
	ActionPlay          // Space, Enter - play or resume
	ActionPause         // P - pause playback
	ActionStop          // S, Escape - stop and reset to start positions
	ActionLive          // L - toggle live stepping while stopped
	ActionDebug         // D - toggle debug overlay
	ActionTable         // T - toggle standings table
	ActionRestart       // R - stop then play from the start
	ActionQuit          // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionPlay:
		return "Play"
	case ActionPause:
		return "Pause"
	case ActionStop:
		return "Stop"
	case ActionLive:
		return "Live"
	case ActionDebug:
		return "Debug"
	case ActionTable:
		return "Table"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
