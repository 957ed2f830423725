package core

// Action represents a semantic player action, abstracted from physical key
// presses. The platform maps keys to actions; the event source maps actions
// to engine events.
type Action int

const (
	ActionNone  Action = iota
	ActionUp           // W, Up arrow - hop up
	ActionDown         // S, Down arrow - hop down
	ActionLeft         // A, Left arrow - hop left
	ActionRight        // D, Right arrow - hop right
	ActionReset        // R - start a fresh run, keeping the high score
	ActionHelp         // ? - toggle key help
	ActionQuit         // Q, Ctrl+C - exit
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
	case ActionReset:
		return "Reset"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// ParseAction returns the action with the given (case-sensitive) name.
func ParseAction(name string) (Action, bool) {
	for a := ActionNone; a <= ActionQuit; a++ {
		if a.String() == name {
			return a, true
		}
	}
	return ActionNone, false
}
