package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, K, Up arrow
	ActionDown           // S, J, Down arrow
	ActionLeft           // A, H, Left arrow
	ActionRight          // D, L, Right arrow
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R key - new maze after completion
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause game
	ActionHint           // ? - reveal the path to the exit
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
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionHint:
		return "Hint"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state for a single player during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Moves lists the movement actions in the order they were triggered.
	// Repeated presses appear once per press.
	Moves []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
	if a.IsMovement() {
		f.Moves = append(f.Moves, a)
	}
}

// IsMovement reports whether a is one of the four direction actions.
func (a Action) IsMovement() bool {
	switch a {
	case ActionUp, ActionDown, ActionLeft, ActionRight:
		return true
	}
	return false
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Moves = f.Moves[:0]
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	if len(f.Moves) > 0 {
		return false
	}
	for _, v := range f.Actions {
		if v {
			return false
		}
	}
	return true
}
