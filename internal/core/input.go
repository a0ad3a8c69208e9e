package core

// Action represents a semantic sandbox action, abstracted from physical key presses.
type Action int

const (
	ActionNone        Action = iota
	ActionUp                 // K, Up arrow - move up (menus)
	ActionDown               // J, Down arrow - move down (menus)
	ActionConfirm            // Enter - confirm selection in menu
	ActionBack               // B, Escape - go back to menu
	ActionPause              // P, Space - pause/unpause the simulation
	ActionStep               // N - advance one tick while paused
	ActionClear              // C - remove every grain
	ActionBrushGrow          // ] - larger brush
	ActionBrushShrink        // [ - smaller brush
	ActionQuit               // Q, Ctrl+C - exit session
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
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionPause:
		return "Pause"
	case ActionStep:
		return "Step"
	case ActionClear:
		return "Clear"
	case ActionBrushGrow:
		return "BrushGrow"
	case ActionBrushShrink:
		return "BrushShrink"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Pointer is the state of the pointing device during one tick.
// X and Y are in screen units; front-ends pick the unit and tell the
// engine how many units make one cell.
type Pointer struct {
	X, Y   int
	Left   bool // Spawn button held
	Right  bool // Erase button held
	Active bool // False until the pointer has been seen over the surface
}

// InputFrame represents the input state for a single simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Pointer is the latest pointer state. Unlike actions it is a level,
	// not an edge, and is not cleared between frames.
	Pointer Pointer
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
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame. The pointer is kept.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Pointer = f.Pointer
	return clone
}
