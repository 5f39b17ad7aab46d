package core

// Action is a semantic input, independent of the key that produced it.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionRestart // start a new game
	ActionPause
	ActionHelp
	ActionQuit
)

var actionNames = [...]string{
	ActionNone:    "None",
	ActionUp:      "Up",
	ActionDown:    "Down",
	ActionLeft:    "Left",
	ActionRight:   "Right",
	ActionRestart: "Restart",
	ActionPause:   "Pause",
	ActionHelp:    "Help",
	ActionQuit:    "Quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "Unknown"
	}
	return actionNames[a]
}

// InputFrame collects the actions triggered between two ticks.
type InputFrame struct {
	bits uint32
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks an action as triggered.
func (f *InputFrame) Set(a Action) {
	if a <= ActionNone {
		return
	}
	f.bits |= 1 << uint(a)
}

// Has reports whether the action was triggered.
func (f InputFrame) Has(a Action) bool {
	return a > ActionNone && f.bits&(1<<uint(a)) != 0
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return f.bits == 0
}

// Clear resets the frame for the next tick.
func (f *InputFrame) Clear() {
	f.bits = 0
}
