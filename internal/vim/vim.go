// Package vim is the modal gate in front of the editors: it decides whether
// a keystroke is text to insert or a command, and translates commands into
// editing motions the focused text component applies.
//
// Inputs are key names as produced by bubbletea's KeyMsg.String(), e.g.
// "a", "esc", "ctrl+j".
package vim

// Mode is the editing mode.
type Mode int

const (
	Normal Mode = iota
	Insert
	Visual
	OperatorPending
)

// String returns the mode's status-line label.
func (m Mode) String() string {
	switch m {
	case Normal:
		return "NORMAL"
	case Insert:
		return "INSERT"
	case Visual:
		return "VISUAL"
	case OperatorPending:
		return "OPERATOR"
	default:
		return "UNKNOWN"
	}
}

// Kind classifies a Transition.
type Kind int

const (
	// NoTransition: the mode is unchanged. Edits may still be present.
	NoTransition Kind = iota
	// ModeChanged: the gate entered Transition.Mode.
	ModeChanged
	// InputDeferred: the input is text for the focused component.
	InputDeferred
	// Quit: the editor should close, saving first if Write is set.
	Quit
)

// Edit is one editing operation for the focused text component.
type Edit int

const (
	Left Edit = iota
	Right
	Up
	Down
	WordForward
	WordBackward
	LineStart
	LineEnd
	NewLine
	DeleteChar
	DeleteWord
	DeleteLine
	YankLine
	Paste
)

// State is the gate's complete state.
type State struct {
	Mode Mode
	// Pending is the operator key awaiting its motion in OperatorPending.
	Pending string
}

// Transition is the result of one Step.
type Transition struct {
	Kind  Kind
	Mode  Mode
	Input string
	Edits []Edit
	Write bool
}

var motions = map[string]Edit{
	"h": Left, "left": Left,
	"l": Right, "right": Right,
	"k": Up, "up": Up,
	"j": Down, "down": Down,
	"w": WordForward,
	"b": WordBackward,
	"0": LineStart, "home": LineStart,
	"$": LineEnd, "end": LineEnd,
}

// Step applies input to s. It is pure: the same state and input always
// yield the same result.
func Step(s State, input string) (State, Transition) {
	switch s.Mode {
	case Insert:
		return stepInsert(s, input)
	case Visual:
		return stepVisual(s, input)
	case OperatorPending:
		return stepOperator(s, input)
	default:
		return stepNormal(s, input)
	}
}

func stepNormal(s State, input string) (State, Transition) {
	switch input {
	case "i":
		return enter(Insert)
	case "a":
		return enter(Insert, Right)
	case "A":
		return enter(Insert, LineEnd)
	case "I":
		return enter(Insert, LineStart)
	case "o":
		return enter(Insert, LineEnd, NewLine)
	case "v":
		return enter(Visual)
	case "x", "delete":
		return stay(s, DeleteChar)
	case "p":
		return stay(s, Paste)
	case "d", "c", "y", "Z":
		next := State{Mode: OperatorPending, Pending: input}
		return next, Transition{Kind: ModeChanged, Mode: OperatorPending}
	}
	if e, ok := motions[input]; ok {
		return stay(s, e)
	}
	return s, Transition{Kind: NoTransition, Mode: s.Mode}
}

func stepInsert(s State, input string) (State, Transition) {
	if input == "esc" {
		return enter(Normal)
	}
	return s, Transition{Kind: InputDeferred, Mode: Insert, Input: input}
}

func stepVisual(s State, input string) (State, Transition) {
	switch input {
	case "esc", "v":
		return enter(Normal)
	case "y":
		return enter(Normal, YankLine)
	case "d", "x":
		return enter(Normal, DeleteLine)
	}
	if e, ok := motions[input]; ok {
		return stay(s, e)
	}
	return s, Transition{Kind: NoTransition, Mode: Visual}
}

func stepOperator(s State, input string) (State, Transition) {
	switch s.Pending + input {
	case "dd":
		return enter(Normal, DeleteLine)
	case "dw":
		return enter(Normal, DeleteWord)
	case "cc":
		return enter(Insert, DeleteLine)
	case "cw":
		return enter(Insert, DeleteWord)
	case "yy":
		return enter(Normal, YankLine)
	case "ZZ":
		return State{Mode: Normal}, Transition{Kind: Quit, Mode: Normal, Write: true}
	case "ZQ":
		return State{Mode: Normal}, Transition{Kind: Quit, Mode: Normal}
	}
	// esc and unknown sequences cancel the operator.
	return enter(Normal)
}

func enter(m Mode, edits ...Edit) (State, Transition) {
	return State{Mode: m}, Transition{Kind: ModeChanged, Mode: m, Edits: edits}
}

func stay(s State, edits ...Edit) (State, Transition) {
	return s, Transition{Kind: NoTransition, Mode: s.Mode, Edits: edits}
}

// Gate holds the current State and applies inputs to it.
type Gate struct {
	state State
}

// NewGate returns a gate in mode m.
func NewGate(m Mode) *Gate {
	return &Gate{state: State{Mode: m}}
}

// Mode returns the current mode.
func (g *Gate) Mode() Mode {
	return g.state.Mode
}

// Pending returns the operator awaiting a motion, if any.
func (g *Gate) Pending() string {
	return g.state.Pending
}

// IsCommandMode reports whether keystrokes are commands (Normal mode).
func (g *Gate) IsCommandMode() bool {
	return g.state.Mode == Normal
}

// IsDirectInsertMode reports whether keystrokes are inserted as text.
func (g *Gate) IsDirectInsertMode() bool {
	return g.state.Mode == Insert
}

// Apply feeds one input through the gate.
func (g *Gate) Apply(input string) Transition {
	var t Transition
	g.state, t = Step(g.state, input)
	return t
}

// Reset puts the gate in mode m and drops any pending operator.
func (g *Gate) Reset(m Mode) {
	g.state = State{Mode: m}
}
