package vim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStep_Normal(t *testing.T) {
	tests := []struct {
		input string
		mode  Mode
		kind  Kind
		edits []Edit
	}{
		{"i", Insert, ModeChanged, nil},
		{"a", Insert, ModeChanged, []Edit{Right}},
		{"A", Insert, ModeChanged, []Edit{LineEnd}},
		{"I", Insert, ModeChanged, []Edit{LineStart}},
		{"o", Insert, ModeChanged, []Edit{LineEnd, NewLine}},
		{"v", Visual, ModeChanged, nil},
		{"h", Normal, NoTransition, []Edit{Left}},
		{"right", Normal, NoTransition, []Edit{Right}},
		{"w", Normal, NoTransition, []Edit{WordForward}},
		{"$", Normal, NoTransition, []Edit{LineEnd}},
		{"x", Normal, NoTransition, []Edit{DeleteChar}},
		{"p", Normal, NoTransition, []Edit{Paste}},
		{"d", OperatorPending, ModeChanged, nil},
		{"q", Normal, NoTransition, nil},
		{"s", Normal, NoTransition, nil},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			next, tr := Step(State{Mode: Normal}, tt.input)
			assert.Equal(t, tt.mode, next.Mode)
			assert.Equal(t, tt.mode, tr.Mode)
			assert.Equal(t, tt.kind, tr.Kind)
			assert.Equal(t, tt.edits, tr.Edits)
		})
	}
}

func TestStep_InsertDefersText(t *testing.T) {
	s := State{Mode: Insert}
	for _, in := range []string{"q", "s", "enter", "ctrl+j", " "} {
		next, tr := Step(s, in)
		assert.Equal(t, s, next)
		assert.Equal(t, InputDeferred, tr.Kind, in)
		assert.Equal(t, in, tr.Input)
	}

	next, tr := Step(s, "esc")
	assert.Equal(t, Normal, next.Mode)
	assert.Equal(t, ModeChanged, tr.Kind)
}

func TestStep_Visual(t *testing.T) {
	s := State{Mode: Visual}

	next, tr := Step(s, "l")
	assert.Equal(t, Visual, next.Mode)
	assert.Equal(t, []Edit{Right}, tr.Edits)

	next, tr = Step(s, "y")
	assert.Equal(t, Normal, next.Mode)
	assert.Equal(t, []Edit{YankLine}, tr.Edits)

	next, tr = Step(s, "d")
	assert.Equal(t, Normal, next.Mode)
	assert.Equal(t, []Edit{DeleteLine}, tr.Edits)

	for _, in := range []string{"esc", "v"} {
		next, _ = Step(s, in)
		assert.Equal(t, Normal, next.Mode, in)
	}
}

func TestStep_Operators(t *testing.T) {
	tests := []struct {
		keys  []string
		mode  Mode
		kind  Kind
		edits []Edit
		write bool
	}{
		{[]string{"d", "d"}, Normal, ModeChanged, []Edit{DeleteLine}, false},
		{[]string{"d", "w"}, Normal, ModeChanged, []Edit{DeleteWord}, false},
		{[]string{"c", "c"}, Insert, ModeChanged, []Edit{DeleteLine}, false},
		{[]string{"c", "w"}, Insert, ModeChanged, []Edit{DeleteWord}, false},
		{[]string{"y", "y"}, Normal, ModeChanged, []Edit{YankLine}, false},
		{[]string{"Z", "Z"}, Normal, Quit, nil, true},
		{[]string{"Z", "Q"}, Normal, Quit, nil, false},
		{[]string{"d", "esc"}, Normal, ModeChanged, nil, false},
		{[]string{"d", "k"}, Normal, ModeChanged, nil, false},
	}
	for _, tt := range tests {
		g := NewGate(Normal)
		var tr Transition
		for _, k := range tt.keys {
			tr = g.Apply(k)
		}
		assert.Equal(t, tt.mode, g.Mode(), tt.keys)
		assert.Equal(t, tt.kind, tr.Kind, tt.keys)
		assert.Equal(t, tt.edits, tr.Edits, tt.keys)
		assert.Equal(t, tt.write, tr.Write, tt.keys)
		assert.Empty(t, g.Pending(), tt.keys)
	}
}

func TestStep_IsPure(t *testing.T) {
	s := State{Mode: OperatorPending, Pending: "d"}
	a, ta := Step(s, "d")
	b, tb := Step(s, "d")
	assert.Equal(t, a, b)
	assert.Equal(t, ta, tb)
	assert.Equal(t, State{Mode: OperatorPending, Pending: "d"}, s)
}

func TestGate(t *testing.T) {
	g := NewGate(Insert)
	assert.True(t, g.IsDirectInsertMode())
	assert.False(t, g.IsCommandMode())

	g.Apply("esc")
	assert.True(t, g.IsCommandMode())

	g.Apply("c")
	assert.Equal(t, OperatorPending, g.Mode())
	assert.Equal(t, "c", g.Pending())
	assert.False(t, g.IsCommandMode())
	assert.False(t, g.IsDirectInsertMode())

	g.Reset(Normal)
	assert.Equal(t, Normal, g.Mode())
	assert.Empty(t, g.Pending())
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "NORMAL", Normal.String())
	assert.Equal(t, "INSERT", Insert.String())
	assert.Equal(t, "VISUAL", Visual.String())
	assert.Equal(t, "OPERATOR", OperatorPending.String())
}
