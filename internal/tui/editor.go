package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/twiced-technology-gmbh/tabboard/internal/kanban"
	"github.com/twiced-technology-gmbh/tabboard/internal/vim"
)

type editorKind int

const (
	editCard editorKind = iota
	editColumn
)

type field int

const (
	fieldTitle field = iota
	fieldDescription
)

// editorResult is what a key press did to the editor as a whole.
type editorResult int

const (
	editorContinue editorResult = iota
	editorCommit
	editorCancel
)

const (
	descriptionHeight = 8
	minEditorWidth    = 20
)

// editor is the card or column form. Keystrokes go through a vim gate
// first; text the gate defers is handed to the focused component.
type editor struct {
	kind  editorKind
	isNew bool
	col   int
	card  int

	title textinput.Model
	desc  textarea.Model
	focus field
	gate  *vim.Gate

	// register holds the last yanked line.
	register string

	// err is shown under the form, e.g. when committing an empty title.
	err string
}

// editKeys translates gate edits into the key messages the bubbles text
// components already understand.
var editKeys = map[vim.Edit][]tea.KeyMsg{
	vim.Left:         {{Type: tea.KeyLeft}},
	vim.Right:        {{Type: tea.KeyRight}},
	vim.Up:           {{Type: tea.KeyUp}},
	vim.Down:         {{Type: tea.KeyDown}},
	vim.WordForward:  {{Type: tea.KeyRunes, Runes: []rune{'f'}, Alt: true}},
	vim.WordBackward: {{Type: tea.KeyRunes, Runes: []rune{'b'}, Alt: true}},
	vim.LineStart:    {{Type: tea.KeyHome}},
	vim.LineEnd:      {{Type: tea.KeyEnd}},
	vim.NewLine:      {{Type: tea.KeyEnter}},
	vim.DeleteChar:   {{Type: tea.KeyDelete}},
	vim.DeleteWord:   {{Type: tea.KeyRunes, Runes: []rune{'d'}, Alt: true}},
	vim.DeleteLine:   {{Type: tea.KeyHome}, {Type: tea.KeyCtrlK}},
}

func newEditor(kind editorKind, isNew bool, width int) *editor {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 0
	ti.Placeholder = "title"

	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.Placeholder = "description"
	ta.SetHeight(descriptionHeight)

	e := &editor{
		kind:  kind,
		isNew: isNew,
		title: ti,
		desc:  ta,
		gate:  vim.NewGate(vim.Insert),
	}
	e.resize(width)
	return e
}

// newCardEditor opens the card form. An existing card starts with the
// cursor at the end of its title.
func newCardEditor(col, idx int, card *kanban.Card, width int) (*editor, tea.Cmd) {
	e := newEditor(editCard, card == nil, width)
	e.col, e.card = col, idx
	if card != nil {
		e.title.SetValue(card.Title)
		e.title.CursorEnd()
		e.desc.SetValue(strings.TrimSuffix(card.Description, "\n"))
	}
	return e, e.focusField(fieldTitle)
}

// newColumnEditor opens the column form. An existing column starts with
// the cursor at the end of its title.
func newColumnEditor(col int, column *kanban.Column, width int) (*editor, tea.Cmd) {
	e := newEditor(editColumn, column == nil, width)
	e.col = col
	if column != nil {
		e.title.SetValue(column.Title)
		e.title.CursorEnd()
	}
	return e, e.focusField(fieldTitle)
}

func (e *editor) resize(width int) {
	w := max(width-8, minEditorWidth) //nolint:mnd // dialog border and padding
	e.title.Width = w
	e.desc.SetWidth(w)
}

func (e *editor) focusField(f field) tea.Cmd {
	if f == fieldDescription && e.kind != editCard {
		return nil
	}
	e.focus = f
	if f == fieldTitle {
		e.desc.Blur()
		return e.title.Focus()
	}
	e.title.Blur()
	return e.desc.Focus()
}

// titleValue returns the normalized title.
func (e *editor) titleValue() string {
	return kanban.NormalizeTitle(e.title.Value())
}

func (e *editor) descriptionValue() string {
	return e.desc.Value()
}

func (e *editor) mode() vim.Mode {
	return e.gate.Mode()
}

func (e *editor) handleKey(msg tea.KeyMsg) (editorResult, tea.Cmd) {
	k := msg.String()

	if e.gate.IsCommandMode() {
		switch k {
		case "s", "enter":
			return editorCommit, nil
		case "q", keyEsc:
			return editorCancel, nil
		case "ctrl+j":
			return editorContinue, e.focusField(fieldDescription)
		case "ctrl+k":
			return editorContinue, e.focusField(fieldTitle)
		}
	}

	t := e.gate.Apply(k)
	switch t.Kind {
	case vim.InputDeferred:
		if k == "enter" && e.focus == fieldTitle {
			return editorContinue, nil
		}
		return editorContinue, e.send(msg)
	case vim.Quit:
		if t.Write {
			return editorCommit, nil
		}
		return editorCancel, nil
	}

	cmds := make([]tea.Cmd, 0, len(t.Edits))
	for _, edit := range t.Edits {
		cmds = append(cmds, e.apply(edit))
	}
	return editorContinue, tea.Batch(cmds...)
}

func (e *editor) apply(edit vim.Edit) tea.Cmd {
	switch edit {
	case vim.YankLine:
		e.register = e.currentLine()
		return nil
	case vim.Paste:
		if e.register == "" {
			return nil
		}
		return e.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(e.register)})
	case vim.NewLine:
		if e.focus == fieldTitle {
			return nil
		}
	}
	var cmds []tea.Cmd
	for _, msg := range editKeys[edit] {
		cmds = append(cmds, e.send(msg))
	}
	return tea.Batch(cmds...)
}

// send delivers msg to the focused component.
func (e *editor) send(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if e.focus == fieldTitle {
		e.title, cmd = e.title.Update(msg)
	} else {
		e.desc, cmd = e.desc.Update(msg)
	}
	return cmd
}

func (e *editor) currentLine() string {
	if e.focus == fieldTitle {
		return e.title.Value()
	}
	lines := strings.Split(e.desc.Value(), "\n")
	if row := e.desc.Line(); row >= 0 && row < len(lines) {
		return lines[row]
	}
	return ""
}

// heading names what is being edited, e.g. "Editing new card".
func (e *editor) heading() string {
	what := "card"
	if e.kind == editColumn {
		what = "column"
	}
	if e.isNew {
		return "Editing new " + what
	}
	return "Editing " + what
}
