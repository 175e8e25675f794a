// Package tui implements the interactive board editor.
package tui

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/twiced-technology-gmbh/tabboard/internal/activity"
	"github.com/twiced-technology-gmbh/tabboard/internal/kanban"
	"github.com/twiced-technology-gmbh/tabboard/internal/logging"
	"github.com/twiced-technology-gmbh/tabboard/internal/nav"
)

// view represents the current screen state.
type view int

const (
	viewBoard view = iota
	viewEditor
	viewConfirmDeleteCard
	viewConfirmDeleteColumn
	viewDetail
)

const keyEsc = "esc"

var (
	errEmptyTitle      = errors.New("title cannot be empty")
	errNoColumn        = errors.New("add a column first (C)")
	errClipboardOff    = errors.New("clipboard is disabled")
	errNothingSelected = errors.New("no card selected")
)

// Persistence is where committed mutations are written through to.
// store.Store satisfies it.
type Persistence interface {
	Load() (*kanban.Board, error)
	Save(b *kanban.Board) error
	Record(action, column, card, detail string)
}

// Options configures a Board.
type Options struct {
	// ColumnsOffset is the number of columns shown at once.
	ColumnsOffset int
	// Markdown renders card descriptions in the detail view.
	Markdown bool
	// Clipboard enables copying card titles.
	Clipboard bool
	Logger    *slog.Logger
	// Copy writes to the system clipboard. Defaults to clipboard.WriteAll.
	Copy func(string) error
	// Err is shown in the status bar when the session starts, e.g. a
	// failed initial save.
	Err error
}

// ReloadMsg asks the board to re-read its file.
type ReloadMsg struct{}

// Board is the top-level bubbletea model.
type Board struct {
	board  *kanban.Board
	nav    *nav.State
	store  Persistence
	opts   Options
	logger *slog.Logger

	keys keyMap
	help help.Model

	view   view
	editor *editor
	width  int
	height int
	err    error
	notice string

	// pendingReload is set when the file changed while a form was open.
	pendingReload bool
}

// New creates a Board model editing b and writing through to p.
func New(b *kanban.Board, p Persistence, opts Options) *Board {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Copy == nil {
		opts.Copy = clipboard.WriteAll
	}
	return &Board{
		board:  b,
		nav:    nav.New(opts.ColumnsOffset),
		store:  p,
		opts:   opts,
		logger: opts.Logger,
		keys:   defaultKeyMap(),
		help:   help.New(),
		err:    opts.Err,
	}
}

// Kanban returns the board being edited.
func (b *Board) Kanban() *kanban.Board {
	return b.board
}

// Nav returns the navigation state.
func (b *Board) Nav() *nav.State {
	return b.nav
}

// Err returns the error shown in the status bar, if any.
func (b *Board) Err() error {
	return b.err
}

// Editing reports whether a card or column form is open.
func (b *Board) Editing() bool {
	return b.view == viewEditor
}

// Init implements tea.Model.
func (b *Board) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (b *Board) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return b.handleKey(msg)
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		b.help.Width = msg.Width
		if b.editor != nil {
			b.editor.resize(msg.Width)
		}
		return b, nil
	case ReloadMsg:
		if b.view != viewBoard {
			b.pendingReload = true
			return b, nil
		}
		b.reload()
		return b, nil
	}

	// Cursor blink and similar messages belong to the open form.
	if b.editor != nil {
		return b, b.editor.send(msg)
	}
	return b, nil
}

func (b *Board) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch b.view {
	case viewEditor:
		return b.handleEditorKey(msg)
	case viewConfirmDeleteCard, viewConfirmDeleteColumn:
		return b.handleDeleteKey(msg)
	case viewDetail:
		return b.handleDetailKey(msg)
	default:
		return b.handleBoardKey(msg)
	}
}

func (b *Board) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b.notice = ""
	col, card := b.nav.SelectedColumn(), b.nav.SelectedCard()

	switch {
	case key.Matches(msg, b.keys.Quit):
		return b, tea.Quit
	case key.Matches(msg, b.keys.Help):
		b.help.ShowAll = !b.help.ShowAll
	case key.Matches(msg, b.keys.PrevColumn):
		b.nav.PrevColumn(b.board)
	case key.Matches(msg, b.keys.NextColumn):
		b.nav.NextColumn(b.board)
	case key.Matches(msg, b.keys.NextCard):
		b.nav.NextCard(b.board)
	case key.Matches(msg, b.keys.PrevCard):
		b.nav.PrevCard(b.board)

	case key.Matches(msg, b.keys.SwapColumnLeft):
		if b.board.SwapColumn(col, col-1) == nil {
			b.nav.Select(b.board, col-1, card)
			b.commit(activity.ActionSwapColumn, col-1, -1, "")
		}
	case key.Matches(msg, b.keys.SwapColumnRight):
		if b.board.SwapColumn(col, col+1) == nil {
			b.nav.Select(b.board, col+1, card)
			b.commit(activity.ActionSwapColumn, col+1, -1, "")
		}
	case key.Matches(msg, b.keys.MoveCardLeft):
		b.moveCard(col, col-1, card)
	case key.Matches(msg, b.keys.MoveCardRight):
		b.moveCard(col, col+1, card)
	case key.Matches(msg, b.keys.SwapCardDown):
		if b.board.SwapCard(col, card, card+1) == nil {
			b.nav.Select(b.board, col, card+1)
			b.commit(activity.ActionSwapCard, col, card+1, "")
		}
	case key.Matches(msg, b.keys.SwapCardUp):
		if b.board.SwapCard(col, card, card-1) == nil {
			b.nav.Select(b.board, col, card-1)
			b.commit(activity.ActionSwapCard, col, card-1, "")
		}

	case key.Matches(msg, b.keys.EditCard):
		if c, ok := b.board.Card(col, card); ok {
			e, cmd := newCardEditor(col, card, c, b.width)
			return b.openEditor(e, cmd)
		}
	case key.Matches(msg, b.keys.NewCard):
		if b.board.ColumnCount() == 0 {
			b.err = errNoColumn
			return b, nil
		}
		e, cmd := newCardEditor(col, -1, nil, b.width)
		return b.openEditor(e, cmd)
	case key.Matches(msg, b.keys.EditColumn):
		if c, ok := b.board.Column(col); ok {
			e, cmd := newColumnEditor(col, c, b.width)
			return b.openEditor(e, cmd)
		}
	case key.Matches(msg, b.keys.NewColumn):
		e, cmd := newColumnEditor(-1, nil, b.width)
		return b.openEditor(e, cmd)

	case key.Matches(msg, b.keys.DeleteCard):
		if b.nav.HasCard(b.board) {
			b.view = viewConfirmDeleteCard
		}
	case key.Matches(msg, b.keys.DeleteColumn):
		if b.board.ColumnCount() > 0 {
			b.view = viewConfirmDeleteColumn
		}
	case key.Matches(msg, b.keys.Detail):
		if b.nav.HasCard(b.board) {
			b.view = viewDetail
		}
	case key.Matches(msg, b.keys.Copy):
		b.copyTitle()
	}
	return b, nil
}

// moveCard moves the selected card to a neighbouring column. The cursor
// stays in the source column.
func (b *Board) moveCard(from, to, card int) {
	c, ok := b.board.Card(from, card)
	if !ok {
		return
	}
	title := c.Title
	if b.board.MoveCard(from, to, card) != nil {
		return
	}
	b.commit(activity.ActionMoveCard, to, b.board.CardCount(to)-1, title)
}

func (b *Board) copyTitle() {
	c, ok := b.board.Card(b.nav.SelectedColumn(), b.nav.SelectedCard())
	switch {
	case !ok:
		b.err = errNothingSelected
	case !b.opts.Clipboard:
		b.err = errClipboardOff
	default:
		if err := b.opts.Copy(c.Title); err != nil {
			b.err = fmt.Errorf("copying to clipboard: %w", err)
			return
		}
		b.err = nil
		b.notice = "Copied: " + c.Title
	}
}

func (b *Board) openEditor(e *editor, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	b.editor = e
	b.view = viewEditor
	return b, cmd
}

func (b *Board) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return b, tea.Quit
	}
	res, cmd := b.editor.handleKey(msg)
	switch res {
	case editorCommit:
		if b.commitEditor() {
			b.closeForm()
		}
	case editorCancel:
		b.closeForm()
	}
	return b, cmd
}

// commitEditor applies the open form to the board. It reports false when
// the form must stay open.
func (b *Board) commitEditor() bool {
	e := b.editor
	title := e.titleValue()
	if title == "" {
		e.err = errEmptyTitle.Error()
		return false
	}

	switch {
	case e.kind == editColumn && e.isNew:
		b.board.AddColumn(kanban.NewColumn(title))
		last := b.board.ColumnCount() - 1
		b.nav.Select(b.board, last, 0)
		b.commit(activity.ActionAddColumn, last, -1, "")
	case e.kind == editColumn:
		if b.board.SetColumnTitle(e.col, title) != nil {
			return true
		}
		b.commit(activity.ActionRenameColumn, e.col, -1, "")
	case e.isNew:
		if b.board.AddCard(e.col, kanban.NewCard(title, e.descriptionValue())) != nil {
			return true
		}
		last := b.board.CardCount(e.col) - 1
		b.nav.Select(b.board, e.col, last)
		b.commit(activity.ActionAddCard, e.col, last, "")
	default:
		if b.board.SetCardTitle(e.col, e.card, title) != nil {
			return true
		}
		_ = b.board.SetCardDescription(e.col, e.card, e.descriptionValue())
		b.commit(activity.ActionEditCard, e.col, e.card, "")
	}
	return true
}

func (b *Board) handleDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		col, card := b.nav.SelectedColumn(), b.nav.SelectedCard()
		if b.view == viewConfirmDeleteCard {
			title := b.cardTitle(col, card)
			if b.board.DeleteCard(col, card) == nil {
				b.commit(activity.ActionDeleteCard, col, -1, title)
			}
		} else {
			title := b.columnTitle(col)
			if b.board.DeleteColumn(col) == nil {
				b.commit(activity.ActionDeleteColumn, -1, -1, title)
			}
		}
		b.closeForm()
	case "n", "N", keyEsc, "q":
		b.closeForm()
	case "ctrl+c":
		return b, tea.Quit
	}
	return b, nil
}

func (b *Board) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "v", "q", keyEsc, "enter":
		b.closeForm()
	case "e":
		b.closeForm()
		return b.handleBoardKey(msg)
	case "ctrl+c":
		return b, tea.Quit
	}
	return b, nil
}

// closeForm returns to the board screen and applies a deferred reload.
func (b *Board) closeForm() {
	b.view = viewBoard
	b.editor = nil
	if b.pendingReload {
		b.pendingReload = false
		b.reload()
	}
}

// commit repairs the cursor, writes the board through and records the
// mutation. A failed save leaves the in-memory board as it is.
func (b *Board) commit(action string, col, card int, detail string) {
	b.nav.Repair(b.board)
	if err := b.store.Save(b.board); err != nil {
		b.logger.Error("saving board", "action", action, "err", err)
		b.err = fmt.Errorf("saving board: %w", err)
		return
	}
	b.err = nil
	b.store.Record(action, b.columnTitle(col), b.cardTitle(col, card), detail)
}

func (b *Board) reload() {
	nb, err := b.store.Load()
	if err != nil {
		b.logger.Warn("reloading board", "err", err)
		b.err = fmt.Errorf("reloading board: %w", err)
		return
	}
	b.board = nb
	b.nav.Repair(b.board)
	b.err = nil
}

func (b *Board) columnTitle(col int) string {
	if c, ok := b.board.Column(col); ok {
		return c.Title
	}
	return ""
}

func (b *Board) cardTitle(col, card int) string {
	if c, ok := b.board.Card(col, card); ok {
		return c.Title
	}
	return ""
}
