package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/twiced-technology-gmbh/tabboard/internal/kanban"
	"github.com/twiced-technology-gmbh/tabboard/internal/output"
	"github.com/twiced-technology-gmbh/tabboard/internal/vim"
)

// Layout constants.
const (
	boardChrome  = 3 // blank line, status bar and help footer
	errorChrome  = 1 // extra line when an error is displayed
	cardHeight   = 3 // one content line between two borders
	cardChrome   = 4 // border (2) + padding (2)
	headerHeight = 1
	maxColWidth  = 60
)

// --- Styles ---

var (
	columnHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("252")).
				Background(lipgloss.Color("236")).
				Padding(0, 1)

	activeColumnHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("62")).
				Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	activeCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("226")).
			Padding(0, 1)

	cardTitleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	activeCardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))

	// modeStyles colours the mode label like the status line of an editor.
	modeStyles = map[vim.Mode]lipgloss.Style{
		vim.Normal:          lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		vim.Insert:          lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		vim.Visual:          lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		vim.OperatorPending: lipgloss.NewStyle().Foreground(lipgloss.Color("120")),
	}

	dialogPadY = 1
	dialogPadX = 2

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(dialogPadY, dialogPadX)

	dangerDialogStyle = dialogStyle.BorderForeground(lipgloss.Color("196"))
)

// View implements tea.Model.
func (b *Board) View() string {
	if b.width == 0 {
		return "Loading..."
	}

	switch b.view {
	case viewEditor:
		return b.viewEditor()
	case viewConfirmDeleteCard:
		return b.viewDeleteCard()
	case viewConfirmDeleteColumn:
		return b.viewDeleteColumn()
	case viewDetail:
		return b.viewDetail()
	default:
		return b.viewBoard()
	}
}

// --- Board ---

func (b *Board) viewBoard() string {
	var boardView string
	if b.board.ColumnCount() == 0 {
		boardView = dimStyle.Render("  No columns yet. Press C to add one.")
	} else {
		start, end := b.nav.Visible(b.board)
		colWidth := b.columnWidth(end - start)
		rendered := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			rendered = append(rendered, b.renderColumn(i, colWidth))
		}
		boardView = lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	}

	// Clamp from the bottom (keeping headers at the top) and pad to the
	// available height so the status bar stays put.
	targetHeight := b.height - b.chromeHeight()
	if targetHeight > 0 {
		actual := strings.Count(boardView, "\n") + 1
		if actual > targetHeight {
			viewLines := strings.SplitN(boardView, "\n", targetHeight+1)
			boardView = strings.Join(viewLines[:targetHeight], "\n")
		} else if actual < targetHeight {
			boardView += strings.Repeat("\n", targetHeight-actual)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, boardView, "", b.renderStatusBar(), b.help.View(b.keys))
}

func (b *Board) chromeHeight() int {
	h := boardChrome
	if b.err != nil {
		h += errorChrome
	}
	if b.help.ShowAll {
		h += len(b.keys.FullHelp()[0]) - 1
	}
	return h
}

func (b *Board) columnWidth(visible int) int {
	if visible <= 0 {
		return maxColWidth
	}
	return min(b.width/visible, maxColWidth)
}

// visibleCards returns how many cards fit below a column header.
func (b *Board) visibleCards() int {
	avail := b.height - b.chromeHeight() - headerHeight - 2 //nolint:mnd // scroll indicators
	return max(avail/cardHeight, 1)
}

func (b *Board) renderColumn(colIdx, width int) string {
	col, _ := b.board.Column(colIdx)
	active := colIdx == b.nav.SelectedColumn()

	const headerPad = 2
	headerText := truncate(fmt.Sprintf("%s (%d)", col.Title, len(col.Cards)), width-headerPad)
	header := columnHeaderStyle.Width(width).Render(headerText)
	if active {
		header = activeColumnHeaderStyle.Width(width).Render(headerText)
	}
	parts := []string{header}

	if len(col.Cards) == 0 {
		parts = append(parts, dimStyle.Width(width).Render("  (empty)"))
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	// Only the selected column scrolls; others show their top cards.
	maxVis := b.visibleCards()
	start := 0
	if active && b.nav.SelectedCard() >= maxVis {
		start = b.nav.SelectedCard() - maxVis + 1
	}
	end := min(start+maxVis, len(col.Cards))

	if start > 0 {
		parts = append(parts, dimStyle.Width(width).Render(truncate(fmt.Sprintf("  ↑ %d more", start), width)))
	}
	for i := start; i < end; i++ {
		selected := active && i == b.nav.SelectedCard()
		parts = append(parts, renderCard(col.Cards[i], selected, width))
	}
	if end < len(col.Cards) {
		parts = append(parts, dimStyle.Width(width).Render(truncate(fmt.Sprintf("  ↓ %d more", len(col.Cards)-end), width)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderCard(c kanban.Card, active bool, width int) string {
	inner := max(width-cardChrome, 1)

	title := c.Title
	if n := len(c.DescriptionLines()); n > 0 {
		title += dimStyle.Render(fmt.Sprintf(" (+%d)", n))
	}
	title = truncate(title, inner)

	style, titleStyle := cardStyle, cardTitleStyle
	if active {
		style, titleStyle = activeCardStyle, activeCardTitleStyle
	}
	return style.Width(width - 2).Render(titleStyle.Render(title)) //nolint:mnd // border width
}

func (b *Board) renderStatusBar() string {
	start, end := b.nav.Visible(b.board)
	status := fmt.Sprintf(" %s | Viewing Board | %s | %d cards", modeLabel(vim.Normal), b.board.Title, b.board.TotalCards())
	if n := b.board.ColumnCount(); n > end-start {
		status += fmt.Sprintf(" | columns %d-%d of %d", start+1, end, n)
	}
	status = statusBarStyle.Render(truncate(status, b.width))

	switch {
	case b.err != nil:
		return errorStyle.Render(truncate("Error: "+b.err.Error(), b.width)) + "\n" + status
	case b.notice != "":
		return noticeStyle.Render(truncate(b.notice, b.width)) + "\n" + status
	}
	return status
}

func modeLabel(m vim.Mode) string {
	return modeStyles[m].Render(m.String())
}

// --- Forms and dialogs ---

func (b *Board) viewEditor() string {
	e := b.editor
	var sb strings.Builder

	sb.WriteString(labelStyle.Render("Title"))
	sb.WriteString("\n")
	sb.WriteString(e.title.View())
	if e.kind == editCard {
		sb.WriteString("\n\n")
		sb.WriteString(labelStyle.Render("Description"))
		sb.WriteString("\n")
		sb.WriteString(e.desc.View())
	}
	if e.err != "" {
		sb.WriteString("\n\n")
		sb.WriteString(errorStyle.Render(e.err))
	}

	hints := "i:insert  esc:normal  s/enter:save  q/esc:cancel"
	if e.kind == editCard {
		hints += "  ctrl+j/ctrl+k:switch field"
	}
	sb.WriteString("\n\n")
	sb.WriteString(dimStyle.Render(hints))

	status := fmt.Sprintf(" %s | %s", modeLabel(e.mode()), e.heading())
	if p := e.gate.Pending(); p != "" {
		status += " | " + p
	}
	return lipgloss.JoinVertical(lipgloss.Left, dialogStyle.Render(sb.String()), "", statusBarStyle.Render(status))
}

func (b *Board) viewDeleteCard() string {
	title := b.cardTitle(b.nav.SelectedColumn(), b.nav.SelectedCard())
	content := errorStyle.Render("Delete card?") + "\n\n" +
		"  " + truncate(title, max(b.width-12, 10)) + "\n\n" + //nolint:mnd // dialog chrome
		dimStyle.Render("y:yes  n:no")

	return dangerDialogStyle.Render(content)
}

func (b *Board) viewDeleteColumn() string {
	col, _ := b.board.Column(b.nav.SelectedColumn())
	content := errorStyle.Render("Delete column?") + "\n\n" +
		"  " + truncate(col.Title, max(b.width-12, 10)) + "\n" + //nolint:mnd // dialog chrome
		dimStyle.Render(fmt.Sprintf("  %d cards will be removed.", len(col.Cards))) + "\n\n" +
		dimStyle.Render("y:yes  n:no")

	return dangerDialogStyle.Render(content)
}

func (b *Board) viewDetail() string {
	col, _ := b.board.Column(b.nav.SelectedColumn())
	card, ok := b.board.Card(b.nav.SelectedColumn(), b.nav.SelectedCard())
	if !ok {
		return b.viewBoard()
	}

	width := max(b.width-8, 20) //nolint:mnd // dialog chrome
	body := dimStyle.Render("(no description)")
	if card.Description != "" {
		if b.opts.Markdown {
			body = output.Markdown(card.Description, width)
		} else {
			body = strings.TrimSuffix(card.Description, "\n")
		}
	}

	content := labelStyle.Render(truncate(card.Title, width)) + "\n" +
		dimStyle.Render("in "+col.Title) + "\n\n" +
		body + "\n\n" +
		dimStyle.Render("e:edit  esc:back")
	return dialogStyle.Render(content)
}

func truncate(s string, maxLen int) string {
	if maxLen < 4 { //nolint:mnd // minimum length for truncation
		maxLen = 4
	}
	return ansi.Truncate(s, maxLen, "...")
}
