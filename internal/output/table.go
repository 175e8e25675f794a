package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/twiced-technology-gmbh/tabboard/internal/activity"
	"github.com/twiced-technology-gmbh/tabboard/internal/kanban"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	titleStyle  = lipgloss.NewStyle().Bold(true)
	columnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	actionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
)

const (
	maxTitleWidth   = 48
	maxPreviewWidth = 40
	detailWidth     = 80
)

// BoardTable renders the board overview: one row per column.
func BoardTable(w io.Writer, b *kanban.Board) {
	fmt.Fprintln(w, titleStyle.Render(b.Title))
	fmt.Fprintf(w, "Total: %d cards in %d columns\n", b.TotalCards(), b.ColumnCount())
	if b.ColumnCount() == 0 {
		return
	}
	fmt.Fprintln(w)

	const pad = 2
	posW, titleW := 3, 6
	for i, c := range b.Columns {
		posW = max(posW, len(strconv.Itoa(i+1))+pad)
		titleW = max(titleW, min(lipgloss.Width(c.Title)+pad, maxTitleWidth))
	}

	header := fmt.Sprintf("%-*s %-*s %s", posW, "#", titleW, "COLUMN", "CARDS")
	fmt.Fprintln(w, headerStyle.Render(header))
	for i, c := range b.Columns {
		fmt.Fprintf(w, "%-*d %s %d\n", posW, i+1,
			padRight(columnStyle.Render(truncate(c.Title, titleW-1)), titleW), len(c.Cards))
	}
}

// ColumnTable renders the cards of one column.
func ColumnTable(w io.Writer, b *kanban.Board, col int) {
	c, ok := b.Column(col)
	if !ok {
		return
	}
	fmt.Fprintln(w, columnStyle.Bold(true).Render(c.Title)+dimStyle.Render(fmt.Sprintf(" (%d cards)", len(c.Cards))))
	if len(c.Cards) == 0 {
		fmt.Fprintln(os.Stderr, "No cards found.")
		return
	}

	const pad = 2
	posW, titleW := 3, 6
	for i, card := range c.Cards {
		posW = max(posW, len(strconv.Itoa(i+1))+pad)
		titleW = max(titleW, min(lipgloss.Width(card.Title)+pad, maxTitleWidth))
	}

	header := fmt.Sprintf("%-*s %-*s %s", posW, "#", titleW, "TITLE", "DESCRIPTION")
	fmt.Fprintln(w, headerStyle.Render(header))
	for i, card := range c.Cards {
		row := fmt.Sprintf("%-*d %s %s", posW, i+1,
			padRight(truncate(card.Title, titleW-1), titleW), preview(card))
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// CardDetail renders a single card. With markdown set the description is
// rendered through glamour.
func CardDetail(w io.Writer, b *kanban.Board, col, card int, markdown bool) {
	c, ok := b.Card(col, card)
	if !ok {
		return
	}
	column := b.Columns[col]

	fmt.Fprintln(w, titleStyle.Render(c.Title))
	fmt.Fprintln(w, strings.Repeat("─", min(lipgloss.Width(c.Title), detailWidth)))
	printField(w, "Column", columnStyle.Render(column.Title)+dimStyle.Render(fmt.Sprintf(" (#%d)", col+1)))
	printField(w, "Position", fmt.Sprintf("%d of %d", card+1, len(column.Cards)))

	if c.Description == "" {
		printField(w, "Description", dimStyle.Render("--"))
		return
	}
	fmt.Fprintln(w)
	if markdown {
		fmt.Fprintln(w, Markdown(c.Description, detailWidth))
		return
	}
	fmt.Fprint(w, c.Description)
}

// SearchTable renders search results.
func SearchTable(w io.Writer, matches []kanban.Match) {
	if len(matches) == 0 {
		fmt.Fprintln(os.Stderr, "No cards found.")
		return
	}

	const pad = 2
	colW := 8
	for _, m := range matches {
		colW = max(colW, min(lipgloss.Width(m.ColumnTitle)+len(strconv.Itoa(m.Column+1))+3+pad, maxTitleWidth))
	}

	header := fmt.Sprintf("%-*s %-5s %s", colW, "COLUMN", "#", "TITLE")
	fmt.Fprintln(w, headerStyle.Render(header))
	for _, m := range matches {
		column := fmt.Sprintf("%d: %s", m.Column+1, m.ColumnTitle)
		fmt.Fprintf(w, "%s %-5d %s\n",
			padRight(columnStyle.Render(truncate(column, colW-1)), colW), m.Card+1, truncate(m.Title, maxTitleWidth))
	}
}

// ActivityTable renders journal entries, oldest first.
func ActivityTable(w io.Writer, entries []activity.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "No activity recorded.")
		return
	}

	const timeW, actionW = 17, 15
	header := fmt.Sprintf("%-*s %-*s %s", timeW, "TIME", actionW, "ACTION", "TARGET")
	fmt.Fprintln(w, headerStyle.Render(header))
	for _, e := range entries {
		row := fmt.Sprintf("%-*s %s %s",
			timeW, e.Timestamp.Local().Format("2006-01-02 15:04"),
			padRight(actionStyle.Render(e.Action), actionW),
			entryTarget(e))
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// Messagef prints a simple formatted message line.
func Messagef(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-12s %s\n", label+":", value)
}

func entryTarget(e activity.Entry) string {
	parts := make([]string, 0, 3) //nolint:mnd // column, card, detail
	if e.Column != "" {
		parts = append(parts, e.Column)
	}
	if e.Card != "" {
		parts = append(parts, e.Card)
	}
	target := strings.Join(parts, " / ")
	if e.Detail != "" {
		target += dimStyle.Render(" (" + e.Detail + ")")
	}
	return target
}

// preview returns the first description line, shortened for a table cell.
func preview(c kanban.Card) string {
	lines := c.DescriptionLines()
	if len(lines) == 0 {
		return dimStyle.Render("--")
	}
	text := lines[0]
	if len(lines) > 1 {
		text += " …"
	}
	return dimStyle.Render(truncate(text, maxPreviewWidth))
}

// truncate shortens s to at most width cells, marking the cut with "...".
func truncate(s string, width int) string {
	return ansi.Truncate(s, width, "...")
}

// padRight pads s with spaces to the given visible width, accounting for ANSI
// escape codes that are invisible but consume bytes.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}
