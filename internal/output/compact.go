package output

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/twiced-technology-gmbh/tabboard/internal/activity"
	"github.com/twiced-technology-gmbh/tabboard/internal/kanban"
)

// BoardCompact renders the board overview, one line per column.
func BoardCompact(w io.Writer, b *kanban.Board) {
	fmt.Fprintf(w, "%s (%d cards)\n", b.Title, b.TotalCards())
	for i, c := range b.Columns {
		fmt.Fprintf(w, "  %d %s: %d\n", i+1, c.Title, len(c.Cards))
	}
}

// ColumnCompact renders one line per card of a column.
func ColumnCompact(w io.Writer, b *kanban.Board, col int) {
	c, ok := b.Column(col)
	if !ok {
		return
	}
	if len(c.Cards) == 0 {
		fmt.Fprintln(os.Stderr, "No cards found.")
		return
	}
	for i, card := range c.Cards {
		fmt.Fprintln(w, formatCardLine(col, i, c.Title, card))
	}
}

// CardDetailCompact renders a card line followed by its indented description.
func CardDetailCompact(w io.Writer, b *kanban.Board, col, card int) {
	c, ok := b.Card(col, card)
	if !ok {
		return
	}
	fmt.Fprintln(w, formatCardLine(col, card, b.Columns[col].Title, *c))
	for _, line := range c.DescriptionLines() {
		fmt.Fprintln(w, "  "+line)
	}
}

// SearchCompact renders one line per match.
func SearchCompact(w io.Writer, matches []kanban.Match) {
	if len(matches) == 0 {
		fmt.Fprintln(os.Stderr, "No cards found.")
		return
	}
	for _, m := range matches {
		fmt.Fprintln(w, formatCardLine(m.Column, m.Card, m.ColumnTitle, kanban.Card{Title: m.Title}))
	}
}

// ActivityCompact renders one line per journal entry.
func ActivityCompact(w io.Writer, entries []activity.Entry) {
	for _, e := range entries {
		line := e.Timestamp.Local().Format("2006-01-02T15:04") + " " + e.Action
		if e.Column != "" {
			line += " [" + e.Column + "]"
		}
		if e.Card != "" {
			line += " " + e.Card
		}
		if e.Detail != "" {
			line += " (" + e.Detail + ")"
		}
		fmt.Fprintln(w, line)
	}
}

// formatCardLine builds the one-line representation of a card.
func formatCardLine(col, card int, column string, c kanban.Card) string {
	line := strconv.Itoa(col+1) + "." + strconv.Itoa(card+1) + " [" + column + "] " + c.Title
	if n := len(c.DescriptionLines()); n > 0 {
		line += " (+" + strconv.Itoa(n) + " lines)"
	}
	return line
}
