// Package kanban holds the in-memory board model: a titled board that owns an
// ordered list of columns, each owning an ordered list of cards.
//
// Columns and cards are addressed by position only. Every index-taking
// mutation accepts an index iff 0 <= index < length and otherwise returns an
// error wrapping ErrIndexOutOfRange without touching the board.
package kanban

import (
	"strings"
)

// Card is a titled unit of work with a multi-line description.
type Card struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Column is a named ordered list of cards.
type Column struct {
	Title string `json:"title"`
	Cards []Card `json:"cards"`
}

// Board is the whole document.
type Board struct {
	Title   string   `json:"title"`
	Columns []Column `json:"columns"`
}

// New creates an empty board.
func New(title string) *Board {
	return &Board{Title: NormalizeTitle(title), Columns: []Column{}}
}

// NewColumn creates a column with no cards.
func NewColumn(title string) Column {
	return Column{Title: NormalizeTitle(title), Cards: []Card{}}
}

// NewCard creates a card with a normalized title and description.
func NewCard(title, description string) Card {
	return Card{
		Title:       NormalizeTitle(title),
		Description: NormalizeDescription(description),
	}
}

// NormalizeTitle folds a title onto a single line. Line breaks become single
// spaces and leading tabs are dropped, since a tab prefix is read back as
// outline depth.
func NormalizeTitle(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	parts := strings.Split(s, "\n")
	kept := parts[:0]
	for _, p := range parts {
		p = strings.TrimRight(p, "\r")
		if p == "" {
			continue
		}
		kept = append(kept, p)
	}
	return strings.TrimLeft(strings.Join(kept, " "), "\t")
}

// NormalizeDescription returns the stored form of a description: every line
// (including the last) terminated by "\n", with leading tabs and a trailing
// carriage return removed.
// An empty or all-whitespace description becomes "".
func NormalizeDescription(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	if strings.TrimSpace(s) == "" {
		return ""
	}
	s = strings.TrimSuffix(s, "\n")

	var buf strings.Builder
	for _, line := range strings.Split(s, "\n") {
		buf.WriteString(strings.TrimLeft(strings.TrimRight(line, "\r"), "\t"))
		buf.WriteByte('\n')
	}
	return buf.String()
}

// DescriptionLines splits a stored description into its physical lines.
func (c Card) DescriptionLines() []string {
	if c.Description == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(c.Description, "\n"), "\n")
}

// ColumnCount returns the number of columns.
func (b *Board) ColumnCount() int {
	return len(b.Columns)
}

// CardCount returns the number of cards in column col, or 0 if col is invalid.
func (b *Board) CardCount(col int) int {
	c, ok := b.Column(col)
	if !ok {
		return 0
	}
	return len(c.Cards)
}

// Column returns a pointer to the column at index i.
func (b *Board) Column(i int) (*Column, bool) {
	if !validIndex(i, len(b.Columns)) {
		return nil, false
	}
	return &b.Columns[i], true
}

// Card returns a pointer to the card at (col, card).
func (b *Board) Card(col, card int) (*Card, bool) {
	c, ok := b.Column(col)
	if !ok || !validIndex(card, len(c.Cards)) {
		return nil, false
	}
	return &c.Cards[card], true
}

// TotalCards returns the number of cards across all columns.
func (b *Board) TotalCards() int {
	n := 0
	for _, c := range b.Columns {
		n += len(c.Cards)
	}
	return n
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	out := &Board{Title: b.Title, Columns: make([]Column, len(b.Columns))}
	for i, c := range b.Columns {
		out.Columns[i] = Column{Title: c.Title, Cards: append([]Card{}, c.Cards...)}
	}
	return out
}

func validIndex(i, length int) bool {
	return i >= 0 && i < length
}
