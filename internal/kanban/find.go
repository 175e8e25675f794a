package kanban

import "strings"

// Match locates a card found by Search.
type Match struct {
	Column      int    `json:"column"`
	Card        int    `json:"card"`
	ColumnTitle string `json:"column_title"`
	Title       string `json:"title"`
}

// FindColumn returns the index of the first column whose title equals title
// (case-insensitive), or -1.
func (b *Board) FindColumn(title string) int {
	for i, c := range b.Columns {
		if strings.EqualFold(c.Title, title) {
			return i
		}
	}
	return -1
}

// FindCard returns the index of the first card in column col whose title
// equals title (case-insensitive), or -1.
func (b *Board) FindCard(col int, title string) int {
	c, ok := b.Column(col)
	if !ok {
		return -1
	}
	for i, card := range c.Cards {
		if strings.EqualFold(card.Title, title) {
			return i
		}
	}
	return -1
}

// Search performs case-insensitive substring matching across card titles
// and descriptions, in board order. An empty query matches every card.
func (b *Board) Search(query string) []Match {
	q := strings.ToLower(strings.TrimSpace(query))
	var matches []Match
	for ci, col := range b.Columns {
		for ki, card := range col.Cards {
			if q != "" && !matchesSearch(card, q) {
				continue
			}
			matches = append(matches, Match{
				Column:      ci,
				Card:        ki,
				ColumnTitle: col.Title,
				Title:       card.Title,
			})
		}
	}
	return matches
}

func matchesSearch(c Card, q string) bool {
	return strings.Contains(strings.ToLower(c.Title), q) ||
		strings.Contains(strings.ToLower(c.Description), q)
}
