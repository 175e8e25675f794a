package kanban

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned when a mutation names a column or card
// position that does not exist.
var ErrIndexOutOfRange = errors.New("index out of range")

func columnRangeError(i, length int) error {
	return fmt.Errorf("%w: column %d (board has %d)", ErrIndexOutOfRange, i, length)
}

func cardRangeError(col, i, length int) error {
	return fmt.Errorf("%w: card %d in column %d (column has %d)", ErrIndexOutOfRange, i, col, length)
}

func (b *Board) column(i int) (*Column, error) {
	c, ok := b.Column(i)
	if !ok {
		return nil, columnRangeError(i, len(b.Columns))
	}
	return c, nil
}

func (b *Board) card(col, i int) (*Card, error) {
	c, err := b.column(col)
	if err != nil {
		return nil, err
	}
	if !validIndex(i, len(c.Cards)) {
		return nil, cardRangeError(col, i, len(c.Cards))
	}
	return &c.Cards[i], nil
}

// SetTitle renames the board.
func (b *Board) SetTitle(title string) {
	b.Title = NormalizeTitle(title)
}

// AddColumn appends a column. The column's title and any cards it already
// holds are normalized the way NewColumn and NewCard do.
func (b *Board) AddColumn(col Column) {
	cards := make([]Card, 0, len(col.Cards))
	for _, c := range col.Cards {
		cards = append(cards, NewCard(c.Title, c.Description))
	}
	col.Title = NormalizeTitle(col.Title)
	col.Cards = cards
	b.Columns = append(b.Columns, col)
}

// DeleteColumn removes the column at index i together with its cards.
func (b *Board) DeleteColumn(i int) error {
	if _, err := b.column(i); err != nil {
		return err
	}
	b.Columns = append(b.Columns[:i], b.Columns[i+1:]...)
	return nil
}

// SetColumnTitle renames the column at index i.
func (b *Board) SetColumnTitle(i int, title string) error {
	c, err := b.column(i)
	if err != nil {
		return err
	}
	c.Title = NormalizeTitle(title)
	return nil
}

// SwapColumn exchanges the columns at i and j. Both must be valid.
func (b *Board) SwapColumn(i, j int) error {
	if _, err := b.column(i); err != nil {
		return err
	}
	if _, err := b.column(j); err != nil {
		return err
	}
	b.Columns[i], b.Columns[j] = b.Columns[j], b.Columns[i]
	return nil
}

// AddCard appends card to the column at index col.
func (b *Board) AddCard(col int, card Card) error {
	c, err := b.column(col)
	if err != nil {
		return err
	}
	c.Cards = append(c.Cards, NewCard(card.Title, card.Description))
	return nil
}

// DeleteCard removes one card, keeping the order of the remaining cards.
func (b *Board) DeleteCard(col, i int) error {
	if _, err := b.card(col, i); err != nil {
		return err
	}
	c := &b.Columns[col]
	c.Cards = append(c.Cards[:i], c.Cards[i+1:]...)
	return nil
}

// SetCardTitle renames a card. Line breaks in title are folded.
func (b *Board) SetCardTitle(col, i int, title string) error {
	card, err := b.card(col, i)
	if err != nil {
		return err
	}
	card.Title = NormalizeTitle(title)
	return nil
}

// SetCardDescription replaces a card's description.
func (b *Board) SetCardDescription(col, i int, description string) error {
	card, err := b.card(col, i)
	if err != nil {
		return err
	}
	card.Description = NormalizeDescription(description)
	return nil
}

// SwapCard exchanges two cards within one column.
func (b *Board) SwapCard(col, i, j int) error {
	if _, err := b.card(col, i); err != nil {
		return err
	}
	if _, err := b.card(col, j); err != nil {
		return err
	}
	cards := b.Columns[col].Cards
	cards[i], cards[j] = cards[j], cards[i]
	return nil
}

// MoveCard relocates a card to the end of another column.
//
// The card is taken out of the source with a swap-remove: the last card of
// the source column takes its slot. Source order after a move is therefore
// not preserved; only the set of remaining cards is.
func (b *Board) MoveCard(from, to, i int) error {
	if _, err := b.card(from, i); err != nil {
		return err
	}
	if _, err := b.column(to); err != nil {
		return err
	}
	if from == to {
		return nil
	}

	src := &b.Columns[from]
	card := src.Cards[i]
	last := len(src.Cards) - 1
	src.Cards[i] = src.Cards[last]
	src.Cards = src.Cards[:last]

	dst := &b.Columns[to]
	dst.Cards = append(dst.Cards, card)
	return nil
}
