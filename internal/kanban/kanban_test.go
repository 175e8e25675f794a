package kanban

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBoard(t *testing.T) *Board {
	t.Helper()
	b := New("Test")
	b.AddColumn(NewColumn("A"))
	b.AddColumn(NewColumn("B"))
	for _, title := range []string{"x", "y", "z"} {
		require.NoError(t, b.AddCard(0, NewCard(title, "")))
	}
	return b
}

func cardTitles(c *Column) []string {
	titles := make([]string, 0, len(c.Cards))
	for _, card := range c.Cards {
		titles = append(titles, card.Title)
	}
	return titles
}

func TestNormalizeTitle(t *testing.T) {
	assert.Equal(t, "one two", NormalizeTitle("one\ntwo"))
	assert.Equal(t, "one two", NormalizeTitle("one\r\ntwo\n"))
	assert.Equal(t, "lead", NormalizeTitle("\t\tlead"))
	assert.Equal(t, "", NormalizeTitle(""))
}

func TestNormalizeDescription(t *testing.T) {
	assert.Equal(t, "", NormalizeDescription(""))
	assert.Equal(t, "", NormalizeDescription(" \n\t"))
	assert.Equal(t, "a\n", NormalizeDescription("a"))
	assert.Equal(t, "a\nb\n", NormalizeDescription("a\r\nb\n"))
	assert.Equal(t, "a\n\nb\n", NormalizeDescription("a\n\nb"))
	assert.Equal(t, "nested\n", NormalizeDescription("\t\tnested"))
	assert.Equal(t, "a\nb\n", NormalizeDescription("a\r\nb\r"))
	assert.Equal(t, "a\n", NormalizeDescription("a\r"))
}

func TestAddColumn_NormalizesCards(t *testing.T) {
	b := New("B")
	b.AddColumn(Column{Title: "Todo", Cards: []Card{{Title: "line1\nline2", Description: "\tdeep"}}})

	require.Len(t, b.Columns[0].Cards, 1)
	assert.Equal(t, "line1 line2", b.Columns[0].Cards[0].Title)
	assert.Equal(t, "deep\n", b.Columns[0].Cards[0].Description)

	b.AddColumn(Column{Title: "Done"})
	assert.NotNil(t, b.Columns[1].Cards)
}

func TestCard_DescriptionLines(t *testing.T) {
	assert.Nil(t, NewCard("t", "").DescriptionLines())
	assert.Equal(t, []string{"a", "", "b"}, NewCard("t", "a\n\nb").DescriptionLines())
}

func TestColumnMutations(t *testing.T) {
	b := newTestBoard(t)
	b.AddColumn(NewColumn("C"))

	require.NoError(t, b.SetColumnTitle(2, "Renamed"))
	assert.Equal(t, "Renamed", b.Columns[2].Title)

	require.NoError(t, b.SwapColumn(0, 2))
	assert.Equal(t, "Renamed", b.Columns[0].Title)
	assert.Equal(t, "A", b.Columns[2].Title)

	require.NoError(t, b.DeleteColumn(1))
	require.Len(t, b.Columns, 2)
	assert.Equal(t, "A", b.Columns[1].Title)
	assert.Len(t, b.Columns[1].Cards, 3)
}

func TestCardMutations(t *testing.T) {
	b := newTestBoard(t)

	require.NoError(t, b.SetCardTitle(0, 1, "why\nnot"))
	require.NoError(t, b.SetCardDescription(0, 1, "line"))
	card, ok := b.Card(0, 1)
	require.True(t, ok)
	assert.Equal(t, "why not", card.Title)
	assert.Equal(t, "line\n", card.Description)

	require.NoError(t, b.SwapCard(0, 0, 2))
	assert.Equal(t, []string{"z", "why not", "x"}, cardTitles(&b.Columns[0]))

	require.NoError(t, b.DeleteCard(0, 0))
	assert.Equal(t, []string{"why not", "x"}, cardTitles(&b.Columns[0]))
}

func TestMoveCard_SwapRemove(t *testing.T) {
	b := newTestBoard(t)

	require.NoError(t, b.MoveCard(0, 1, 0))

	src := cardTitles(&b.Columns[0])
	assert.ElementsMatch(t, []string{"y", "z"}, src)
	// Swap-remove: the last card fills the vacated slot.
	assert.Equal(t, []string{"z", "y"}, src)
	assert.Equal(t, []string{"x"}, cardTitles(&b.Columns[1]))
}

func TestMoveCard_LastCard(t *testing.T) {
	b := newTestBoard(t)
	require.NoError(t, b.MoveCard(0, 1, 2))
	assert.Equal(t, []string{"x", "y"}, cardTitles(&b.Columns[0]))
	assert.Equal(t, []string{"z"}, cardTitles(&b.Columns[1]))
}

func TestMoveCard_SameColumnIsNoop(t *testing.T) {
	b := newTestBoard(t)
	require.NoError(t, b.MoveCard(0, 0, 1))
	assert.Equal(t, []string{"x", "y", "z"}, cardTitles(&b.Columns[0]))
}

// Every index-taking mutation must reject index == length.
func TestMutations_RejectIndexEqualToLength(t *testing.T) {
	tests := []struct {
		name string
		fn   func(b *Board) error
	}{
		{"DeleteColumn", func(b *Board) error { return b.DeleteColumn(2) }},
		{"SetColumnTitle", func(b *Board) error { return b.SetColumnTitle(2, "t") }},
		{"SwapColumn first", func(b *Board) error { return b.SwapColumn(2, 0) }},
		{"SwapColumn second", func(b *Board) error { return b.SwapColumn(0, 2) }},
		{"AddCard", func(b *Board) error { return b.AddCard(2, NewCard("t", "")) }},
		{"DeleteCard column", func(b *Board) error { return b.DeleteCard(2, 0) }},
		{"DeleteCard card", func(b *Board) error { return b.DeleteCard(0, 3) }},
		{"SetCardTitle", func(b *Board) error { return b.SetCardTitle(0, 3, "t") }},
		{"SetCardDescription", func(b *Board) error { return b.SetCardDescription(0, 3, "d") }},
		{"SwapCard first", func(b *Board) error { return b.SwapCard(0, 3, 0) }},
		{"SwapCard second", func(b *Board) error { return b.SwapCard(0, 0, 3) }},
		{"MoveCard card", func(b *Board) error { return b.MoveCard(0, 1, 3) }},
		{"MoveCard source", func(b *Board) error { return b.MoveCard(2, 1, 0) }},
		{"MoveCard destination", func(b *Board) error { return b.MoveCard(0, 2, 0) }},
		{"MoveCard from empty column", func(b *Board) error { return b.MoveCard(1, 0, 0) }},
		{"negative column", func(b *Board) error { return b.DeleteColumn(-1) }},
		{"negative card", func(b *Board) error { return b.DeleteCard(0, -1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBoard(t)
			before := b.Clone()

			err := tt.fn(b)
			require.ErrorIs(t, err, ErrIndexOutOfRange)
			assert.Equal(t, before, b, "board must be unchanged after a rejected mutation")
		})
	}
}

func TestMutations_AcceptLastIndex(t *testing.T) {
	b := newTestBoard(t)
	require.NoError(t, b.SetColumnTitle(1, "last"))
	require.NoError(t, b.SetCardTitle(0, 2, "last card"))
	require.NoError(t, b.DeleteCard(0, 2))
	require.NoError(t, b.DeleteColumn(1))
	assert.Len(t, b.Columns, 1)
	assert.Len(t, b.Columns[0].Cards, 2)
}

func TestCounts(t *testing.T) {
	b := newTestBoard(t)
	assert.Equal(t, 2, b.ColumnCount())
	assert.Equal(t, 3, b.CardCount(0))
	assert.Equal(t, 0, b.CardCount(1))
	assert.Equal(t, 0, b.CardCount(5))
	assert.Equal(t, 3, b.TotalCards())
}

func TestFindAndSearch(t *testing.T) {
	b := newTestBoard(t)
	require.NoError(t, b.AddCard(1, NewCard("Deploy", "push to PROD")))

	assert.Equal(t, 1, b.FindColumn("b"))
	assert.Equal(t, -1, b.FindColumn("missing"))
	assert.Equal(t, 0, b.FindCard(1, "deploy"))
	assert.Equal(t, -1, b.FindCard(9, "deploy"))

	matches := b.Search("prod")
	require.Len(t, matches, 1)
	assert.Equal(t, Match{Column: 1, Card: 0, ColumnTitle: "B", Title: "Deploy"}, matches[0])

	assert.Len(t, b.Search(""), 4)
}

func TestClone_IsDeep(t *testing.T) {
	b := newTestBoard(t)
	c := b.Clone()
	require.NoError(t, c.SetCardTitle(0, 0, "changed"))
	assert.Equal(t, "x", b.Columns[0].Cards[0].Title)

	titles := cardTitles(&c.Columns[0])
	sort.Strings(titles)
	assert.Equal(t, []string{"changed", "y", "z"}, titles)
}
