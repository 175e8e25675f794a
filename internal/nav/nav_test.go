package nav_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/tabboard/internal/kanban"
	"github.com/twiced-technology-gmbh/tabboard/internal/nav"
)

// boardWith builds a board whose column i holds counts[i] cards.
func boardWith(t *testing.T, counts ...int) *kanban.Board {
	t.Helper()
	b := kanban.New("Test")
	for i, n := range counts {
		b.AddColumn(kanban.NewColumn(string(rune('A' + i))))
		for j := range n {
			require.NoError(t, b.AddCard(i, kanban.NewCard(string(rune('a'+j)), "")))
		}
	}
	return b
}

func assertInvariant(t *testing.T, s *nav.State, b *kanban.Board) {
	t.Helper()
	n := b.ColumnCount()
	if n == 0 {
		assert.Equal(t, 0, s.SelectedColumn())
		assert.Equal(t, 0, s.SelectedCard())
		assert.Equal(t, 0, s.ColumnsStart())
		return
	}
	require.Less(t, s.SelectedColumn(), n)
	require.GreaterOrEqual(t, s.SelectedColumn(), 0)
	if cards := b.CardCount(s.SelectedColumn()); cards > 0 {
		assert.Less(t, s.SelectedCard(), cards)
	} else {
		assert.Equal(t, 0, s.SelectedCard())
	}
	if n > s.ColumnsOffset() {
		assert.LessOrEqual(t, s.ColumnsStart(), s.SelectedColumn())
		assert.Less(t, s.SelectedColumn(), s.ColumnsStart()+s.ColumnsOffset())
	} else {
		assert.Equal(t, 0, s.ColumnsStart())
	}
}

func TestNew_DefaultOffset(t *testing.T) {
	assert.Equal(t, nav.DefaultColumnsOffset, nav.New(0).ColumnsOffset())
	assert.Equal(t, 5, nav.New(5).ColumnsOffset())
}

func TestColumnWraparound(t *testing.T) {
	for _, offset := range []int{1, 2, 3, 4} {
		b := boardWith(t, 1, 1, 1)

		s := nav.New(offset)
		s.Select(b, 2, 0)
		s.NextColumn(b)
		assert.Equal(t, 0, s.SelectedColumn(), "offset %d", offset)
		assert.Equal(t, 0, s.ColumnsStart(), "offset %d", offset)

		s.PrevColumn(b)
		assert.Equal(t, 2, s.SelectedColumn(), "offset %d", offset)
		assert.Equal(t, max(0, 3-offset), s.ColumnsStart(), "offset %d", offset)
	}
}

func TestColumnWindowSlides(t *testing.T) {
	b := boardWith(t, 0, 0, 0, 0, 0)
	s := nav.New(3)

	for want := 1; want < 5; want++ {
		s.NextColumn(b)
		assert.Equal(t, want, s.SelectedColumn())
		assertInvariant(t, s, b)
	}
	assert.Equal(t, 2, s.ColumnsStart())

	s.PrevColumn(b)
	s.PrevColumn(b)
	s.PrevColumn(b)
	assert.Equal(t, 1, s.SelectedColumn())
	assert.Equal(t, 1, s.ColumnsStart())

	start, end := s.Visible(b)
	assert.Equal(t, 1, start)
	assert.Equal(t, 4, end)
}

func TestColumnMove_ClampsCard(t *testing.T) {
	b := boardWith(t, 5, 2, 0)
	s := nav.New(3)
	s.Select(b, 0, 4)

	s.NextColumn(b)
	assert.Equal(t, 1, s.SelectedCard())

	s.NextColumn(b)
	assert.Equal(t, 0, s.SelectedCard())
}

func TestCardWraparound(t *testing.T) {
	b := boardWith(t, 3)
	s := nav.New(3)

	s.PrevCard(b)
	assert.Equal(t, 2, s.SelectedCard())
	s.NextCard(b)
	assert.Equal(t, 0, s.SelectedCard())
	s.NextCard(b)
	assert.Equal(t, 1, s.SelectedCard())
}

func TestMoves_EmptyBoardAndColumn(t *testing.T) {
	empty := kanban.New("Empty")
	s := nav.New(3)
	s.NextColumn(empty)
	s.PrevColumn(empty)
	s.NextCard(empty)
	s.PrevCard(empty)
	assertInvariant(t, s, empty)

	b := boardWith(t, 0)
	s.NextCard(b)
	s.PrevCard(b)
	assert.Equal(t, 0, s.SelectedCard())
	assert.False(t, s.HasCard(b))
}

func TestRepair_AfterDeletingLastColumn(t *testing.T) {
	b := boardWith(t, 1, 1, 1, 1)
	s := nav.New(3)
	s.Select(b, 3, 0)
	assert.Equal(t, 1, s.ColumnsStart())

	require.NoError(t, b.DeleteColumn(3))
	s.Repair(b)
	assert.Equal(t, 2, s.SelectedColumn())
	assert.Equal(t, 0, s.ColumnsStart())
	assertInvariant(t, s, b)
}

func TestRepair_AfterDeletingLastCard(t *testing.T) {
	b := boardWith(t, 2)
	s := nav.New(3)
	s.Select(b, 0, 1)

	require.NoError(t, b.DeleteCard(0, 1))
	s.Repair(b)
	assert.Equal(t, 0, s.SelectedCard())
	assert.True(t, s.HasCard(b))
}

func TestSetColumnsOffset(t *testing.T) {
	b := boardWith(t, 0, 0, 0, 0, 0, 0)
	s := nav.New(3)
	s.Select(b, 5, 0)
	assert.Equal(t, 3, s.ColumnsStart())

	s.SetColumnsOffset(b, 2)
	assert.Equal(t, 4, s.ColumnsStart())
	assertInvariant(t, s, b)
}

// Random interleavings of navigation and mutations, including rejected
// out-of-range ones, never leave the cursor outside the board.
func TestInvariant_InterleavedMutations(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	b := kanban.New("Fuzz")
	s := nav.New(3)

	for range 2000 {
		cols := b.ColumnCount()
		col := rng.IntN(cols+2) - 1
		card := rng.IntN(b.CardCount(max(col, 0))+2) - 1

		switch rng.IntN(9) {
		case 0:
			b.AddColumn(kanban.NewColumn("col"))
		case 1:
			_ = b.DeleteColumn(col)
		case 2, 3:
			_ = b.AddCard(col, kanban.NewCard("card", ""))
		case 4:
			_ = b.DeleteCard(col, card)
		case 5:
			_ = b.MoveCard(col, rng.IntN(cols+1), card)
		case 6:
			s.NextColumn(b)
		case 7:
			s.PrevColumn(b)
		case 8:
			if rng.IntN(2) == 0 {
				s.NextCard(b)
			} else {
				s.PrevCard(b)
			}
		}
		s.Repair(b)
		assertInvariant(t, s, b)
	}
}
