// Package nav tracks the cursor over a board: the selected column and card,
// and the horizontally scrolling window of visible columns.
//
// State never mutates the board. It reads the board's shape through Shape
// and must be repaired after every board mutation.
package nav

// DefaultColumnsOffset is the number of columns visible at once.
const DefaultColumnsOffset = 3

// Shape is the read-only view of a board that navigation needs.
type Shape interface {
	ColumnCount() int
	CardCount(col int) int
}

// State is the cursor and column window.
type State struct {
	// selectedColumn is the index of the selected column, 0 when there are none
	selectedColumn int

	// selectedCard is the index of the selected card within selectedColumn
	selectedCard int

	// columnsStart is the index of the leftmost visible column
	columnsStart int

	// columnsOffset is the number of columns visible at once
	columnsOffset int
}

// New creates a State showing offset columns at a time. A non-positive
// offset falls back to DefaultColumnsOffset.
func New(offset int) *State {
	if offset <= 0 {
		offset = DefaultColumnsOffset
	}
	return &State{columnsOffset: offset}
}

// SelectedColumn returns the index of the selected column.
func (s *State) SelectedColumn() int {
	return s.selectedColumn
}

// SelectedCard returns the index of the selected card.
func (s *State) SelectedCard() int {
	return s.selectedCard
}

// ColumnsStart returns the index of the leftmost visible column.
func (s *State) ColumnsStart() int {
	return s.columnsStart
}

// ColumnsOffset returns the number of columns visible at once.
func (s *State) ColumnsOffset() int {
	return s.columnsOffset
}

// HasCard reports whether the cursor points at an existing card.
func (s *State) HasCard(b Shape) bool {
	return s.selectedColumn < b.ColumnCount() && s.selectedCard < b.CardCount(s.selectedColumn)
}

// NextColumn selects the column to the right, wrapping to the first.
func (s *State) NextColumn(b Shape) {
	n := b.ColumnCount()
	if n == 0 {
		return
	}
	if s.selectedColumn+1 >= n {
		s.selectedColumn = 0
		s.columnsStart = 0
	} else {
		s.selectedColumn++
		if s.selectedColumn >= s.columnsStart+s.columnsOffset {
			s.columnsStart = s.selectedColumn - s.columnsOffset + 1
		}
	}
	s.clampCard(b)
}

// PrevColumn selects the column to the left, wrapping to the last.
func (s *State) PrevColumn(b Shape) {
	n := b.ColumnCount()
	if n == 0 {
		return
	}
	if s.selectedColumn == 0 {
		s.selectedColumn = n - 1
		s.columnsStart = max(0, n-s.columnsOffset)
	} else {
		s.selectedColumn--
		if s.selectedColumn < s.columnsStart {
			s.columnsStart = s.selectedColumn
		}
	}
	s.clampCard(b)
}

// NextCard selects the card below, wrapping to the first.
func (s *State) NextCard(b Shape) {
	n := s.cards(b)
	if n == 0 {
		return
	}
	s.selectedCard = (s.selectedCard + 1) % n
}

// PrevCard selects the card above, wrapping to the last.
func (s *State) PrevCard(b Shape) {
	n := s.cards(b)
	if n == 0 {
		return
	}
	s.selectedCard = (s.selectedCard - 1 + n) % n
}

// Select moves the cursor to (col, card) and repairs it against b.
func (s *State) Select(b Shape, col, card int) {
	s.selectedColumn = col
	s.selectedCard = card
	s.Repair(b)
}

// Reset moves the cursor to the first column and card.
func (s *State) Reset() {
	s.selectedColumn = 0
	s.selectedCard = 0
	s.columnsStart = 0
}

// Repair clamps the cursor and window back into range after the board
// changed shape.
func (s *State) Repair(b Shape) {
	n := b.ColumnCount()
	if n == 0 {
		s.Reset()
		return
	}
	s.selectedColumn = clamp(s.selectedColumn, 0, n-1)
	s.clampCard(b)

	if n <= s.columnsOffset {
		s.columnsStart = 0
		return
	}
	// Keep the selection inside the window, then keep the window full.
	if s.selectedColumn < s.columnsStart {
		s.columnsStart = s.selectedColumn
	}
	if s.selectedColumn >= s.columnsStart+s.columnsOffset {
		s.columnsStart = s.selectedColumn - s.columnsOffset + 1
	}
	s.columnsStart = clamp(s.columnsStart, 0, n-s.columnsOffset)
}

// Visible returns the half-open range [start, end) of visible columns.
func (s *State) Visible(b Shape) (int, int) {
	n := b.ColumnCount()
	start := min(s.columnsStart, n)
	return start, min(start+s.columnsOffset, n)
}

// SetColumnsOffset changes the window size and repairs the state.
func (s *State) SetColumnsOffset(b Shape, offset int) {
	if offset <= 0 {
		offset = DefaultColumnsOffset
	}
	s.columnsOffset = offset
	s.Repair(b)
}

func (s *State) cards(b Shape) int {
	if s.selectedColumn >= b.ColumnCount() {
		return 0
	}
	return b.CardCount(s.selectedColumn)
}

func (s *State) clampCard(b Shape) {
	n := s.cards(b)
	if n == 0 {
		s.selectedCard = 0
		return
	}
	s.selectedCard = clamp(s.selectedCard, 0, n-1)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
