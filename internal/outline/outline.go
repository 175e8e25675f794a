// Package outline converts between the tab-indented board file format and
// the kanban.Board tree.
//
// The format is line oriented. The first line is the board title; every
// later line is classified by its count of leading tabs:
//
//	My Board
//		Todo                  depth 1: column
//			Write plan        depth 2: card
//				draft part 1  depth 3: one description line
//
// Lines at depth 0 (after the title) or depth 4 and deeper are ignored so
// that files written by newer versions still load.
package outline

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/twiced-technology-gmbh/tabboard/internal/kanban"
)

// Indentation depths with a meaning in the format.
const (
	DepthColumn      = 1
	DepthCard        = 2
	DepthDescription = 3
)

const (
	indent = "\t"

	// maxLineSize bounds a single line when scanning a stream.
	maxLineSize = 4 << 20
)

// ErrMalformed is returned when the input has no title line, i.e. it is
// empty or holds only blank lines.
var ErrMalformed = errors.New("malformed board document")

// decoder accumulates the column and card currently being read.
type decoder struct {
	board *kanban.Board
	col   kanban.Column
	card  kanban.Card
}

// Decode builds a board from a sequence of lines (without line terminators).
// The first line is the title verbatim and may be blank when columns follow.
// A column or card with an empty title is never added to the board.
func Decode(lines []string) (*kanban.Board, error) {
	if blank(lines) {
		return nil, fmt.Errorf("%w: empty document", ErrMalformed)
	}
	title := strings.TrimRight(lines[0], "\r")

	d := &decoder{board: &kanban.Board{Title: title, Columns: []kanban.Column{}}}
	d.col = emptyColumn()

	for _, line := range lines[1:] {
		depth, text := Depth(strings.TrimRight(line, "\r"))
		switch depth {
		case DepthColumn:
			d.flushCard()
			d.flushColumn()
			d.col.Title = text
		case DepthCard:
			d.flushCard()
			d.card.Title = text
		case DepthDescription:
			d.card.Description += text + "\n"
		}
	}
	d.flushCard()
	d.flushColumn()

	return d.board, nil
}

func blank(lines []string) bool {
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			return false
		}
	}
	return true
}

func (d *decoder) flushCard() {
	if d.card.Title != "" {
		d.col.Cards = append(d.col.Cards, d.card)
	}
	d.card = kanban.Card{}
}

func (d *decoder) flushColumn() {
	if d.col.Title != "" {
		d.board.Columns = append(d.board.Columns, d.col)
	}
	d.col = emptyColumn()
}

func emptyColumn() kanban.Column {
	return kanban.Column{Cards: []kanban.Card{}}
}

// Depth returns the number of leading indentation units of line and the
// remaining text.
func Depth(line string) (int, string) {
	text := strings.TrimLeft(line, indent)
	return len(line) - len(text), text
}

// Encode is the inverse of Decode.
func Encode(b *kanban.Board) []string {
	lines := []string{b.Title}
	for _, col := range b.Columns {
		lines = append(lines, indentLine(DepthColumn, col.Title))
		for _, card := range col.Cards {
			lines = append(lines, indentLine(DepthCard, card.Title))
			for _, d := range card.DescriptionLines() {
				lines = append(lines, indentLine(DepthDescription, d))
			}
		}
	}
	return lines
}

func indentLine(depth int, text string) string {
	return strings.Repeat(indent, depth) + text
}

// Read decodes a board from r.
func Read(r io.Reader) (*kanban.Board, error) {
	lines, err := ReadLines(r)
	if err != nil {
		return nil, err
	}
	return Decode(lines)
}

// ReadLines splits r into lines without terminators.
func ReadLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize) //nolint:mnd // initial buffer
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning board: %w", err)
	}
	return lines, nil
}

// Write encodes b to w, terminating every line with "\n".
func Write(w io.Writer, b *kanban.Board) error {
	bw := bufio.NewWriter(w)
	for _, line := range Encode(b) {
		if _, err := bw.WriteString(line); err != nil {
			return fmt.Errorf("writing board: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing board: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing board: %w", err)
	}
	return nil
}

// Marshal returns the encoded file contents of b.
func Marshal(b *kanban.Board) []byte {
	var sb strings.Builder
	_ = Write(&sb, b) // strings.Builder never fails
	return []byte(sb.String())
}

// Unmarshal decodes file contents.
func Unmarshal(data []byte) (*kanban.Board, error) {
	return Read(strings.NewReader(string(data)))
}
