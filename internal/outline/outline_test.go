package outline

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/tabboard/internal/kanban"
)

func scenarioLines() []string {
	return []string{
		"My Board",
		"\tTodo",
		"\t\tWrite plan",
		"\t\t\tdraft section 1",
		"\t\t\tdraft section 2",
		"\tDone",
	}
}

func TestDecode_Scenario(t *testing.T) {
	b, err := Decode(scenarioLines())
	require.NoError(t, err)

	assert.Equal(t, "My Board", b.Title)
	require.Len(t, b.Columns, 2)
	assert.Equal(t, "Todo", b.Columns[0].Title)
	assert.Equal(t, "Done", b.Columns[1].Title)

	require.Len(t, b.Columns[0].Cards, 1)
	card := b.Columns[0].Cards[0]
	assert.Equal(t, "Write plan", card.Title)
	assert.Equal(t, "draft section 1\ndraft section 2\n", card.Description)
	assert.Empty(t, b.Columns[1].Cards)

	assert.Equal(t, scenarioLines(), Encode(b))
}

func TestDecode_EmptyInput(t *testing.T) {
	_, err := Decode(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformed))

	_, err = Decode([]string{""})
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = Read(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = Read(strings.NewReader("\n  \n\t\n"))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestDecode_BlankTitleKeepsContent(t *testing.T) {
	b, err := Read(strings.NewReader("\n\tTodo\n\t\tImportant card\n\t\t\tnotes\n"))
	require.NoError(t, err)

	assert.Empty(t, b.Title)
	require.Len(t, b.Columns, 1)
	require.Len(t, b.Columns[0].Cards, 1)
	assert.Equal(t, "Important card", b.Columns[0].Cards[0].Title)
	assert.Equal(t, "notes\n", b.Columns[0].Cards[0].Description)
	assert.Equal(t, []string{"", "\tTodo", "\t\tImportant card", "\t\t\tnotes"}, Encode(b))
}

func TestDecode_TitleOnly(t *testing.T) {
	b, err := Decode([]string{"Just a title"})
	require.NoError(t, err)
	assert.Equal(t, "Just a title", b.Title)
	assert.Empty(t, b.Columns)
}

func TestDecode_IgnoresUnknownDepths(t *testing.T) {
	lines := []string{
		"Board",
		"stray depth zero line",
		"\tCol",
		"\t\tCard",
		"\t\t\tdesc",
		"\t\t\t\t[x] checklist item",
		"\t\t\t\t\tdeeper still",
		"\t\t\tmore desc",
	}
	b, err := Decode(lines)
	require.NoError(t, err)
	require.Len(t, b.Columns, 1)
	require.Len(t, b.Columns[0].Cards, 1)
	assert.Equal(t, "desc\nmore desc\n", b.Columns[0].Cards[0].Description)
}

func TestDecode_CRLF(t *testing.T) {
	b, err := Read(strings.NewReader("Board\r\n\tCol\r\n\t\tCard\r\n\t\t\tline\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "Board", b.Title)
	assert.Equal(t, "Col", b.Columns[0].Title)
	assert.Equal(t, "Card", b.Columns[0].Cards[0].Title)
	assert.Equal(t, "line\n", b.Columns[0].Cards[0].Description)
}

func TestDecode_CardBeforeAnyColumnIsDropped(t *testing.T) {
	b, err := Decode([]string{"Board", "\t\tOrphan", "\tCol", "\t\tKept"})
	require.NoError(t, err)
	require.Len(t, b.Columns, 1)
	require.Len(t, b.Columns[0].Cards, 1)
	assert.Equal(t, "Kept", b.Columns[0].Cards[0].Title)
}

func TestRoundTrip(t *testing.T) {
	b := kanban.New("Project")
	b.AddColumn(kanban.NewColumn("Backlog"))
	b.AddColumn(kanban.NewColumn("Doing"))
	b.AddColumn(kanban.NewColumn("Done"))
	require.NoError(t, b.AddCard(0, kanban.NewCard("first", "line a\nline b")))
	require.NoError(t, b.AddCard(0, kanban.NewCard("second", "")))
	require.NoError(t, b.AddCard(1, kanban.NewCard("third", "x\n\ny\n")))
	require.NoError(t, b.AddCard(2, kanban.NewCard("fourth", "  indented with spaces")))

	got, err := Decode(Encode(b))
	require.NoError(t, err)
	assert.Equal(t, b, got)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, b))
	got, err = Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, b, got)
}

func TestRoundTrip_EmptyTitleDrop(t *testing.T) {
	b := kanban.New("Board")
	b.Columns = append(b.Columns, kanban.Column{Title: "", Cards: []kanban.Card{{Title: "lost"}}})
	b.AddColumn(kanban.NewColumn("Kept"))
	b.Columns[1].Cards = append(b.Columns[1].Cards, kanban.Card{Title: ""}, kanban.Card{Title: "ok"})

	got, err := Decode(Encode(b))
	require.NoError(t, err)
	require.Len(t, got.Columns, 1)
	assert.Equal(t, "Kept", got.Columns[0].Title)
	require.Len(t, got.Columns[0].Cards, 1)
	assert.Equal(t, "ok", got.Columns[0].Cards[0].Title)
}

func TestRoundTrip_ColumnWithRawCards(t *testing.T) {
	b := kanban.New("B")
	b.AddColumn(kanban.Column{
		Title: "Todo",
		Cards: []kanban.Card{{Title: "line1\nline2", Description: "\tdeep\r"}},
	})

	assert.Equal(t, []string{"B", "\tTodo", "\t\tline1 line2", "\t\t\tdeep"}, Encode(b))

	got, err := Decode(Encode(b))
	require.NoError(t, err)
	assert.Equal(t, b, got)
}

func TestEncode_DecodeEncodeIsStable(t *testing.T) {
	in := strings.Join(scenarioLines(), "\n") + "\n"
	b, err := Unmarshal([]byte(in))
	require.NoError(t, err)
	assert.Equal(t, in, string(Marshal(b)))
}

func TestDepth(t *testing.T) {
	tests := []struct {
		line  string
		depth int
		text  string
	}{
		{"title", 0, "title"},
		{"\tcol", 1, "col"},
		{"\t\tcard", 2, "card"},
		{"\t\t\t  spaced", 3, "  spaced"},
		{"\t\t\t\t", 4, ""},
	}
	for _, tt := range tests {
		depth, text := Depth(tt.line)
		assert.Equal(t, tt.depth, depth, tt.line)
		assert.Equal(t, tt.text, text, tt.line)
	}
}

func TestRead_LongLine(t *testing.T) {
	long := strings.Repeat("x", 200*1024)
	b, err := Read(strings.NewReader("Board\n\tCol\n\t\tCard\n\t\t\t" + long + "\n"))
	require.NoError(t, err)
	assert.Equal(t, long+"\n", b.Columns[0].Cards[0].Description)
}
