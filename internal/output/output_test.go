package output

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/tabboard/internal/activity"
	"github.com/twiced-technology-gmbh/tabboard/internal/kanban"
)

func sampleBoard(t *testing.T) *kanban.Board {
	t.Helper()
	b := kanban.New("My Board")
	b.AddColumn(kanban.NewColumn("Todo"))
	b.AddColumn(kanban.NewColumn("Done"))
	require.NoError(t, b.AddCard(0, kanban.NewCard("Write plan", "draft section 1\ndraft section 2")))
	require.NoError(t, b.AddCard(0, kanban.NewCard("Review", "")))
	return b
}

func TestDetect(t *testing.T) {
	t.Setenv(EnvOutput, "")
	assert.Equal(t, FormatTable, Detect(false, false, false))
	assert.Equal(t, FormatJSON, Detect(true, true, true))
	assert.Equal(t, FormatCompact, Detect(false, true, true))

	t.Setenv(EnvOutput, "json")
	assert.Equal(t, FormatJSON, Detect(false, false, false))
	assert.Equal(t, FormatTable, Detect(false, true, false))

	t.Setenv(EnvOutput, "oneline")
	assert.Equal(t, FormatCompact, Detect(false, false, false))
}

func TestBoardCompact(t *testing.T) {
	var buf bytes.Buffer
	BoardCompact(&buf, sampleBoard(t))
	assert.Equal(t, "My Board (2 cards)\n  1 Todo: 2\n  2 Done: 0\n", buf.String())
}

func TestColumnCompact(t *testing.T) {
	var buf bytes.Buffer
	ColumnCompact(&buf, sampleBoard(t), 0)
	assert.Equal(t, "1.1 [Todo] Write plan (+2 lines)\n1.2 [Todo] Review\n", buf.String())
}

func TestCardDetailCompact(t *testing.T) {
	var buf bytes.Buffer
	CardDetailCompact(&buf, sampleBoard(t), 0, 0)
	assert.Equal(t, "1.1 [Todo] Write plan (+2 lines)\n  draft section 1\n  draft section 2\n", buf.String())

	buf.Reset()
	CardDetailCompact(&buf, sampleBoard(t), 1, 0)
	assert.Empty(t, buf.String())
}

func TestSearchCompact(t *testing.T) {
	var buf bytes.Buffer
	SearchCompact(&buf, sampleBoard(t).Search("review"))
	assert.Equal(t, "1.2 [Todo] Review\n", buf.String())
}

func TestActivityCompact(t *testing.T) {
	var buf bytes.Buffer
	ts := time.Date(2026, 3, 4, 5, 6, 0, 0, time.Local)
	ActivityCompact(&buf, []activity.Entry{
		{Timestamp: ts, Action: activity.ActionMoveCard, Column: "Todo", Card: "Review", Detail: "to Done"},
	})
	assert.Equal(t, "2026-03-04T05:06 move-card [Todo] Review (to Done)\n", buf.String())
}

func TestBoardTable(t *testing.T) {
	var buf bytes.Buffer
	BoardTable(&buf, sampleBoard(t))
	out := buf.String()
	assert.Contains(t, out, "My Board")
	assert.Contains(t, out, "Total: 2 cards in 2 columns")
	assert.Contains(t, out, "COLUMN")
	assert.Contains(t, out, "Todo")
}

func TestColumnTable(t *testing.T) {
	var buf bytes.Buffer
	ColumnTable(&buf, sampleBoard(t), 0)
	out := buf.String()
	assert.Contains(t, out, "Write plan")
	assert.Contains(t, out, "draft section 1 …")
}

func TestCardDetail(t *testing.T) {
	var buf bytes.Buffer
	CardDetail(&buf, sampleBoard(t), 0, 0, false)
	out := buf.String()
	assert.Contains(t, out, "Write plan")
	assert.Contains(t, out, "1 of 2")
	assert.Contains(t, out, "draft section 1\ndraft section 2\n")

	buf.Reset()
	CardDetail(&buf, sampleBoard(t), 0, 0, true)
	assert.Contains(t, buf.String(), "draft section 2")
}

func TestMarkdown(t *testing.T) {
	assert.Empty(t, Markdown("  \n", 40))
	assert.Contains(t, Markdown("# Heading\n\nsome *text*", 40), "Heading")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}

func TestJSONError(t *testing.T) {
	var buf bytes.Buffer
	JSONError(&buf, "CARD_NOT_FOUND", "no such card", map[string]any{"card": 3})

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "CARD_NOT_FOUND", resp.Code)
	assert.Equal(t, "no such card", resp.Error)
	assert.InDelta(t, 3, resp.Details["card"], 0)
}
