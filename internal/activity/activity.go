// Package activity keeps a JSONL journal of committed board mutations.
package activity

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	fileMode      = 0o600
	dirMode       = 0o750
	maxLogEntries = 10000 // truncate oldest entries when the journal exceeds this size
)

// Actions recorded in the journal.
const (
	ActionCreateBoard  = "create-board"
	ActionAddColumn    = "add-column"
	ActionRenameColumn = "rename-column"
	ActionDeleteColumn = "delete-column"
	ActionSwapColumn   = "swap-column"
	ActionAddCard      = "add-card"
	ActionEditCard     = "edit-card"
	ActionDeleteCard   = "delete-card"
	ActionMoveCard     = "move-card"
	ActionSwapCard     = "swap-card"
)

// Entry is one journal line.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Board     string    `json:"board"`
	Column    string    `json:"column,omitempty"`
	Card      string    `json:"card,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// Journal appends to and reads a journal file. A nil *Journal discards
// everything, so callers never need to check whether journaling is enabled.
type Journal struct {
	path string
	now  func() time.Time
}

// Open returns a journal stored at path.
func Open(path string) *Journal {
	return &Journal{path: path, now: time.Now}
}

// Path returns the journal file path.
func (j *Journal) Path() string {
	if j == nil {
		return ""
	}
	return j.path
}

// Append writes e to the journal. If the journal then exceeds
// maxLogEntries, the oldest entries are dropped.
func (j *Journal) Append(e Entry) error {
	if j == nil {
		return nil
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = j.now()
	}

	if err := os.MkdirAll(filepath.Dir(j.path), dirMode); err != nil {
		return fmt.Errorf("creating journal directory: %w", err)
	}
	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, fileMode) //nolint:gosec // journal path from config dir
	if err != nil {
		return fmt.Errorf("opening journal: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshaling journal entry: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing journal entry: %w", err)
	}

	// Best-effort; a journal that grows past the limit is still usable.
	_ = j.truncate()
	return nil
}

// Record appends an entry and discards any error: journaling never fails
// a command.
func (j *Journal) Record(action, board, column, card, detail string) {
	_ = j.Append(Entry{
		Action: action,
		Board:  board,
		Column: column,
		Card:   card,
		Detail: detail,
	})
}

// Recent returns up to limit of the newest entries, oldest first. A
// non-positive limit returns every entry. Undecodable lines are skipped.
// A missing journal is empty, not an error.
func (j *Journal) Recent(limit int) ([]Entry, error) {
	if j == nil {
		return nil, nil
	}
	lines, err := readLines(j.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading journal: %w", err)
	}

	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		var e Entry
		if json.Unmarshal([]byte(line), &e) != nil {
			continue
		}
		entries = append(entries, e)
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries, nil
}

func (j *Journal) truncate() error {
	lines, err := readLines(j.path)
	if err != nil {
		return err
	}
	if len(lines) <= maxLogEntries {
		return nil
	}
	lines = lines[len(lines)-maxLogEntries:]

	var buf strings.Builder
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return os.WriteFile(j.path, []byte(buf.String()), fileMode)
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // trusted path
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}
