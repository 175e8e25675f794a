// Package store loads and saves board files.
//
// Every save rewrites the whole file. The new content is written to a
// temporary file in the same directory, synced and renamed over the target,
// so a reader never observes a half-written board.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/twiced-technology-gmbh/tabboard/internal/activity"
	"github.com/twiced-technology-gmbh/tabboard/internal/filelock"
	"github.com/twiced-technology-gmbh/tabboard/internal/kanban"
	"github.com/twiced-technology-gmbh/tabboard/internal/outline"
)

const (
	fileMode = 0o644
	dirMode  = 0o750
)

// ErrIO is wrapped by every failure to open, read or write a board file.
var ErrIO = errors.New("board file i/o failed")

// Load reads the board file at path, creating an empty file if none exists.
// An empty or all-blank file yields an error wrapping outline.ErrMalformed.
func Load(path string) (*kanban.Board, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, fileMode) //nolint:gosec // user-chosen board path
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrIO, path, err)
	}
	defer f.Close()

	lines, err := outline.ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrIO, path, err)
	}
	b, err := outline.Decode(lines)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return b, nil
}

// Save replaces the file at path with the encoding of b.
func Save(path string, b *kanban.Board) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("%w: creating %s: %v", ErrIO, dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", ErrIO, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if err := outline.Write(tmp, b); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("%w: syncing %s: %v", ErrIO, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %v", ErrIO, tmpName, err)
	}
	if err := os.Chmod(tmpName, modeOf(path)); err != nil {
		return fmt.Errorf("%w: chmod %s: %v", ErrIO, tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: replacing %s: %v", ErrIO, path, err)
	}
	committed = true
	return nil
}

// modeOf keeps the permissions of an existing board file.
func modeOf(path string) os.FileMode {
	if info, err := os.Stat(path); err == nil {
		return info.Mode().Perm()
	}
	return fileMode
}

// Exists reports whether path holds a decodable board.
func Exists(path string) bool {
	f, err := os.Open(path) //nolint:gosec // user-chosen board path
	if err != nil {
		return false
	}
	defer f.Close()
	_, err = outline.Read(io.LimitReader(f, 1<<20)) //nolint:mnd // a title line is enough
	return err == nil
}

// Store binds a board path to the side effects of persisting it: an
// advisory lock serialising writers, a logger and the activity journal.
type Store struct {
	path    string
	logger  *slog.Logger
	journal *activity.Journal
}

// New returns a Store for the board at path. A nil logger discards output
// and a nil journal records nothing.
func New(path string, logger *slog.Logger, journal *activity.Journal) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{path: path, logger: logger, journal: journal}
}

// Path returns the board file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the board.
func (s *Store) Load() (*kanban.Board, error) {
	b, err := Load(s.path)
	if err != nil {
		s.logger.Debug("load failed", "path", s.path, "err", err)
		return nil, err
	}
	s.logger.Debug("loaded board", "path", s.path, "columns", b.ColumnCount(), "cards", b.TotalCards())
	return b, nil
}

// Save writes the board while holding the board's lock.
func (s *Store) Save(b *kanban.Board) error {
	return s.Update(context.Background(), func() (*kanban.Board, error) { return b, nil })
}

// Update runs fn under the board lock and saves the board it returns. fn
// typically loads the current file, mutates it and returns it, making a
// read-modify-write atomic with respect to other tabboard processes.
func (s *Store) Update(ctx context.Context, fn func() (*kanban.Board, error)) error {
	lock, err := filelock.Acquire(ctx, filelock.PathFor(s.path))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	defer func() {
		if err := lock.Release(); err != nil {
			s.logger.Warn("releasing board lock", "path", s.path, "err", err)
		}
	}()

	b, err := fn()
	if err != nil {
		return err
	}
	if err := Save(s.path, b); err != nil {
		s.logger.Error("save failed", "path", s.path, "err", err)
		return err
	}
	s.logger.Debug("saved board", "path", s.path)
	return nil
}

// Record appends an entry for this board to the activity journal.
func (s *Store) Record(action, column, card, detail string) {
	s.journal.Record(action, s.path, column, card, detail)
}
