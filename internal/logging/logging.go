// Package logging builds the application's slog loggers on top of a
// charmbracelet/log handler.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

const (
	// DefaultLevel is used when no level is configured.
	DefaultLevel = "warn"

	fileMode = 0o600
	dirMode  = 0o750
	prefix   = "tabboard"
)

// ParseLevel parses debug, info, warn (or warning) and error.
func ParseLevel(s string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.DebugLevel, nil
	case "info":
		return log.InfoLevel, nil
	case "", "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	default:
		return log.WarnLevel, fmt.Errorf("unknown log level %q", s)
	}
}

// New returns a logger writing human-readable lines to w. An unknown level
// falls back to warn.
func New(w io.Writer, level string) *slog.Logger {
	lvl, _ := ParseLevel(level)
	handler := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Formatter:       log.TextFormatter,
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	return slog.New(handler)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// OpenFile returns a logger appending logfmt lines to the file at path,
// creating its directory if needed. The caller closes the returned closer
// when the session ends.
func OpenFile(path, level string) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, fileMode) //nolint:gosec // log path from config
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	lvl, _ := ParseLevel(level)
	handler := log.NewWithOptions(f, log.Options{
		Level:           lvl,
		Formatter:       log.LogfmtFormatter,
		ReportTimestamp: true,
	})
	return slog.New(handler), f, nil
}
