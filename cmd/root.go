// Package cmd implements the tabboard CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tabboard/internal/activity"
	"github.com/twiced-technology-gmbh/tabboard/internal/clierr"
	"github.com/twiced-technology-gmbh/tabboard/internal/config"
	"github.com/twiced-technology-gmbh/tabboard/internal/kanban"
	"github.com/twiced-technology-gmbh/tabboard/internal/logging"
	"github.com/twiced-technology-gmbh/tabboard/internal/outline"
	"github.com/twiced-technology-gmbh/tabboard/internal/output"
	"github.com/twiced-technology-gmbh/tabboard/internal/store"
)

// version is set at build time via ldflags.
var version = "dev"

// Global flags.
var (
	flagJSON    bool
	flagTable   bool
	flagCompact bool
	flagFile    string
	flagConfig  string
	flagNoColor bool
)

var rootCmd = &cobra.Command{
	Use:   "tabboard [FILE]",
	Short: "Personal task board in a tab-indented text file",
	Long: `tabboard edits a board of columns and cards stored as a plain, tab-indented
text file. Run tabboard to open the interactive board, or use the subcommands
for one-shot changes from scripts.`,
	Version:       version,
	Args:          cobra.MaximumNArgs(1),
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runTUI,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagNoColor || os.Getenv("NO_COLOR") != "" {
			output.DisableColor()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagTable, "table", false, "output as table")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "compact", false, "compact one-line-per-record output")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "oneline", false, "alias for --compact")
	rootCmd.PersistentFlags().StringVarP(&flagFile, "file", "f", "", "path to the board file")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to the config file")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable color output")
	rootCmd.SetGlobalNormalizationFunc(normalizeFlags)
}

// Execute runs the root command.
func Execute() {
	_, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}

	// SilentError: exit with its code, no output.
	var silent *clierr.SilentError
	if errors.As(err, &silent) {
		os.Exit(silent.Code)
	}

	if outputFormat() == output.FormatJSON {
		var cliErr *clierr.Error
		if errors.As(err, &cliErr) {
			output.JSONError(os.Stdout, cliErr.Code, cliErr.Message, cliErr.Details)
			os.Exit(cliErr.ExitCode())
		}
		// Unknown error, wrap as INTERNAL_ERROR.
		output.JSONError(os.Stdout, clierr.InternalError, err.Error(), nil)
		os.Exit(2) //nolint:mnd // exit code 2 for internal errors
	}

	// Non-JSON mode: print to stderr.
	fmt.Fprintln(os.Stderr, "Error:", err)
	var cliErr *clierr.Error
	if errors.As(err, &cliErr) {
		os.Exit(cliErr.ExitCode())
	}
	os.Exit(1)
}

// configPath returns the config file named by --config, $TABBOARD_CONFIG or
// the default location, in that order.
func configPath() (string, error) {
	if flagConfig != "" {
		return flagConfig, nil
	}
	if p := os.Getenv(config.EnvConfig); p != "" {
		return p, nil
	}
	return config.DefaultPath()
}

// loadConfig loads the config and applies environment overrides.
func loadConfig() (*config.Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, clierr.Wrap(clierr.InvalidConfig, err)
	}
	cfg.ApplyEnv(os.Getenv)
	return cfg, nil
}

// boardPath returns the board file: a positional FILE, then --file, then
// the configured default.
func boardPath(cfg *config.Config, args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	if flagFile != "" {
		return flagFile
	}
	return cfg.BoardFile()
}

// absPath makes path absolute so journal entries name one board
// consistently. On failure path is returned unchanged.
func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// outputFormat returns the detected output format from flags/env.
func outputFormat() output.Format {
	return output.Detect(flagJSON, flagTable, flagCompact)
}

// newLogger returns the CLI logger writing to stderr.
func newLogger(cfg *config.Config) *slog.Logger {
	return logging.New(os.Stderr, cfg.Log.Level)
}

// session is the config, store and logger a board command works with.
type session struct {
	cfg    *config.Config
	store  *store.Store
	logger *slog.Logger
}

// openSession loads the config and binds a store to the board file.
func openSession() (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg)
	path := absPath(boardPath(cfg, nil))
	return &session{
		cfg:    cfg,
		store:  store.New(path, logger, activity.Open(cfg.ActivityPath())),
		logger: logger,
	}, nil
}

// load reads an existing board. A missing file is reported rather than
// created.
func (s *session) load() (*kanban.Board, error) {
	path := s.store.Path()
	if _, err := os.Stat(path); err != nil {
		return nil, clierr.Newf(clierr.BoardNotFound,
			"no board at %s; create one with: tabboard init", path).
			WithDetails(map[string]any{"file": path})
	}
	b, err := s.store.Load()
	if err != nil {
		return nil, boardError(err)
	}
	return b, nil
}

// mutate loads the board, applies fn and saves the result while holding
// the board lock, then records the event in the activity journal.
func (s *session) mutate(fn func(b *kanban.Board) (event, error)) (*kanban.Board, event, error) {
	var (
		board *kanban.Board
		ev    event
	)
	err := s.store.Update(context.Background(), func() (*kanban.Board, error) {
		b, err := s.load()
		if err != nil {
			return nil, err
		}
		if ev, err = fn(b); err != nil {
			return nil, err
		}
		board = b
		return b, nil
	})
	if err != nil {
		return nil, event{}, boardError(err)
	}
	s.store.Record(ev.Action, ev.ColumnTitle, ev.CardTitle, ev.Detail)
	s.logger.Debug("board updated", "action", ev.Action, "column", ev.ColumnTitle, "card", ev.CardTitle)
	return board, ev, nil
}

// event describes a committed mutation. Positions are 1-based; 0 means
// the mutation has no column or card.
type event struct {
	Action      string
	Column      int
	Card        int
	ColumnTitle string
	CardTitle   string
	Detail      string
}

// boardError maps package errors to structured CLI errors.
func boardError(err error) error {
	var cliErr *clierr.Error
	switch {
	case err == nil:
		return nil
	case errors.As(err, &cliErr):
		return err
	case errors.Is(err, outline.ErrMalformed):
		return clierr.Wrap(clierr.MalformedBoard, err)
	case errors.Is(err, kanban.ErrIndexOutOfRange):
		return clierr.Wrap(clierr.IndexOutOfRange, err)
	case errors.Is(err, store.ErrIO):
		return clierr.Wrap(clierr.IOFailure, err)
	}
	return err
}

// printMutation reports a committed mutation.
func printMutation(b *kanban.Board, ev event, format string, args ...any) error {
	if outputFormat() == output.FormatJSON {
		title := ev.CardTitle
		if title == "" {
			title = ev.ColumnTitle
		}
		return output.JSON(os.Stdout, output.MutationResult{
			Action: ev.Action,
			Board:  b.Title,
			Column: ev.Column,
			Card:   ev.Card,
			Title:  title,
		})
	}
	output.Messagef(os.Stdout, format, args...)
	return nil
}
