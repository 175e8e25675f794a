package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tabboard/internal/activity"
	"github.com/twiced-technology-gmbh/tabboard/internal/clierr"
	"github.com/twiced-technology-gmbh/tabboard/internal/kanban"
	"github.com/twiced-technology-gmbh/tabboard/internal/logging"
	"github.com/twiced-technology-gmbh/tabboard/internal/outline"
	"github.com/twiced-technology-gmbh/tabboard/internal/store"
	"github.com/twiced-technology-gmbh/tabboard/internal/tui"
	"github.com/twiced-technology-gmbh/tabboard/internal/watcher"
)

func init() {
	rootCmd.Flags().String("title", "", "title for a new board (skips the prompt)")
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path := absPath(boardPath(cfg, args))

	// stdout belongs to the screen, so the session logs to a file.
	logger, closer, err := logging.OpenFile(cfg.LogPath(), cfg.Log.Level)
	if err != nil {
		logger = logging.Discard()
	} else {
		defer closer.Close()
	}

	st := store.New(path, logger, activity.Open(cfg.ActivityPath()))
	title, _ := cmd.Flags().GetString("title")
	b, startErr, err := startBoard(st, title, os.Stdin, logger)
	if err != nil {
		return err
	}

	model := tui.New(b, st, tui.Options{
		ColumnsOffset: cfg.ColumnsOffset(),
		Markdown:      cfg.Markdown(),
		Clipboard:     cfg.Clipboard(),
		Logger:        logger,
		Err:           startErr,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go startTUIWatcher(ctx, path, p, logger)

	logger.Info("session started", "file", path)
	_, err = p.Run()
	return err
}

// startBoard loads the board for an interactive session. A file that
// holds no board, or cannot be read, starts a fresh board; a board with a
// blank title keeps its content and only gets a title. A failed initial
// save is returned as startErr for the status bar rather than ending the
// session.
func startBoard(st *store.Store, title string, in io.Reader, logger *slog.Logger) (b *kanban.Board, startErr, err error) {
	b, err = st.Load()
	switch {
	case err == nil && strings.TrimSpace(b.Title) != "":
		return b, nil, nil
	case err == nil:
		logger.Info("board has no title", "file", st.Path())
	case errors.Is(err, outline.ErrMalformed), errors.Is(err, store.ErrIO):
		logger.Warn("starting a new board", "file", st.Path(), "err", err)
		b = nil
	default:
		return nil, nil, boardError(err)
	}

	if title, err = boardTitle(st.Path(), title, in); err != nil {
		return nil, nil, err
	}
	if b == nil {
		return createBoard(st, title, logger)
	}
	b.SetTitle(title)
	return b, saveInitial(st, b, logger), nil
}

// createBoard starts an empty board. A file that still has content is left
// alone so an unreadable board is never replaced.
func createBoard(st *store.Store, title string, logger *slog.Logger) (*kanban.Board, error, error) {
	b := kanban.New(title)
	if info, err := os.Stat(st.Path()); err == nil && info.Size() > 0 {
		logger.Warn("not overwriting board file", "file", st.Path())
		return b, fmt.Errorf("%s is not empty; not overwriting it", st.Path()), nil
	}
	return b, saveInitial(st, b, logger), nil
}

func saveInitial(st *store.Store, b *kanban.Board, logger *slog.Logger) error {
	if err := st.Save(b); err != nil {
		logger.Error("saving new board", "file", st.Path(), "err", err)
		return fmt.Errorf("saving board: %w", err)
	}
	st.Record(activity.ActionCreateBoard, "", "", b.Title)
	return nil
}

// boardTitle returns title, or asks for one on a terminal.
func boardTitle(path, title string, in io.Reader) (string, error) {
	if title == "" {
		if !isTerminal() {
			return "", clierr.Newf(clierr.MalformedBoard,
				"%s has no board title; pass --title or run in a terminal", path).
				WithDetails(map[string]any{"file": path})
		}
		var err error
		if title, err = promptTitle(in); err != nil {
			return "", err
		}
	}
	return requireTitle(title)
}

func promptTitle(in io.Reader) (string, error) {
	fmt.Fprint(os.Stderr, "Please enter title for board: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading title: %w", err)
	}
	return line, nil
}

func startTUIWatcher(ctx context.Context, path string, p *tea.Program, logger *slog.Logger) {
	w, err := watcher.New(path, func() {
		p.Send(tui.ReloadMsg{})
	})
	if err != nil {
		logger.Warn("live reload disabled", "err", err)
		return // non-fatal: TUI works without live refresh
	}
	defer w.Close()
	w.Run(ctx, func(err error) {
		logger.Warn("watching board file", "err", err)
	})
}
