package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tabboard/internal/activity"
	"github.com/twiced-technology-gmbh/tabboard/internal/clierr"
	"github.com/twiced-technology-gmbh/tabboard/internal/kanban"
	"github.com/twiced-technology-gmbh/tabboard/internal/output"
	"github.com/twiced-technology-gmbh/tabboard/internal/store"
)

var initCmd = &cobra.Command{
	Use:   "init [FILE]",
	Short: "Create a new board file",
	Long: `Creates a board file with the given title and columns. Refuses to overwrite
a file that already holds a board.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().String("title", "", "board title (defaults to current directory name)")
	initCmd.Flags().StringSlice("columns", nil, "comma-separated list of columns")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path := absPath(boardPath(cfg, args))

	if store.Exists(path) {
		return clierr.Newf(clierr.BoardAlreadyExists, "board already exists at %s", path).
			WithDetails(map[string]any{"file": path})
	}

	title, _ := cmd.Flags().GetString("title")
	if title == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		title = filepath.Base(cwd)
	}
	if title, err = requireTitle(title); err != nil {
		return err
	}

	b := kanban.New(title)
	columns, _ := cmd.Flags().GetStringSlice("columns")
	for _, c := range columns {
		name, err := requireTitle(c)
		if err != nil {
			return clierr.Newf(clierr.InvalidInput, "invalid column name %q: %v", c, err)
		}
		b.AddColumn(kanban.NewColumn(name))
	}

	st := store.New(path, newLogger(cfg), activity.Open(cfg.ActivityPath()))
	if err := st.Save(b); err != nil {
		return boardError(err)
	}
	st.Record(activity.ActionCreateBoard, "", "", title)

	names := make([]string, 0, b.ColumnCount())
	for _, c := range b.Columns {
		names = append(names, c.Title)
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{
			"status":  "initialized",
			"file":    path,
			"title":   title,
			"columns": names,
		})
	}

	output.Messagef(os.Stdout, "Initialized board %q in %s", title, path)
	if len(names) > 0 {
		output.Messagef(os.Stdout, "  Columns: %s", strings.Join(names, ", "))
	}
	output.Messagef(os.Stdout, "  Hint:    Open it with: tabboard %s", path)
	return nil
}
