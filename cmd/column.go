package cmd

import (
	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tabboard/internal/activity"
	"github.com/twiced-technology-gmbh/tabboard/internal/clierr"
	"github.com/twiced-technology-gmbh/tabboard/internal/kanban"
)

var columnCmd = &cobra.Command{
	Use:     "column",
	Aliases: []string{"col"},
	Short:   "Add, rename, delete or reorder columns",
	Long: `Changes the columns of the board. A COLUMN argument is either a 1-based
position or a column title (case-insensitive).`,
}

var columnAddCmd = &cobra.Command{
	Use:   "add TITLE",
	Short: "Append a new column",
	Args:  cobra.ExactArgs(1),
	RunE:  runColumnAdd,
}

var columnRenameCmd = &cobra.Command{
	Use:   "rename COLUMN TITLE",
	Short: "Rename a column",
	Args:  cobra.ExactArgs(2), //nolint:mnd // column and title
	RunE:  runColumnRename,
}

var columnDeleteCmd = &cobra.Command{
	Use:     "delete COLUMN",
	Aliases: []string{"rm"},
	Short:   "Delete a column and all its cards",
	Long:    `Deletes a column together with its cards. Prompts for confirmation in interactive mode.`,
	Args:    cobra.ExactArgs(1),
	RunE:    runColumnDelete,
}

var columnSwapCmd = &cobra.Command{
	Use:   "swap COLUMN COLUMN",
	Short: "Swap the positions of two columns",
	Args:  cobra.ExactArgs(2), //nolint:mnd // two columns
	RunE:  runColumnSwap,
}

func init() {
	columnDeleteCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
	columnCmd.AddCommand(columnAddCmd, columnRenameCmd, columnDeleteCmd, columnSwapCmd)
	rootCmd.AddCommand(columnCmd)
}

func runColumnAdd(_ *cobra.Command, args []string) error {
	title, err := requireTitle(args[0])
	if err != nil {
		return err
	}
	s, err := openSession()
	if err != nil {
		return err
	}

	b, ev, err := s.mutate(func(b *kanban.Board) (event, error) {
		b.AddColumn(kanban.NewColumn(title))
		return event{
			Action:      activity.ActionAddColumn,
			Column:      b.ColumnCount(),
			ColumnTitle: title,
		}, nil
	})
	if err != nil {
		return err
	}
	return printMutation(b, ev, "Added column %d: %s", ev.Column, ev.ColumnTitle)
}

func runColumnRename(_ *cobra.Command, args []string) error {
	title, err := requireTitle(args[1])
	if err != nil {
		return err
	}
	s, err := openSession()
	if err != nil {
		return err
	}

	b, ev, err := s.mutate(func(b *kanban.Board) (event, error) {
		col, err := resolveColumn(b, args[0])
		if err != nil {
			return event{}, err
		}
		old := b.Columns[col].Title
		if err := b.SetColumnTitle(col, title); err != nil {
			return event{}, err
		}
		return event{
			Action:      activity.ActionRenameColumn,
			Column:      col + 1,
			ColumnTitle: title,
			Detail:      "was " + old,
		}, nil
	})
	if err != nil {
		return err
	}
	return printMutation(b, ev, "Renamed column %d to %s", ev.Column, ev.ColumnTitle)
}

func runColumnDelete(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}

	current, err := s.load()
	if err != nil {
		return err
	}
	col, err := resolveColumn(current, args[0])
	if err != nil {
		return err
	}
	c := current.Columns[col]

	yes, _ := cmd.Flags().GetBool("yes")
	ok, err := confirm(yes, "Delete column %q and its %d cards?", c.Title, len(c.Cards))
	if err != nil {
		return err
	}
	if !ok {
		return &clierr.SilentError{Code: 1}
	}

	b, ev, err := s.mutate(func(b *kanban.Board) (event, error) {
		col, err := resolveColumn(b, args[0])
		if err != nil {
			return event{}, err
		}
		title := b.Columns[col].Title
		if err := b.DeleteColumn(col); err != nil {
			return event{}, err
		}
		return event{
			Action:      activity.ActionDeleteColumn,
			Column:      col + 1,
			ColumnTitle: title,
		}, nil
	})
	if err != nil {
		return err
	}
	return printMutation(b, ev, "Deleted column %d: %s", ev.Column, ev.ColumnTitle)
}

func runColumnSwap(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}

	b, ev, err := s.mutate(func(b *kanban.Board) (event, error) {
		i, err := resolveColumn(b, args[0])
		if err != nil {
			return event{}, err
		}
		j, err := resolveColumn(b, args[1])
		if err != nil {
			return event{}, err
		}
		if err := b.SwapColumn(i, j); err != nil {
			return event{}, err
		}
		return event{
			Action:      activity.ActionSwapColumn,
			Column:      j + 1,
			ColumnTitle: b.Columns[j].Title,
			Detail:      "with " + b.Columns[i].Title,
		}, nil
	})
	if err != nil {
		return err
	}
	return printMutation(b, ev, "Moved column %s to position %d", ev.ColumnTitle, ev.Column)
}
