package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tabboard/internal/output"
)

var showCmd = &cobra.Command{
	Use:   "show [COLUMN [CARD]]",
	Short: "Show the board, a column or a card",
	Long: `Without arguments, lists the board's columns. With COLUMN, lists the column's
cards. With COLUMN and CARD, shows the card including its description.`,
	Args: cobra.MaximumNArgs(2), //nolint:mnd // column and card
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	b, err := s.load()
	if err != nil {
		return err
	}
	format := outputFormat()

	if len(args) == 0 {
		switch format {
		case output.FormatJSON:
			return output.JSON(os.Stdout, b)
		case output.FormatCompact:
			output.BoardCompact(os.Stdout, b)
		default:
			output.BoardTable(os.Stdout, b)
		}
		return nil
	}

	col, err := resolveColumn(b, args[0])
	if err != nil {
		return err
	}
	if len(args) == 1 {
		switch format {
		case output.FormatJSON:
			return output.JSON(os.Stdout, b.Columns[col])
		case output.FormatCompact:
			output.ColumnCompact(os.Stdout, b, col)
		default:
			output.ColumnTable(os.Stdout, b, col)
		}
		return nil
	}

	card, err := resolveCard(b, col, args[1])
	if err != nil {
		return err
	}
	switch format {
	case output.FormatJSON:
		return output.JSON(os.Stdout, b.Columns[col].Cards[card])
	case output.FormatCompact:
		output.CardDetailCompact(os.Stdout, b, col, card)
	default:
		output.CardDetail(os.Stdout, b, col, card, s.cfg.Markdown())
	}
	return nil
}
