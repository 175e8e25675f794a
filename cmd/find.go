package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tabboard/internal/kanban"
	"github.com/twiced-technology-gmbh/tabboard/internal/output"
)

var findCmd = &cobra.Command{
	Use:     "find QUERY",
	Aliases: []string{"search"},
	Short:   "Search card titles and descriptions",
	Long:    `Lists every card whose title or description contains QUERY (case-insensitive).`,
	Args:    cobra.ExactArgs(1),
	RunE:    runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)
}

func runFind(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	b, err := s.load()
	if err != nil {
		return err
	}

	matches := b.Search(args[0])
	switch outputFormat() {
	case output.FormatJSON:
		// Positions in JSON are 1-based, as accepted by the other commands.
		results := make([]kanban.Match, 0, len(matches))
		for _, m := range matches {
			m.Column++
			m.Card++
			results = append(results, m)
		}
		return output.JSON(os.Stdout, results)
	case output.FormatCompact:
		output.SearchCompact(os.Stdout, matches)
	default:
		output.SearchTable(os.Stdout, matches)
	}
	return nil
}
