package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tabboard/internal/activity"
	"github.com/twiced-technology-gmbh/tabboard/internal/clierr"
	"github.com/twiced-technology-gmbh/tabboard/internal/output"
)

const defaultLogLimit = 20

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show recent board activity",
	Long: `Lists the most recent changes recorded in the activity journal, oldest first.
By default only entries for the selected board are shown.`,
	Args: cobra.NoArgs,
	RunE: runLog,
}

func init() {
	logCmd.Flags().IntP("limit", "n", defaultLogLimit, "maximum number of entries")
	logCmd.Flags().Bool("all", false, "include entries for every board")
	rootCmd.AddCommand(logCmd)
}

func runLog(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	if limit < 1 {
		return clierr.Newf(clierr.InvalidInput, "--limit must be positive, got %d", limit)
	}
	all, _ := cmd.Flags().GetBool("all")

	s, err := openSession()
	if err != nil {
		return err
	}

	journal := activity.Open(s.cfg.ActivityPath())
	// Read everything when filtering so the limit applies to this board.
	readLimit := limit
	if !all {
		readLimit = 0
	}
	entries, err := journal.Recent(readLimit)
	if err != nil {
		return clierr.Wrap(clierr.IOFailure, err)
	}
	if !all {
		entries = forBoard(entries, s.store.Path(), limit)
	}

	switch outputFormat() {
	case output.FormatJSON:
		if entries == nil {
			entries = []activity.Entry{}
		}
		return output.JSON(os.Stdout, entries)
	case output.FormatCompact:
		output.ActivityCompact(os.Stdout, entries)
	default:
		output.ActivityTable(os.Stdout, entries)
	}
	return nil
}

// forBoard keeps the last limit entries recorded for board.
func forBoard(entries []activity.Entry, board string, limit int) []activity.Entry {
	var kept []activity.Entry
	for _, e := range entries {
		if e.Board == board {
			kept = append(kept, e)
		}
	}
	if len(kept) > limit {
		kept = kept[len(kept)-limit:]
	}
	return kept
}
