package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/twiced-technology-gmbh/tabboard/internal/clierr"
	"github.com/twiced-technology-gmbh/tabboard/internal/kanban"
)

// normalizeFlags maps flag aliases onto their canonical names.
func normalizeFlags(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	switch name {
	case "desc", "body":
		name = "description"
	case "append-desc", "append-body":
		name = "append-description"
	}
	return pflag.NormalizedName(name)
}

// resolveColumn finds a column by 1-based position or, failing that, by
// case-insensitive title.
func resolveColumn(b *kanban.Board, arg string) (int, error) {
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > b.ColumnCount() {
			return 0, clierr.Newf(clierr.ColumnNotFound,
				"no column at position %d (board has %d)", n, b.ColumnCount()).
				WithDetails(map[string]any{"column": arg})
		}
		return n - 1, nil
	}
	if i := b.FindColumn(arg); i >= 0 {
		return i, nil
	}
	return 0, clierr.Newf(clierr.ColumnNotFound, "column %q not found", arg).
		WithDetails(map[string]any{"column": arg})
}

// resolveCard finds a card of column col by 1-based position or title.
func resolveCard(b *kanban.Board, col int, arg string) (int, error) {
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > b.CardCount(col) {
			return 0, clierr.Newf(clierr.CardNotFound,
				"no card at position %d in %q (column has %d)", n, b.Columns[col].Title, b.CardCount(col)).
				WithDetails(map[string]any{"card": arg})
		}
		return n - 1, nil
	}
	if i := b.FindCard(col, arg); i >= 0 {
		return i, nil
	}
	return 0, clierr.Newf(clierr.CardNotFound, "card %q not found in %q", arg, b.Columns[col].Title).
		WithDetails(map[string]any{"card": arg})
}

// resolveCardArgs resolves a COLUMN CARD argument pair.
func resolveCardArgs(b *kanban.Board, colArg, cardArg string) (int, int, error) {
	col, err := resolveColumn(b, colArg)
	if err != nil {
		return 0, 0, err
	}
	card, err := resolveCard(b, col, cardArg)
	if err != nil {
		return 0, 0, err
	}
	return col, card, nil
}

// requireTitle rejects titles that would be dropped when the board is saved.
func requireTitle(s string) (string, error) {
	title := kanban.NormalizeTitle(s)
	if strings.TrimSpace(title) == "" {
		return "", clierr.New(clierr.InvalidInput, "title cannot be empty")
	}
	return title, nil
}

// descriptionArg expands a description flag value: "-" reads stdin, and
// literal \n and \t sequences become real whitespace.
func descriptionArg(v string, stdin io.Reader) (string, error) {
	if v == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading description from stdin: %w", err)
		}
		return string(data), nil
	}
	r := strings.NewReplacer(
		`\n`, "\n",
		`\t`, "\t",
		`\r`, "",
		`\\`, `\`,
	)
	return r.Replace(v), nil
}

// isTerminal reports whether stdin is an interactive terminal.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) //nolint:gosec // fd fits in int
}

// confirm asks a yes/no question on stderr unless yes is set. Without a
// terminal it refuses rather than guessing.
func confirm(yes bool, format string, args ...any) (bool, error) {
	if yes {
		return true, nil
	}
	if !isTerminal() {
		return false, clierr.New(clierr.ConfirmationRequired,
			"cannot prompt for confirmation (not a terminal); use --yes")
	}
	fmt.Fprintf(os.Stderr, format+" [y/N] ", args...)
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	answer = strings.TrimSpace(strings.ToLower(answer))
	if answer != "y" && answer != "yes" {
		fmt.Fprintln(os.Stderr, "Canceled.")
		return false, nil
	}
	return true, nil
}
