package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tabboard/internal/activity"
	"github.com/twiced-technology-gmbh/tabboard/internal/clierr"
	"github.com/twiced-technology-gmbh/tabboard/internal/kanban"
)

var cardCmd = &cobra.Command{
	Use:   "card",
	Short: "Add, edit, delete, move or reorder cards",
	Long: `Changes the cards of the board. COLUMN and CARD arguments are either 1-based
positions or titles (case-insensitive). CARD is looked up within COLUMN.`,
}

var cardAddCmd = &cobra.Command{
	Use:   "add COLUMN TITLE",
	Short: "Append a new card to a column",
	Args:  cobra.ExactArgs(2), //nolint:mnd // column and title
	RunE:  runCardAdd,
}

var cardEditCmd = &cobra.Command{
	Use:   "edit COLUMN CARD",
	Short: "Change a card's title or description",
	Long: `Modifies fields of an existing card. Only specified fields are changed.
A description of "-" is read from stdin.`,
	Args: cobra.ExactArgs(2), //nolint:mnd // column and card
	RunE: runCardEdit,
}

var cardDeleteCmd = &cobra.Command{
	Use:     "delete COLUMN CARD",
	Aliases: []string{"rm"},
	Short:   "Delete a card",
	Long:    `Deletes a card. Prompts for confirmation in interactive mode.`,
	Args:    cobra.ExactArgs(2), //nolint:mnd // column and card
	RunE:    runCardDelete,
}

var cardMoveCmd = &cobra.Command{
	Use:   "move COLUMN CARD TO_COLUMN",
	Short: "Move a card to the end of another column",
	Long: `Appends the card to TO_COLUMN. The last card of the source column takes
the vacated position.`,
	Args: cobra.ExactArgs(3), //nolint:mnd // column, card and destination
	RunE: runCardMove,
}

var cardSwapCmd = &cobra.Command{
	Use:   "swap COLUMN CARD CARD",
	Short: "Swap the positions of two cards in a column",
	Args:  cobra.ExactArgs(3), //nolint:mnd // column and two cards
	RunE:  runCardSwap,
}

func init() {
	cardAddCmd.Flags().StringP("description", "d", "", "card description (\\n for line breaks, - for stdin)")

	cardEditCmd.Flags().String("title", "", "new title")
	cardEditCmd.Flags().StringP("description", "d", "", "new description (replaces the entire description)")
	cardEditCmd.Flags().StringP("append-description", "a", "", "append text to the description")
	cardEditCmd.Flags().Bool("clear-description", false, "remove the description")

	cardDeleteCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")

	cardCmd.AddCommand(cardAddCmd, cardEditCmd, cardDeleteCmd, cardMoveCmd, cardSwapCmd)
	rootCmd.AddCommand(cardCmd)
}

func runCardAdd(cmd *cobra.Command, args []string) error {
	title, err := requireTitle(args[1])
	if err != nil {
		return err
	}
	raw, _ := cmd.Flags().GetString("description")
	desc, err := descriptionArg(raw, os.Stdin)
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
		if err := b.AddCard(col, kanban.NewCard(title, desc)); err != nil {
			return event{}, err
		}
		return event{
			Action:      activity.ActionAddCard,
			Column:      col + 1,
			Card:        b.CardCount(col),
			ColumnTitle: b.Columns[col].Title,
			CardTitle:   title,
		}, nil
	})
	if err != nil {
		return err
	}
	return printMutation(b, ev, "Added card %d.%d: %s", ev.Column, ev.Card, ev.CardTitle)
}

// cardEdits holds the changes requested on the command line.
type cardEdits struct {
	title       *string
	description *string
	appendText  string
}

func parseCardEdits(cmd *cobra.Command) (cardEdits, error) {
	var edits cardEdits
	flags := cmd.Flags()

	if flags.Changed("title") {
		v, _ := flags.GetString("title")
		title, err := requireTitle(v)
		if err != nil {
			return edits, err
		}
		edits.title = &title
	}

	if flags.Changed("description") {
		v, _ := flags.GetString("description")
		desc, err := descriptionArg(v, os.Stdin)
		if err != nil {
			return edits, err
		}
		edits.description = &desc
	}
	if clearDesc, _ := flags.GetBool("clear-description"); clearDesc {
		if edits.description != nil {
			return edits, clierr.New(clierr.InvalidInput,
				"cannot combine --description and --clear-description")
		}
		empty := ""
		edits.description = &empty
	}

	if flags.Changed("append-description") {
		v, _ := flags.GetString("append-description")
		text, err := descriptionArg(v, os.Stdin)
		if err != nil {
			return edits, err
		}
		edits.appendText = text
	}

	if edits.title == nil && edits.description == nil && edits.appendText == "" {
		return edits, clierr.New(clierr.InvalidInput,
			"nothing to change; use --title, --description, --append-description or --clear-description")
	}
	return edits, nil
}

func (e cardEdits) apply(b *kanban.Board, col, card int) error {
	if e.title != nil {
		if err := b.SetCardTitle(col, card, *e.title); err != nil {
			return err
		}
	}
	if e.description != nil {
		if err := b.SetCardDescription(col, card, *e.description); err != nil {
			return err
		}
	}
	if e.appendText != "" {
		c, _ := b.Card(col, card)
		desc := c.Description
		if desc != "" && !strings.HasSuffix(desc, "\n") {
			desc += "\n"
		}
		if err := b.SetCardDescription(col, card, desc+e.appendText); err != nil {
			return err
		}
	}
	return nil
}

func runCardEdit(cmd *cobra.Command, args []string) error {
	edits, err := parseCardEdits(cmd)
	if err != nil {
		return err
	}
	s, err := openSession()
	if err != nil {
		return err
	}

	b, ev, err := s.mutate(func(b *kanban.Board) (event, error) {
		col, card, err := resolveCardArgs(b, args[0], args[1])
		if err != nil {
			return event{}, err
		}
		old := b.Columns[col].Cards[card].Title
		if err := edits.apply(b, col, card); err != nil {
			return event{}, err
		}
		ev := event{
			Action:      activity.ActionEditCard,
			Column:      col + 1,
			Card:        card + 1,
			ColumnTitle: b.Columns[col].Title,
			CardTitle:   b.Columns[col].Cards[card].Title,
		}
		if ev.CardTitle != old {
			ev.Detail = "was " + old
		}
		return ev, nil
	})
	if err != nil {
		return err
	}
	return printMutation(b, ev, "Updated card %d.%d: %s", ev.Column, ev.Card, ev.CardTitle)
}

func runCardDelete(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}

	current, err := s.load()
	if err != nil {
		return err
	}
	col, card, err := resolveCardArgs(current, args[0], args[1])
	if err != nil {
		return err
	}

	yes, _ := cmd.Flags().GetBool("yes")
	ok, err := confirm(yes, "Delete card %q from %q?",
		current.Columns[col].Cards[card].Title, current.Columns[col].Title)
	if err != nil {
		return err
	}
	if !ok {
		return &clierr.SilentError{Code: 1}
	}

	b, ev, err := s.mutate(func(b *kanban.Board) (event, error) {
		col, card, err := resolveCardArgs(b, args[0], args[1])
		if err != nil {
			return event{}, err
		}
		ev := event{
			Action:      activity.ActionDeleteCard,
			Column:      col + 1,
			Card:        card + 1,
			ColumnTitle: b.Columns[col].Title,
			CardTitle:   b.Columns[col].Cards[card].Title,
		}
		return ev, b.DeleteCard(col, card)
	})
	if err != nil {
		return err
	}
	return printMutation(b, ev, "Deleted card %d.%d: %s", ev.Column, ev.Card, ev.CardTitle)
}

func runCardMove(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}

	b, ev, err := s.mutate(func(b *kanban.Board) (event, error) {
		from, card, err := resolveCardArgs(b, args[0], args[1])
		if err != nil {
			return event{}, err
		}
		to, err := resolveColumn(b, args[2])
		if err != nil {
			return event{}, err
		}
		if from == to {
			return event{}, clierr.Newf(clierr.InvalidInput,
				"card is already in %q", b.Columns[to].Title)
		}
		title := b.Columns[from].Cards[card].Title
		if err := b.MoveCard(from, to, card); err != nil {
			return event{}, err
		}
		return event{
			Action:      activity.ActionMoveCard,
			Column:      to + 1,
			Card:        b.CardCount(to),
			ColumnTitle: b.Columns[to].Title,
			CardTitle:   title,
			Detail:      "from " + b.Columns[from].Title,
		}, nil
	})
	if err != nil {
		return err
	}
	return printMutation(b, ev, "Moved card %s to %s (%d.%d)", ev.CardTitle, ev.ColumnTitle, ev.Column, ev.Card)
}

func runCardSwap(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}

	b, ev, err := s.mutate(func(b *kanban.Board) (event, error) {
		col, i, err := resolveCardArgs(b, args[0], args[1])
		if err != nil {
			return event{}, err
		}
		j, err := resolveCard(b, col, args[2])
		if err != nil {
			return event{}, err
		}
		if err := b.SwapCard(col, i, j); err != nil {
			return event{}, err
		}
		return event{
			Action:      activity.ActionSwapCard,
			Column:      col + 1,
			Card:        j + 1,
			ColumnTitle: b.Columns[col].Title,
			CardTitle:   b.Columns[col].Cards[j].Title,
			Detail:      "with " + b.Columns[col].Cards[i].Title,
		}, nil
	})
	if err != nil {
		return err
	}
	return printMutation(b, ev, "Moved card %s to position %d.%d", ev.CardTitle, ev.Column, ev.Card)
}
