package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/flashiz/internal/api"
	"github.com/abhisek/flashiz/internal/deck"
	"github.com/abhisek/flashiz/internal/models"
)

var decksCmd = &cobra.Command{
	Use:   "decks",
	Short: "List, inspect and author decks",
}

var decksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available decks",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		decks, err := d.client.ListDecks(cmd.Context())
		if err != nil {
			return errors.New(api.Message(err))
		}
		out := cmd.OutOrStdout()
		if len(decks) == 0 {
			fmt.Fprintln(out, "No decks available.")
			return nil
		}

		t := newTable("ID", "Name", "Cards", "Difficulty")
		for _, dk := range decks {
			t.Row(dk.ID, dk.Name, strconv.Itoa(len(dk.Cards)), orDash(dk.Difficulty))
		}
		return printTable(out, t)
	},
}

var decksShowCmd = &cobra.Command{
	Use:   "show <deck-id>",
	Short: "Show a deck and its cards",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		dk, err := d.client.GetDeck(cmd.Context(), args[0])
		if err != nil {
			return errors.New(api.Message(err))
		}
		printDeck(cmd.OutOrStdout(), dk)
		return nil
	},
}

var decksCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a deck from --card values",
	Long: `Create a new deck. Each --card is "front|back|wrong 1|wrong 2[|wrong 3]";
a card needs at least two wrong answers.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return saveDraft(cmd, &deck.Draft{Name: args[0]})
	},
}

var decksAddCardsCmd = &cobra.Command{
	Use:   "add-cards <deck-id>",
	Short: "Append --card values to an existing deck",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return saveDraft(cmd, &deck.Draft{TargetID: args[0]})
	},
}

var decksImportCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Create a deck from a JSON file",
	Long: `Create a deck from a JSON file of the form
{"name": "...", "description": "...", "difficulty": "...",
 "cards": [{"front": "...", "back": "...", "wrongAnswers": ["..."]}]}`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		dk, err := deck.Import(f)
		if err != nil {
			return err
		}
		if name, _ := cmd.Flags().GetString("name"); name != "" {
			if dk.Name, err = deck.Sanitize(name); err != nil {
				return fmt.Errorf("deck name: %w", err)
			}
		}

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		created, err := d.client.CreateDeck(cmd.Context(), dk.Name, dk.Cards)
		if err != nil {
			return errors.New(api.Message(d.handleAuthError(cmd.Context(), err)))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "New deck %q created with %d card(s)! (id %s)\n",
			created.Name, len(dk.Cards), created.ID)
		return nil
	},
}

// saveDraft fills draft from the --card flags and saves it.
func saveDraft(cmd *cobra.Command, draft *deck.Draft) error {
	raws, _ := cmd.Flags().GetStringArray("card")
	for i, raw := range raws {
		front, back, wrong, err := parseCard(raw)
		if err == nil {
			err = draft.AddCard(front, back, wrong)
		}
		if err != nil {
			return fmt.Errorf("card %d: %w", i+1, err)
		}
	}

	d, err := openDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	msg, err := draft.Save(cmd.Context(), d.client)
	if err != nil {
		return errors.New(api.Message(d.handleAuthError(cmd.Context(), err)))
	}
	fmt.Fprintln(cmd.OutOrStdout(), msg)
	return nil
}

// parseCard splits "front|back|wrong...".
func parseCard(raw string) (front, back string, wrong []string, err error) {
	parts := strings.Split(raw, "|")
	if len(parts) < 2 {
		return "", "", nil, fmt.Errorf("expected \"front|back|wrong|wrong\", got %q", raw)
	}
	if len(parts)-2 > deck.MaxWrongAnswers {
		return "", "", nil, fmt.Errorf("at most %d wrong answers per card", deck.MaxWrongAnswers)
	}
	return parts[0], parts[1], parts[2:], nil
}

func printDeck(w io.Writer, dk *models.Deck) {
	fmt.Fprintf(w, "%s (%s)\n", dk.Name, dk.ID)
	if dk.Description != "" {
		fmt.Fprintln(w, dk.Description)
	}
	fmt.Fprintf(w, "Difficulty: %s · %d card(s)\n\n", orDash(dk.Difficulty), len(dk.Cards))
	for i, c := range dk.Cards {
		fmt.Fprintf(w, "%3d. %s\n", i+1, c.Front)
		fmt.Fprintf(w, "     ✓ %s\n", c.Back)
		for _, wa := range c.WrongAnswers {
			fmt.Fprintf(w, "     ✗ %s\n", wa)
		}
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	for _, c := range []*cobra.Command{decksCreateCmd, decksAddCardsCmd} {
		c.Flags().StringArray("card", nil, `Card as "front|back|wrong 1|wrong 2[|wrong 3]" (repeatable)`)
	}
	decksImportCmd.Flags().String("name", "", "Override the deck name from the file")

	decksCmd.AddCommand(decksListCmd)
	decksCmd.AddCommand(decksShowCmd)
	decksCmd.AddCommand(decksCreateCmd)
	decksCmd.AddCommand(decksAddCardsCmd)
	decksCmd.AddCommand(decksImportCmd)
}
