package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/flashiz/internal/session"
	"github.com/abhisek/flashiz/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List quiz attempts cached on this device",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		deckName, _ := cmd.Flags().GetString("deck")

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		attempts, err := d.store.HistoryRepo().List(cmd.Context(), store.QueryOpts{Limit: limit, Deck: deckName})
		if err != nil {
			return fmt.Errorf("list history: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(attempts) == 0 {
			fmt.Fprintln(out, "No quizzes yet.")
			return nil
		}

		t := newTable("Date", "Deck", "Score", "Accuracy", "Time", "Best Streak", "Hints")
		for i := len(attempts) - 1; i >= 0; i-- {
			a := attempts[i]
			t.Row(
				a.Date.Local().Format("2006-01-02 15:04"),
				a.DeckName,
				fmt.Sprintf("%d/%d", a.Correct, a.TotalCards),
				fmt.Sprintf("%d%%", a.Accuracy),
				session.FormatClock(a.TimeTaken),
				strconv.Itoa(a.BestStreak),
				strconv.Itoa(a.HintsUsed),
			)
		}
		return printTable(out, t)
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of attempts to show (0 for all)")
	historyCmd.Flags().String("deck", "", "Only show one deck (by name)")
}
