package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/flashiz/internal/api"
	"github.com/abhisek/flashiz/internal/stats"
	"github.com/abhisek/flashiz/internal/ui/components"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show quiz statistics",
	Long: `Show accuracy per deck and over time. Server statistics are shown by
default; --local reads the attempts cached on this device instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		deckName, _ := cmd.Flags().GetString("deck")
		local, _ := cmd.Flags().GetBool("local")
		asJSON, _ := cmd.Flags().GetBool("json")

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		var report stats.Report
		switch {
		case local:
			report, err = d.stats.LoadLocal(ctx, deckName)
		case deckName != "":
			report, err = d.stats.LoadDeck(ctx, deckName)
		default:
			report, err = d.stats.Load(ctx)
		}
		if err != nil {
			return errors.New(api.Message(d.handleAuthError(ctx, err)))
		}

		if asJSON {
			return writeStatsJSON(cmd.OutOrStdout(), report)
		}
		return writeStats(cmd.OutOrStdout(), report)
	},
}

type statsGroupJSON struct {
	Deck       string `json:"deck"`
	Attempts   int    `json:"attempts"`
	TotalCards int    `json:"totalCards"`
	Correct    int    `json:"correct"`
	Accuracy   int    `json:"accuracy"`
}

type statsPointJSON struct {
	Date     string `json:"date"`
	Deck     string `json:"deck"`
	Accuracy int    `json:"accuracy"`
}

type statsJSON struct {
	TotalReviewed   int              `json:"totalReviewed"`
	TotalCorrect    int              `json:"totalCorrect"`
	OverallAccuracy int              `json:"overallAccuracy"`
	Groups          []statsGroupJSON `json:"groups"`
	Series          []statsPointJSON `json:"series"`
}

func writeStatsJSON(w io.Writer, r stats.Report) error {
	out := statsJSON{
		TotalReviewed:   r.TotalReviewed,
		TotalCorrect:    r.TotalCorrect,
		OverallAccuracy: r.OverallAccuracy,
		Groups:          []statsGroupJSON{},
		Series:          []statsPointJSON{},
	}
	for _, g := range r.Groups {
		out.Groups = append(out.Groups, statsGroupJSON{
			Deck: g.Deck, Attempts: g.Attempts, TotalCards: g.TotalCards,
			Correct: g.Correct, Accuracy: g.Accuracy(),
		})
	}
	for _, p := range r.Series {
		out.Series = append(out.Series, statsPointJSON{
			Date: p.Date.UTC().Format("2006-01-02T15:04:05Z"), Deck: p.Deck, Accuracy: p.Accuracy,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeStats(w io.Writer, r stats.Report) error {
	fmt.Fprintf(w, "Overall accuracy: %d%%\n", r.OverallAccuracy)
	fmt.Fprintf(w, "Cards reviewed:   %d\n", r.TotalReviewed)
	fmt.Fprintf(w, "Decks studied:    %d\n\n", r.DecksStudied())

	if len(r.Groups) == 0 {
		fmt.Fprintln(w, "No deck statistics available yet. Complete some quizzes to see your progress!")
		return nil
	}

	t := newTable("Deck", "Attempts", "Correct", "Accuracy")
	for _, g := range r.Groups {
		t.Row(g.Deck, strconv.Itoa(g.Attempts),
			fmt.Sprintf("%d/%d", g.Correct, g.TotalCards), fmt.Sprintf("%d%%", g.Accuracy()))
	}
	if err := printTable(w, t); err != nil {
		return err
	}

	switch r.Chart() {
	case stats.ChartNeedMoreData:
		fmt.Fprintln(w, "\nYou need at least two quiz attempts to see a trend.")
	case stats.ChartTrend:
		values := make([]int, len(r.Series))
		for i, p := range r.Series {
			values[i] = p.Accuracy
		}
		last := r.Series[len(r.Series)-1]
		fmt.Fprintln(w)
		_, err := lipgloss.Fprintln(w, "Trend  "+components.Sparkline(values, 60))
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "       latest %d%% on %s (%s)\n", last.Accuracy, last.Deck, last.Date.Local().Format("Jan 2"))
	}
	return nil
}

func init() {
	statsCmd.Flags().String("deck", "", "Only show one deck (by name)")
	statsCmd.Flags().Bool("local", false, "Use the attempts cached on this device")
	statsCmd.Flags().Bool("json", false, "Print JSON")
}
