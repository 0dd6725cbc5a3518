package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/flashiz/internal/app"
)

// runApp opens the store, builds dependencies, and launches the TUI. A
// non-empty deckID starts a quiz on that deck directly.
func runApp(cmd *cobra.Command, deckID string) error {
	d, err := openDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	return app.Run(app.Options{
		Services: d.services(cmd.Context()),
		DeckID:   deckID,
	})
}
