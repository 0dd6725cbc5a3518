package cmd

import (
	"github.com/spf13/cobra"
)

var quizCmd = &cobra.Command{
	Use:   "quiz <deck-id>",
	Short: "Start a quiz on a deck",
	Long:  "Open the quiz screen for one deck. Leaving the quiz exits flashiz.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, args[0])
	},
}
