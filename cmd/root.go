package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "flashiz",
	Short: "Flashcard quizzes in the terminal",
	Long: "flashiz — build flashcard decks, take timed multiple-choice quizzes and " +
		"track your accuracy against a flashcard backend.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("api-url", "", "Backend base URL (overrides FLASHIZ_API_URL)")
	pf.String("db", "", "Path to SQLite database file (overrides FLASHIZ_DB)")
	pf.String("config", "", "Path to config file (default $XDG_CONFIG_HOME/flashiz/config.yaml)")
	pf.String("log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(decksCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}
