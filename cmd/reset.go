package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/flashiz/internal/api"
	"github.com/abhisek/flashiz/internal/stats"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete your quiz statistics",
	Long: `Delete every statistics record on the server. Attempts cached on this
device are kept unless --local is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		local, _ := cmd.Flags().GetBool("local")
		yes, _ := cmd.Flags().GetBool("yes")

		if !yes {
			fmt.Fprint(cmd.OutOrStdout(), "Are you sure you want to reset your statistics? [y/N] ")
			line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if a := strings.ToLower(strings.TrimSpace(line)); a != "y" && a != "yes" {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
		}

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		msg, err := d.stats.Reset(ctx, stats.ResetOptions{ClearLocal: local})
		if err != nil {
			if msg == "" {
				return errors.New(api.Message(d.handleAuthError(ctx, err)))
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("local", false, "Also clear the attempts cached on this device")
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}
