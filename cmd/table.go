package cmd

import (
	"io"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/abhisek/flashiz/internal/ui/theme"
)

// newTable returns a table styled like the TUI panels.
func newTable(headers ...string) *table.Table {
	header := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
}

// printTable writes t, downsampling colors to what w supports.
func printTable(w io.Writer, t *table.Table) error {
	_, err := lipgloss.Fprintln(w, t.String())
	return err
}
