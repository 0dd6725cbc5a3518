package dashboard

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashiz/internal/stats"
	"github.com/abhisek/flashiz/internal/ui/theme"
)

// Block-letter title.
const titleFull = `
███████╗██╗      █████╗ ███████╗██╗  ██╗██╗███████╗
██╔════╝██║     ██╔══██╗██╔════╝██║  ██║██║╚══███╔╝
█████╗  ██║     ███████║███████╗███████║██║  ███╔╝
██╔══╝  ██║     ██╔══██║╚════██║██╔══██║██║ ███╔╝
██║     ███████╗██║  ██║███████║██║  ██║██║███████╗
╚═╝     ╚══════╝╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝╚═╝╚══════╝`

const titleCompact = "F · L · A · S · H · I · Z"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	art := strings.TrimPrefix(titleFull, "\n")
	if compact || cw < lipgloss.Width(art) {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

// renderStatsBar summarizes the local attempt history in a bordered box
// matching the content width.
func renderStatsBar(r *stats.Report, cw int, compact bool) string {
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var line string
	switch {
	case r == nil:
		line = dimStyle.Render("Loading your progress...")
	case len(r.Series) == 0:
		line = dimStyle.Render("No quizzes yet. Pick a deck and start!")
	default:
		quizStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
		deckStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
		accStyle := lipgloss.NewStyle().Foreground(theme.AccuracyColor(r.OverallAccuracy)).Bold(true)
		sep := "  "
		quizzes, decks, acc := "%d QUIZZES", "%d DECKS", "%d%% ACCURACY"
		if compact {
			sep = " "
			quizzes, decks, acc = "▣%d", "■%d", "✓%d%%"
		}
		line = strings.Join([]string{
			quizStyle.Render(fmt.Sprintf(quizzes, len(r.Series))),
			deckStyle.Render(fmt.Sprintf(decks, r.DecksStudied())),
			accStyle.Render(fmt.Sprintf(acc, r.OverallAccuracy)),
		}, sep)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(line)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderMenu renders each menu item as a fixed-width button.
func renderMenu(items []string, selected int, cw int) string {
	selectedBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Primary).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(0, 1)

	normalBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	var buttons []string
	for i, label := range items {
		if i == selected {
			buttons = append(buttons, selectedBtn.Render("▸ "+label))
		} else {
			buttons = append(buttons, normalBtn.Render(label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderMenuCompact renders menu items as plain lines for short terminals
// where bordered buttons would overflow.
func renderMenuCompact(items []string, selected int, cw int) string {
	var lines []string
	for i, label := range items {
		if i == selected {
			lines = append(lines, theme.Selected.Render("▸ "+label))
		} else {
			lines = append(lines, theme.Unselected.Render("  "+label))
		}
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}
