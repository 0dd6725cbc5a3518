package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashiz/internal/ui/theme"
)

// ContentWidth returns the inner width shared by all panels on a screen,
// so stacked boxes line up.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 64)
}

// Panel centers content horizontally and vertically inside width x height.
func Panel(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// FlashCard renders the front of a card inside a rounded box.
func FlashCard(front string, cw int) string {
	return theme.CardFace.Width(cw - 2).Render(front)
}

// Box wraps content in a plain rounded card at the given width.
func Box(content string, cw int) string {
	return theme.Box.Width(cw - 2).Render(content)
}

// Banner renders a one-line notice. Errors use the error color.
func Banner(text string, isErr bool, cw int) string {
	color := theme.Success
	if isErr {
		color = theme.Error
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Foreground(color).
		Width(cw - 2).
		Padding(0, 1).
		Render(text)
}
