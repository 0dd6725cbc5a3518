package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashiz/internal/ui/theme"
)

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders percentages (0-100) as a row of block characters.
// When there are more values than width, only the most recent fit.
func Sparkline(values []int, width int) string {
	if width > 0 && len(values) > width {
		values = values[len(values)-width:]
	}
	var b strings.Builder
	for _, v := range values {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.AccuracyColor(v)).
			Render(string(sparkRune(v))))
	}
	return b.String()
}

func sparkRune(v int) rune {
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	idx := v * (len(sparkBlocks) - 1) / 100
	return sparkBlocks[idx]
}
