package statistics

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashiz/internal/stats"
	"github.com/abhisek/flashiz/internal/ui/components"
	"github.com/abhisek/flashiz/internal/ui/theme"
)

const (
	noDeckStatsText = "No deck statistics available yet. Start a quiz to track your progress!"
	needMoreText    = "You need at least two quiz attempts to display the trend chart."
)

func (s *StatisticsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	heading := "Your Study Statistics"
	if s.local {
		heading += " (this device)"
	}
	b.WriteString(theme.Title.Width(cw).Render(heading))
	b.WriteString("\n\n")

	if s.errMsg != "" {
		b.WriteString(components.Banner(s.errMsg, true, cw))
		b.WriteString("\n")
	}
	if s.notice != "" {
		b.WriteString(components.Banner(s.notice, false, cw))
		b.WriteString("\n")
	}
	if s.confirm {
		b.WriteString(components.Banner(resetConfirmText+"  [y/n]", true, cw))
		b.WriteString("\n")
	}

	if !s.loaded {
		b.WriteString(theme.Hint.Width(cw).Align(lipgloss.Center).Render("Loading statistics..."))
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
	}

	b.WriteString(renderSummary(s.report, cw))
	b.WriteString("\n\n")

	b.WriteString(theme.Subtitle.Width(cw).Align(lipgloss.Left).Render("Accuracy by deck"))
	b.WriteString("\n")
	groupRows := height - 18
	if groupRows < 1 {
		groupRows = 1
	}
	b.WriteString(renderGroups(s.report.Groups, s.offset, groupRows, cw))
	b.WriteString("\n\n")

	b.WriteString(theme.Subtitle.Width(cw).Align(lipgloss.Left).Render("Accuracy over time"))
	b.WriteString("\n")
	b.WriteString(renderTrend(s.report, cw))

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func renderSummary(r stats.Report, cw int) string {
	cell := func(value, label string, c lipgloss.Style) string {
		return lipgloss.NewStyle().
			Width(cw/3 - 2).
			Align(lipgloss.Center).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Render(c.Bold(true).Render(value) + "\n" +
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		cell(fmt.Sprintf("%d%%", r.OverallAccuracy), "Overall Accuracy",
			lipgloss.NewStyle().Foreground(theme.AccuracyColor(r.OverallAccuracy))),
		cell(fmt.Sprintf("%d", r.TotalReviewed), "Cards Reviewed",
			lipgloss.NewStyle().Foreground(theme.Secondary)),
		cell(fmt.Sprintf("%d", r.DecksStudied()), "Decks Studied",
			lipgloss.NewStyle().Foreground(theme.Accent)),
	)
}

func renderGroups(groups []stats.Group, offset, rows, cw int) string {
	if len(groups) == 0 {
		return theme.Hint.Render(noDeckStatsText)
	}
	end := min(offset+rows, len(groups))

	nameWidth := cw / 3
	var lines []string
	for _, g := range groups[offset:end] {
		name := g.Deck
		if rs := []rune(name); len(rs) > nameWidth-2 {
			name = string(rs[:nameWidth-2]) + "…"
		}
		acc := g.Accuracy()
		bar := components.NewProgressBar("", float64(acc)/100, true, cw-nameWidth-12)
		bar.Fill = theme.AccuracyColor(acc)
		lines = append(lines,
			lipgloss.NewStyle().Width(nameWidth).Foreground(theme.Text).Render(name)+
				bar.View()+
				theme.Hint.Render(fmt.Sprintf(" %d/%d", g.Correct, g.TotalCards)))
	}
	if len(groups) > rows {
		lines = append(lines, theme.Hint.Render(fmt.Sprintf("showing %d-%d of %d decks", offset+1, end, len(groups))))
	}
	return strings.Join(lines, "\n")
}

func renderTrend(r stats.Report, cw int) string {
	switch r.Chart() {
	case stats.ChartEmpty:
		return theme.Hint.Render("No quizzes taken yet.")
	case stats.ChartNeedMoreData:
		return theme.Hint.Render(needMoreText)
	}

	values := make([]int, len(r.Series))
	for i, p := range r.Series {
		values[i] = p.Accuracy
	}
	spark := components.Sparkline(values, cw-8)

	shown := min(len(r.Series), cw-8)
	first := r.Series[len(r.Series)-shown]
	last := r.Series[len(r.Series)-1]
	axis := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString(axis.Render("100% ") + spark)
	b.WriteString("\n")
	dates := first.Date.Format("Jan 2")
	if gap := shown - lipgloss.Width(dates) - lipgloss.Width(last.Date.Format("Jan 2")); gap > 0 {
		dates += strings.Repeat(" ", gap) + last.Date.Format("Jan 2")
	}
	b.WriteString(axis.Render("     " + dates))
	b.WriteString("\n")
	b.WriteString(axis.Render(fmt.Sprintf("     latest %d%% on %s", last.Accuracy, last.Deck)))
	return b.String()
}
