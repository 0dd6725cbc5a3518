package quiz

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashiz/internal/models"
	sess "github.com/abhisek/flashiz/internal/session"
	"github.com/abhisek/flashiz/internal/ui/components"
	"github.com/abhisek/flashiz/internal/ui/theme"
)

func (q *QuizScreen) View(width, height int) string {
	if q.errMsg != "" {
		return renderError(width, q.errMsg)
	}
	if q.state == nil {
		return renderLoading(width)
	}
	if q.showingQuitConfirm {
		return renderQuitConfirm(width)
	}
	switch q.state.Phase {
	case sess.PhaseNotStarted:
		return q.renderIntro(width, height)
	case sess.PhaseInProgress:
		return q.renderQuestion(width)
	}
	return q.renderCompleted(width, height)
}

// IntroText is the line shown before a quiz starts: the deck description,
// or a generated sentence when there is none.
func IntroText(deck *models.Deck) string {
	if deck.Description != "" {
		return deck.Description
	}
	if deck.Difficulty == "" {
		return fmt.Sprintf("You're about to start a quiz with %d questions.", len(deck.Cards))
	}
	return fmt.Sprintf("You're about to start a %s quiz with %d questions.", deck.Difficulty, len(deck.Cards))
}

func (q *QuizScreen) renderIntro(width, height int) string {
	deck := q.state.Deck
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render(deck.Name))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Width(cw).Render(IntroText(deck)))
	b.WriteString("\n\n")

	difficulty := deck.Difficulty
	if difficulty == "" {
		difficulty = "-"
	}
	details := []string{
		detail("Timed", "Quiz"),
		detail(fmt.Sprintf("%d", len(deck.Cards)), "Questions"),
		detail(difficulty, "Difficulty"),
	}
	b.WriteString(lipgloss.PlaceHorizontal(cw, lipgloss.Center,
		lipgloss.JoinHorizontal(lipgloss.Top, details...)))
	b.WriteString("\n\n")

	if q.startErr != "" {
		b.WriteString(components.Banner(q.startErr, true, cw))
		b.WriteString("\n")
	}
	b.WriteString(lipgloss.PlaceHorizontal(cw, lipgloss.Center,
		components.NewButton("Start Quiz", true).WithKey("Enter").View()))

	return components.Panel(b.String(), width, height)
}

func detail(value, label string) string {
	return lipgloss.NewStyle().
		Width(16).
		Align(lipgloss.Center).
		Render(
			lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(value) + "\n" +
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(label),
		)
}

func (q *QuizScreen) renderQuestion(width int) string {
	state := q.state
	cw := components.ContentWidth(width)

	var b strings.Builder

	// Info line: deck on the left, clock and streak on the right.
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(state.Deck.Name)

	streakStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if state.Streak > 0 {
		streakStyle = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	}
	infoRight := lipgloss.NewStyle().Foreground(theme.TextDim).Render("⏱ "+sess.FormatClock(state.Elapsed)) +
		"   " + streakStyle.Render(fmt.Sprintf("★ Streak: %d", state.Streak))

	infoLine := infoLeft
	if pad := cw - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight); pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")

	bar := components.NewProgressBar("", state.Progress(), false, cw)
	b.WriteString(bar.View())
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("Question %d of %d", state.Index+1, state.TotalCards())))
	b.WriteString("\n\n")

	card := state.CurrentCard()
	if card != nil {
		b.WriteString(components.FlashCard(card.Front, cw))
		b.WriteString("\n")
	}

	switch {
	case q.hint != nil:
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Italic(true).Render("Hint: " + q.hint.Text))
	case q.hintLoading:
		b.WriteString(theme.Hint.Render("Thinking of a hint..."))
	case !state.Revealing:
		b.WriteString(theme.Hint.Render("Need a hint? Press H"))
	}
	b.WriteString("\n\n")

	b.WriteString(q.choice.View())

	if state.Revealing && card != nil {
		b.WriteString("\n")
		b.WriteString(renderFeedback(state, card))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().Width(cw).Render(b.String()))
}

func renderFeedback(state *sess.State, card *models.Card) string {
	var b strings.Builder
	if state.LastCorrect {
		b.WriteString(theme.Correct.Render("Correct!"))
	} else {
		b.WriteString(theme.Incorrect.Render("Incorrect"))
	}
	b.WriteString("\n")
	label := lipgloss.NewStyle().Foreground(theme.TextDim)
	b.WriteString(label.Render("Correct Answer: ") + theme.Body.Render(card.Back))
	b.WriteString("\n")
	b.WriteString(label.Render("Your Answer: ") + theme.Body.Render(state.Selected))
	return b.String()
}

func (q *QuizScreen) renderCompleted(width, height int) string {
	res := q.state.Result
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render("Quiz Completed!"))
	b.WriteString("\n\n")

	if q.saveErr != "" {
		b.WriteString(components.Banner(q.saveErr+"  [x]", true, cw))
		b.WriteString("\n")
	}

	accuracy := 0
	if res != nil {
		accuracy = res.Accuracy
	}
	counts := []string{
		stat(fmt.Sprintf("%d", q.state.Correct), "Correct", theme.Success),
		stat(fmt.Sprintf("%d", q.state.Wrong), "Incorrect", theme.Error),
		stat(fmt.Sprintf("%d%%", accuracy), "Accuracy", theme.AccuracyColor(accuracy)),
	}
	b.WriteString(lipgloss.PlaceHorizontal(cw, lipgloss.Center,
		lipgloss.JoinHorizontal(lipgloss.Top, counts...)))
	b.WriteString("\n\n")

	extra := fmt.Sprintf("⏱ Time: %s    ★ Best Streak: %d    ? Hints: %d",
		sess.FormatClock(q.state.Elapsed), q.state.BestStreak, q.state.HintsUsed)
	b.WriteString(theme.Subtitle.Width(cw).Render(extra))
	b.WriteString("\n\n")

	if q.saving {
		b.WriteString(theme.Hint.Width(cw).Align(lipgloss.Center).Render("Saving your results..."))
		b.WriteString("\n\n")
	}

	actions := lipgloss.JoinHorizontal(lipgloss.Top,
		components.NewButton("View Stats", true).WithKey("S").View(),
		"  ",
		components.NewButton("Try Again", false).WithKey("R").View(),
	)
	b.WriteString(lipgloss.PlaceHorizontal(cw, lipgloss.Center, actions))

	return components.Panel(b.String(), width, height)
}

func stat(value, label string, c color.Color) string {
	return lipgloss.NewStyle().
		Width(14).
		Align(lipgloss.Center).
		Render(
			lipgloss.NewStyle().Foreground(c).Bold(true).Render(value) + "\n" +
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(label),
		)
}

// renderQuitConfirm renders the leave confirmation dialog.
func renderQuitConfirm(width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(center.Foreground(theme.Text).Bold(true).Render("Leave this quiz?"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render("This attempt will not be saved."))
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.Error).Render("[Y] Yes, leave"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Primary).Render("[N] No, keep going"))
	return b.String()
}

// renderLoading renders the loading state.
func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Loading deck...")
}

// renderError renders an error message.
func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}
