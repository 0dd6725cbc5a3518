package createdeck

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashiz/internal/ui/components"
	"github.com/abhisek/flashiz/internal/ui/theme"
)

// queueShown is how many queued cards are listed below the form.
const queueShown = 4

func (s *CreateDeckScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render("Create Your Flashcards"))
	b.WriteString("\n\n")

	if s.notice != "" {
		b.WriteString(components.Banner(s.notice, s.noticeErr, cw))
		b.WriteString("\n")
	}

	if s.preview {
		b.WriteString(s.renderPreview(cw))
	} else {
		b.WriteString(s.renderForm(cw))
	}

	if s.busy {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("Please wait..."))
	}

	body := lipgloss.NewStyle().Width(cw).Render(b.String())
	return components.Panel(body, width, height)
}

func (s *CreateDeckScreen) renderForm(cw int) string {
	var b strings.Builder

	b.WriteString(s.name.View())
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(cw).Render("OR"))
	b.WriteString("\n")
	b.WriteString(s.renderTarget())
	b.WriteString("\n\n")

	b.WriteString(theme.Selected.Render("Add New Card"))
	b.WriteString("\n")
	for i, in := range s.card {
		b.WriteString(in.View())
		if i < len(s.card)-1 {
			b.WriteString("\n")
		}
	}

	if n := s.draft.Len(); n > 0 {
		b.WriteString("\n\n")
		b.WriteString(theme.Selected.Render(fmt.Sprintf("Cards in Queue (%d)", n)))
		cards := s.draft.Cards()
		start := 0
		if len(cards) > queueShown {
			start = len(cards) - queueShown
			b.WriteString("\n")
			b.WriteString(theme.Hint.Render(fmt.Sprintf("  … %d more", start)))
		}
		for i := start; i < len(cards); i++ {
			line := fmt.Sprintf("  %d. %s → %s", i+1, cards[i].Front, cards[i].Back)
			b.WriteString("\n")
			b.WriteString(theme.Body.MaxWidth(cw).Render(line))
		}
	}
	return b.String()
}

func (s *CreateDeckScreen) renderTarget() string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim)
	if s.focus == posTarget {
		label = lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	}
	value := "No decks available"
	if d, ok := s.targetDeck(); ok {
		value = "◂ " + d.Name + " ▸"
	}
	style := theme.Unselected
	if s.focus == posTarget {
		style = theme.Selected
	}
	return label.Render("Add to Existing Deck") + "\n" + style.Render(value)
}

func (s *CreateDeckScreen) renderPreview(cw int) string {
	c, i, err := s.draft.Preview()
	if err != nil {
		return theme.Hint.Render(err.Error())
	}

	var b strings.Builder
	b.WriteString(theme.Subtitle.Width(cw).Render(fmt.Sprintf("Card %d of %d", i+1, s.draft.Len())))
	b.WriteString("\n")
	b.WriteString(components.FlashCard(c.Front, cw))
	b.WriteString("\n")
	b.WriteString(theme.Correct.Render("✓ " + c.Back))
	for _, w := range c.WrongAnswers {
		b.WriteString("\n")
		b.WriteString(theme.Incorrect.Render("✗ " + w))
	}
	return b.String()
}
