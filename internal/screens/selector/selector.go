// Package selector lists the available decks and starts a quiz.
package selector

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/flashiz/internal/api"
	"github.com/abhisek/flashiz/internal/models"
	"github.com/abhisek/flashiz/internal/router"
	"github.com/abhisek/flashiz/internal/screen"
	"github.com/abhisek/flashiz/internal/screens/quiz"
	"github.com/abhisek/flashiz/internal/ui/components"
	"github.com/abhisek/flashiz/internal/ui/layout"
	"github.com/abhisek/flashiz/internal/ui/theme"
)

type decksLoadedMsg struct {
	decks []models.Deck
	err   error
}

// SelectorScreen shows the deck list.
type SelectorScreen struct {
	svc       *screen.Services
	decks     []models.Deck
	selected  int
	loaded    bool
	errMsg    string
	notice    string
	noticeErr bool
}

var _ screen.Screen = (*SelectorScreen)(nil)
var _ screen.KeyHintProvider = (*SelectorScreen)(nil)

// New creates the deck list screen.
func New(svc *screen.Services) *SelectorScreen {
	return &SelectorScreen{svc: svc}
}

func (s *SelectorScreen) Init() tea.Cmd {
	return s.load()
}

func (s *SelectorScreen) load() tea.Cmd {
	src := s.svc.Decks
	return func() tea.Msg {
		decks, err := src.ListDecks(context.Background())
		return decksLoadedMsg{decks: decks, err: err}
	}
}

func (s *SelectorScreen) Title() string {
	return "Select a Deck"
}

func (s *SelectorScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start Quiz"},
		{Key: "R", Description: "Refresh"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SelectorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case decksLoadedMsg:
		s.loaded = true
		if msg.err != nil {
			if cmd := s.svc.Expired(msg.err); cmd != nil {
				return s, cmd
			}
			s.errMsg = api.Message(msg.err)
			s.svc.Log().Warn("list decks", zap.Error(msg.err))
			return s, nil
		}
		s.errMsg = ""
		s.decks = msg.decks
		if s.selected >= len(s.decks) {
			s.selected = 0
		}
		return s, nil

	case screen.NoticeMsg:
		s.notice, s.noticeErr = msg.Text, msg.IsErr
		return s, nil

	case tea.KeyMsg:
		s.notice = ""
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.decks)-1 {
				s.selected++
			}
		case "r":
			s.loaded = false
			return s, s.load()
		case "enter":
			if s.selected < len(s.decks) {
				q := quiz.New(s.svc, s.decks[s.selected].ID)
				return s, func() tea.Msg { return router.PushScreenMsg{Screen: q} }
			}
		}
	}
	return s, nil
}

func (s *SelectorScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var b strings.Builder

	b.WriteString(theme.Title.Width(cw).Render("Select a Quiz"))
	b.WriteString("\n\n")

	if s.notice != "" {
		b.WriteString(components.Banner(s.notice, s.noticeErr, cw))
		b.WriteString("\n")
	}

	switch {
	case !s.loaded:
		b.WriteString(theme.Hint.Width(cw).Align(lipgloss.Center).Render("Loading decks..."))
	case s.errMsg != "":
		b.WriteString(components.Banner("Error: "+s.errMsg, true, cw))
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Press R to try again."))
	case len(s.decks) == 0:
		b.WriteString(theme.Hint.Width(cw).Align(lipgloss.Center).Render("No decks available. Create one from the dashboard."))
	default:
		b.WriteString(s.renderList(cw, height))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

// renderList shows a window of decks around the cursor that fits height.
func (s *SelectorScreen) renderList(cw, height int) string {
	visible := (height - 6) / 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if s.selected >= visible {
		start = s.selected - visible + 1
	}
	end := min(start+visible, len(s.decks))

	var b strings.Builder
	for i := start; i < end; i++ {
		d := s.decks[i]
		prefix := "  "
		nameStyle := theme.Unselected
		if i == s.selected {
			prefix = "▸ "
			nameStyle = theme.Selected
		}
		b.WriteString(nameStyle.Render(prefix + d.Name))
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("    " + deckDetails(d)))
		b.WriteString("\n")
	}
	if len(s.decks) > visible {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("  %d of %d", s.selected+1, len(s.decks))))
	}
	return lipgloss.NewStyle().Width(cw).Render(b.String())
}

func deckDetails(d models.Deck) string {
	parts := []string{fmt.Sprintf("%d cards", len(d.Cards))}
	if d.Difficulty != "" {
		parts = append(parts, d.Difficulty)
	}
	if d.Description != "" {
		parts = append(parts, d.Description)
	}
	return strings.Join(parts, " · ")
}
