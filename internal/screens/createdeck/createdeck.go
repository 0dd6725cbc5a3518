// Package createdeck is the form for authoring cards into a new deck or an
// existing one.
package createdeck

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/flashiz/internal/api"
	"github.com/abhisek/flashiz/internal/assist"
	"github.com/abhisek/flashiz/internal/deck"
	"github.com/abhisek/flashiz/internal/models"
	"github.com/abhisek/flashiz/internal/screen"
	"github.com/abhisek/flashiz/internal/ui/components"
	"github.com/abhisek/flashiz/internal/ui/layout"
)

// Focus positions. The target selector has no text input.
const (
	posName = iota
	posTarget
	posFront
	posBack
	posWrong
)

const fieldCount = posWrong + deck.MaxWrongAnswers

// noticeTTL is how long a notification stays on screen.
const noticeTTL = 3 * time.Second

const (
	loadDecksFailedText = "Error loading decks"
	cardRemovedText     = "Card removed"
	needFrontBackText   = "Fill in the front and back before asking for suggestions"
	slotsFullText       = "All wrong answer slots are already filled"
	suggestFailedText   = "Could not get suggestions. Please try again."
)

type decksLoadedMsg struct {
	decks []models.Deck
	err   error
}

type savedMsg struct {
	text string
	err  error
}

type suggestedMsg struct {
	items []string
	err   error
}

type clearNoticeMsg struct {
	gen int
}

// CreateDeckScreen collects cards in a draft and saves them.
type CreateDeckScreen struct {
	svc *screen.Services

	name   components.TextInput
	card   []components.TextInput // front, back, wrong answers
	focus  int
	decks  []models.Deck
	target int

	draft   deck.Draft
	preview bool
	busy    bool

	notice    string
	noticeErr bool
	noticeGen int
}

var _ screen.Screen = (*CreateDeckScreen)(nil)
var _ screen.KeyHintProvider = (*CreateDeckScreen)(nil)
var _ screen.EscapeHandler = (*CreateDeckScreen)(nil)

// New creates the form with the deck name focused.
func New(svc *screen.Services) *CreateDeckScreen {
	s := &CreateDeckScreen{
		svc:  svc,
		name: components.NewTextInput("Create New Deck", "Enter new deck name", false, 80),
		card: []components.TextInput{
			components.NewTextInput("Front Side", "Question or term", false, 200),
			components.NewTextInput("Back Side", "Answer or definition", false, 200),
		},
	}
	for i := 1; i <= deck.MaxWrongAnswers; i++ {
		s.card = append(s.card, components.NewTextInput(
			fmt.Sprintf("Wrong Answer %d", i), fmt.Sprintf("Wrong answer %d", i), false, 200))
	}
	return s
}

func (s *CreateDeckScreen) Init() tea.Cmd {
	return tea.Batch(s.name.Focus(), s.loadDecks())
}

func (s *CreateDeckScreen) loadDecks() tea.Cmd {
	src := s.svc.Decks
	return func() tea.Msg {
		decks, err := src.ListDecks(context.Background())
		return decksLoadedMsg{decks: decks, err: err}
	}
}

func (s *CreateDeckScreen) Title() string {
	return "Create Deck"
}

// HandlesEscape keeps esc inside the screen while the preview is open.
func (s *CreateDeckScreen) HandlesEscape() bool {
	return s.preview
}

func (s *CreateDeckScreen) KeyHints() []layout.KeyHint {
	if s.preview {
		return []layout.KeyHint{
			{Key: "←→", Description: "Browse"},
			{Key: "X", Description: "Remove card"},
			{Key: "Esc", Description: "Close preview"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Ctrl+A", Description: "Add card"},
		{Key: "Ctrl+S", Description: "Save"},
		{Key: "Ctrl+P", Description: "Preview"},
	}
	if s.svc.Assist.Enabled() {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+G", Description: "Suggest wrong answers"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

// input returns the text input at a focus position, or nil for the target
// selector.
func (s *CreateDeckScreen) input(pos int) *components.TextInput {
	switch {
	case pos == posName:
		return &s.name
	case pos >= posFront:
		return &s.card[pos-posFront]
	}
	return nil
}

func (s *CreateDeckScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case decksLoadedMsg:
		if msg.err != nil {
			if cmd := s.svc.Expired(msg.err); cmd != nil {
				return s, cmd
			}
			s.svc.Log().Warn("load decks failed", zap.Error(msg.err))
			return s, s.notify(loadDecksFailedText, true)
		}
		s.decks = msg.decks
		if s.target >= len(s.decks) {
			s.target = 0
		}
		return s, nil

	case savedMsg:
		s.busy = false
		if msg.err != nil {
			if cmd := s.svc.Expired(msg.err); cmd != nil {
				return s, cmd
			}
			s.svc.Log().Warn("save deck failed", zap.Error(msg.err))
			return s, s.notify(deck.SaveErrorMessage(api.Message(msg.err)), true)
		}
		s.draft = deck.Draft{}
		s.preview = false
		s.name.Reset()
		return s, tea.Batch(s.notify(msg.text, false), s.loadDecks())

	case suggestedMsg:
		s.busy = false
		if msg.err != nil {
			s.svc.Log().Warn("suggest distractors failed", zap.Error(msg.err))
			return s, s.notify(suggestFailedText, true)
		}
		filled := 0
		for i := posWrong; i < fieldCount && filled < len(msg.items); i++ {
			in := s.input(i)
			if strings.TrimSpace(in.Value()) == "" {
				in.SetValue(msg.items[filled])
				filled++
			}
		}
		return s, s.notify(fmt.Sprintf("Suggested %d wrong answer(s)", filled), false)

	case clearNoticeMsg:
		if msg.gen == s.noticeGen {
			s.notice = ""
		}
		return s, nil

	case screen.NoticeMsg:
		return s, s.notify(msg.Text, msg.IsErr)

	case tea.KeyMsg:
		if s.busy {
			return s, nil
		}
		if s.preview {
			return s.handlePreviewKey(msg)
		}
		return s.handleKey(msg)
	}

	if in := s.input(s.focus); in != nil {
		var cmd tea.Cmd
		*in, cmd = in.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *CreateDeckScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return s, s.moveFocus((s.focus + 1) % fieldCount)
	case "shift+tab", "up":
		return s, s.moveFocus((s.focus - 1 + fieldCount) % fieldCount)
	case "ctrl+a":
		return s, s.addCard()
	case "ctrl+s":
		return s, s.save()
	case "ctrl+p":
		return s, s.togglePreview()
	case "ctrl+g":
		return s, s.suggest()
	case "enter":
		if s.focus == fieldCount-1 {
			return s, s.addCard()
		}
		return s, s.moveFocus(s.focus + 1)
	}

	if s.focus == posTarget {
		if n := len(s.decks); n > 0 {
			switch msg.String() {
			case "left", "h":
				s.target = (s.target - 1 + n) % n
			case "right", "l", "space":
				s.target = (s.target + 1) % n
			}
		}
		return s, nil
	}

	in := s.input(s.focus)
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return s, cmd
}

func (s *CreateDeckScreen) handlePreviewKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		s.draft.PrevPreview()
	case "right", "l":
		s.draft.NextPreview()
	case "x", "delete":
		_, i, err := s.draft.Preview()
		if err != nil {
			s.preview = false
			return s, nil
		}
		s.draft.RemoveCard(i)
		if s.draft.Len() == 0 {
			s.preview = false
		}
		return s, s.notify(cardRemovedText, false)
	case "esc", "ctrl+p":
		s.preview = false
	}
	return s, nil
}

func (s *CreateDeckScreen) moveFocus(pos int) tea.Cmd {
	if in := s.input(s.focus); in != nil {
		in.Blur()
	}
	s.focus = pos
	if in := s.input(s.focus); in != nil {
		return in.Focus()
	}
	return nil
}

func (s *CreateDeckScreen) wrongValues() []string {
	out := make([]string, 0, deck.MaxWrongAnswers)
	for i := posWrong; i < fieldCount; i++ {
		out = append(out, s.input(i).Value())
	}
	return out
}

func (s *CreateDeckScreen) addCard() tea.Cmd {
	front := s.input(posFront).Value()
	back := s.input(posBack).Value()
	if err := s.draft.AddCard(front, back, s.wrongValues()); err != nil {
		return s.notify(err.Error(), true)
	}
	for i := posFront; i < fieldCount; i++ {
		s.input(i).Reset()
	}
	return s.moveFocus(posFront)
}

func (s *CreateDeckScreen) togglePreview() tea.Cmd {
	if s.draft.Len() == 0 {
		return s.notify(deck.ErrNothingPreview.Error(), true)
	}
	s.preview = !s.preview
	s.draft.Rewind()
	return nil
}

// targetDeck is the existing deck cards go to when no new name is entered.
func (s *CreateDeckScreen) targetDeck() (models.Deck, bool) {
	if s.target < 0 || s.target >= len(s.decks) {
		return models.Deck{}, false
	}
	return s.decks[s.target], true
}

func (s *CreateDeckScreen) save() tea.Cmd {
	if s.draft.Len() == 0 {
		return s.notify(deck.ErrNoCards.Error(), true)
	}
	s.draft.Name = strings.TrimSpace(s.name.Value())
	s.draft.TargetID = ""
	if d, ok := s.targetDeck(); ok {
		s.draft.TargetID = d.ID
	}
	if s.draft.Name == "" && s.draft.TargetID == "" {
		return s.notify(deck.ErrNoTarget.Error(), true)
	}

	s.busy = true
	d := s.draft.Clone()
	w := s.svc.Writer
	return func() tea.Msg {
		text, err := d.Save(context.Background(), w)
		return savedMsg{text: text, err: err}
	}
}

func (s *CreateDeckScreen) suggest() tea.Cmd {
	if !s.svc.Assist.Enabled() {
		return s.notify(assist.ErrUnavailable.Error(), true)
	}
	front := strings.TrimSpace(s.input(posFront).Value())
	back := strings.TrimSpace(s.input(posBack).Value())
	if front == "" || back == "" {
		return s.notify(needFrontBackText, true)
	}

	var existing []string
	for _, w := range s.wrongValues() {
		if w = strings.TrimSpace(w); w != "" {
			existing = append(existing, w)
		}
	}
	n := deck.MaxWrongAnswers - len(existing)
	if n == 0 {
		return s.notify(slotsFullText, true)
	}

	s.busy = true
	a := s.svc.Assist
	return func() tea.Msg {
		items, err := a.SuggestDistractors(context.Background(), front, back, existing, n)
		if err == nil && len(items) == 0 {
			err = errors.New("no usable suggestions")
		}
		return suggestedMsg{items: items, err: err}
	}
}

// notify shows text and schedules it to disappear.
func (s *CreateDeckScreen) notify(text string, isErr bool) tea.Cmd {
	s.notice = text
	s.noticeErr = isErr
	s.noticeGen++
	gen := s.noticeGen
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return clearNoticeMsg{gen: gen}
	})
}
