// Package quiz is the screen that runs a multiple-choice quiz over a deck.
package quiz

import (
	"context"
	"math/rand/v2"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/flashiz/internal/api"
	"github.com/abhisek/flashiz/internal/assist"
	"github.com/abhisek/flashiz/internal/router"
	"github.com/abhisek/flashiz/internal/screen"
	"github.com/abhisek/flashiz/internal/screens/statistics"
	sess "github.com/abhisek/flashiz/internal/session"
	"github.com/abhisek/flashiz/internal/ui/components"
	"github.com/abhisek/flashiz/internal/ui/layout"
)

const (
	emptyDeckMessage = "This deck has no cards yet."
	localSaveMessage = "Failed to save your results locally"
)

// QuizScreen implements screen.Screen for a running quiz.
type QuizScreen struct {
	svc        *screen.Services
	deckID     string
	standalone bool
	rng        *rand.Rand

	state  *sess.State
	choice components.MultiChoice

	errMsg   string
	startErr string

	// answerGen invalidates pending advance timers, tickGen pending clock
	// ticks and saveGen save outcomes of an earlier run.
	answerGen int
	tickGen   int
	saveGen   int

	hint        *assist.Hint
	hintLoading bool

	saving  bool
	saveErr string

	showingQuitConfirm bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.EscapeHandler = (*QuizScreen)(nil)

// Option configures a QuizScreen.
type Option func(*QuizScreen)

// Standalone makes leaving the quiz quit the program. Used when the quiz
// is the first screen.
func Standalone() Option {
	return func(q *QuizScreen) { q.standalone = true }
}

// WithRand fixes the option shuffle source.
func WithRand(rng *rand.Rand) Option {
	return func(q *QuizScreen) { q.rng = rng }
}

// New creates a quiz over the deck with the given id. The deck is fetched
// in Init.
func New(svc *screen.Services, deckID string, opts ...Option) *QuizScreen {
	q := &QuizScreen{svc: svc, deckID: deckID}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// DeckID returns the id of the deck being quizzed.
func (q *QuizScreen) DeckID() string {
	return q.deckID
}

func (q *QuizScreen) Init() tea.Cmd {
	src, id := q.svc.Decks, q.deckID
	return func() tea.Msg {
		deck, err := src.GetDeck(context.Background(), id)
		return deckLoadedMsg{deck: deck, err: err}
	}
}

func (q *QuizScreen) Title() string {
	if q.state != nil && q.state.Deck != nil {
		return q.state.Deck.Name
	}
	return "Quiz"
}

// HandlesEscape keeps esc inside the quiz so a running attempt asks before
// it is thrown away.
func (q *QuizScreen) HandlesEscape() bool {
	return true
}

func (q *QuizScreen) KeyHints() []layout.KeyHint {
	if q.errMsg != "" {
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	}
	if q.state == nil {
		return nil
	}
	if q.showingQuitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave quiz"},
			{Key: "N", Description: "Keep going"},
		}
	}
	switch q.state.Phase {
	case sess.PhaseNotStarted:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start Quiz"},
			{Key: "Esc", Description: "Back"},
		}
	case sess.PhaseInProgress:
		if q.state.Revealing {
			return []layout.KeyHint{{Key: "Esc", Description: "Quit"}}
		}
		return []layout.KeyHint{
			{Key: "1-4", Description: "Answer"},
			{Key: "↑↓", Description: "Move"},
			{Key: "H", Description: "Hint"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "S", Description: "View Stats"},
		{Key: "R", Description: "Try Again"},
		{Key: "Enter", Description: "Done"},
	}
	if q.saveErr != "" {
		hints = append(hints, layout.KeyHint{Key: "X", Description: "Dismiss"})
	}
	return hints
}

func (q *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case deckLoadedMsg:
		return q.handleDeckLoaded(msg)

	case timerTickMsg:
		if q.state == nil || msg.gen != q.tickGen || q.state.Phase != sess.PhaseInProgress {
			return q, nil
		}
		sess.Tick(q.state)
		return q, tickCmd(q.tickGen)

	case advanceMsg:
		if msg.gen != q.answerGen {
			return q, nil
		}
		return q.advance()

	case hintMsg:
		if q.state != nil && q.state.Phase == sess.PhaseInProgress && q.state.Index == msg.index {
			h := msg.hint
			q.hint = &h
			q.hintLoading = false
		}
		return q, nil

	case recordStartedMsg:
		if msg.gen != q.saveGen {
			return q, nil
		}
		if msg.err != nil {
			q.saving = false
			q.saveErr = localSaveMessage
			q.svc.Log().Error("record attempt", zap.Error(msg.err))
			return q, nil
		}
		return q, waitSave(msg.done, msg.gen)

	case saveResultMsg:
		if msg.gen != q.saveGen {
			return q, nil
		}
		q.saving = false
		if msg.err != nil {
			q.saveErr = sess.SaveErrorMessage
			return q, q.svc.Expired(msg.err)
		}
		return q, nil

	case tea.KeyMsg:
		return q.handleKey(msg)
	}
	return q, nil
}

func (q *QuizScreen) handleDeckLoaded(msg deckLoadedMsg) (screen.Screen, tea.Cmd) {
	if msg.err != nil {
		q.svc.Log().Warn("fetch deck", zap.String("deck", q.deckID), zap.Error(msg.err))
		if cmd := q.svc.Expired(msg.err); cmd != nil {
			return q, cmd
		}
		text := api.Message(msg.err)
		if q.standalone {
			q.errMsg = text
			return q, nil
		}
		return q, tea.Sequence(
			func() tea.Msg { return router.PopScreenMsg{} },
			screen.Notify(text, true),
		)
	}
	q.state = sess.NewState(msg.deck, q.rng)
	return q, nil
}

func (q *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if q.errMsg != "" {
		return q, q.leave()
	}
	if q.state == nil {
		if key == "esc" {
			return q, q.leave()
		}
		return q, nil
	}

	if q.showingQuitConfirm {
		switch key {
		case "y", "Y":
			q.showingQuitConfirm = false
			return q, q.leave()
		case "n", "N", "esc":
			q.showingQuitConfirm = false
		}
		return q, nil
	}

	switch q.state.Phase {
	case sess.PhaseNotStarted:
		switch key {
		case "enter", "space":
			return q.start()
		case "esc":
			return q, q.leave()
		}

	case sess.PhaseInProgress:
		if key == "esc" {
			q.showingQuitConfirm = true
			return q, nil
		}
		if q.state.Revealing {
			return q, nil
		}
		if key == "h" || key == "H" {
			return q, q.requestHint()
		}
		q.choice, _ = q.choice.Update(msg)
		if q.choice.Picked() {
			return q.answer()
		}

	case sess.PhaseCompleted:
		switch key {
		case "x", "X":
			q.saveErr = ""
		case "r", "R":
			q.restart()
		case "s", "S":
			st := statistics.New(q.svc)
			return q, func() tea.Msg { return router.ReplaceScreenMsg{Screen: st} }
		case "enter", "esc":
			return q, q.leave()
		}
	}
	return q, nil
}

func (q *QuizScreen) leave() tea.Cmd {
	if q.standalone {
		return tea.Quit
	}
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (q *QuizScreen) start() (screen.Screen, tea.Cmd) {
	if err := sess.Start(q.state); err != nil {
		q.startErr = emptyDeckMessage
		return q, nil
	}
	q.startErr = ""
	q.choice = components.NewMultiChoice(q.state.Options)
	q.tickGen++
	return q, tickCmd(q.tickGen)
}

func (q *QuizScreen) answer() (screen.Screen, tea.Cmd) {
	card := q.state.CurrentCard()
	if _, err := sess.HandleAnswer(q.state, q.choice.Value()); err != nil {
		return q, nil
	}
	q.choice.Reveal(card.Back)
	q.answerGen++
	return q, advanceCmd(q.svc.FeedbackDelay(), q.answerGen)
}

// advance moves to the next card, or records the result after the last.
func (q *QuizScreen) advance() (screen.Screen, tea.Cmd) {
	q.answerGen++
	q.hint = nil
	q.hintLoading = false

	if !sess.Advance(q.state) {
		if q.state.Phase == sess.PhaseInProgress {
			q.choice = components.NewMultiChoice(q.state.Options)
		}
		return q, nil
	}

	q.saveGen++
	q.saving = true
	q.saveErr = ""
	res := *q.state.Result
	rec := q.svc.Recorder
	gen := q.saveGen
	return q, func() tea.Msg {
		done, err := rec.Record(context.Background(), res)
		return recordStartedMsg{gen: gen, done: done, err: err}
	}
}

func (q *QuizScreen) requestHint() tea.Cmd {
	if !sess.UseHint(q.state) {
		return nil
	}
	q.hintLoading = true
	index := q.state.Index
	card := *q.state.CurrentCard()
	deckName := q.state.Deck.Name
	assistant := q.svc.Assist
	return func() tea.Msg {
		return hintMsg{index: index, hint: assistant.Hint(context.Background(), deckName, card)}
	}
}

// restart returns to the intro with every counter cleared.
func (q *QuizScreen) restart() {
	sess.Reset(q.state)
	q.answerGen++
	q.tickGen++
	q.saveGen++
	q.hint = nil
	q.hintLoading = false
	q.saveErr = ""
	q.saving = false
	q.startErr = ""
}
