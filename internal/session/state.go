package session

import (
	"math/rand/v2"
	"time"

	"github.com/abhisek/flashiz/internal/models"
)

// Phase represents where a quiz is in its lifecycle.
type Phase int

const (
	PhaseNotStarted Phase = iota // Intro shown, timer idle
	PhaseInProgress              // Serving questions
	PhaseCompleted               // Every card answered, result built
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not-started"
	case PhaseInProgress:
		return "in-progress"
	case PhaseCompleted:
		return "completed"
	}
	return "unknown"
}

// State tracks one pass through a deck. It is owned by a single goroutine
// (the TUI event loop) and is not safe for concurrent use.
type State struct {
	// Deck is the deck being quizzed. Its cards are not modified.
	Deck *models.Deck

	Phase Phase

	// Index is the position of the current card. Equal to len(Deck.Cards)
	// once the quiz is completed.
	Index int

	Correct    int
	Wrong      int
	Streak     int
	BestStreak int
	HintsUsed  int

	// Elapsed counts whole seconds spent in PhaseInProgress.
	Elapsed int

	// Options are the four choices for the current card.
	Options []string

	// Selected is the chosen option for the current card, empty until
	// HandleAnswer is called.
	Selected string

	// Revealing is true between an answer and the following Advance.
	Revealing bool

	// LastCorrect reports whether the most recent answer was correct.
	LastCorrect bool

	// HintShown is true once the hint was revealed for the current card.
	HintShown bool

	// Result is built exactly once, on the transition to PhaseCompleted.
	Result *Result

	rng *rand.Rand
	now func() time.Time
}

// NewState creates a quiz over deck. A nil rng uses the global source.
func NewState(deck *models.Deck, rng *rand.Rand) *State {
	return &State{
		Deck: deck,
		rng:  rng,
		now:  time.Now,
	}
}

// SetClock overrides the time source used to date the result.
func (s *State) SetClock(now func() time.Time) {
	s.now = now
}

// TotalCards returns the number of cards in the deck.
func (s *State) TotalCards() int {
	if s.Deck == nil {
		return 0
	}
	return len(s.Deck.Cards)
}

// CurrentCard returns the card being asked, or nil outside PhaseInProgress.
func (s *State) CurrentCard() *models.Card {
	if s.Phase != PhaseInProgress || s.Index >= s.TotalCards() {
		return nil
	}
	return &s.Deck.Cards[s.Index]
}

// Progress returns the fraction of cards already answered.
func (s *State) Progress() float64 {
	total := s.TotalCards()
	if total == 0 {
		return 0
	}
	answered := s.Index
	if s.Revealing {
		answered++
	}
	return float64(answered) / float64(total)
}
