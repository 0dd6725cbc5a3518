package session

import (
	"errors"
)

var (
	// ErrEmptyDeck is returned when starting a quiz over a deck with no cards.
	ErrEmptyDeck = errors.New("deck has no cards")

	// ErrNotInProgress is returned for answers outside PhaseInProgress.
	ErrNotInProgress = errors.New("quiz is not in progress")

	// ErrAlreadyAnswered is returned when the current card was already answered.
	ErrAlreadyAnswered = errors.New("question already answered")
)

// Start moves a fresh quiz into PhaseInProgress and prepares the first
// question. Starting an already running or completed quiz is a no-op.
func Start(state *State) error {
	if state.Phase != PhaseNotStarted {
		return nil
	}
	if state.TotalCards() == 0 {
		return ErrEmptyDeck
	}
	state.Phase = PhaseInProgress
	state.Index = 0
	state.Options = BuildOptions(state.Deck, 0, state.rng)
	return nil
}

// HandleAnswer checks selected against the current card's back using exact
// string comparison and updates counters and streaks. The quiz stays on the
// card, with Revealing set, until Advance is called.
func HandleAnswer(state *State, selected string) (bool, error) {
	card := state.CurrentCard()
	if card == nil {
		return false, ErrNotInProgress
	}
	if state.Revealing {
		return false, ErrAlreadyAnswered
	}

	correct := selected == card.Back
	state.Selected = selected
	state.LastCorrect = correct
	state.Revealing = true

	if correct {
		state.Correct++
		state.Streak++
		if state.Streak > state.BestStreak {
			state.BestStreak = state.Streak
		}
	} else {
		state.Wrong++
		state.Streak = 0
	}

	return correct, nil
}

// Advance moves past the answered card. It clears the selection and hint,
// builds options for the next card, and completes the quiz after the last
// card. Returns true when this call completed the quiz.
func Advance(state *State) bool {
	if state.Phase != PhaseInProgress || !state.Revealing {
		return false
	}

	state.Index++
	state.Selected = ""
	state.HintShown = false
	state.Revealing = false

	if state.Index >= state.TotalCards() {
		state.Phase = PhaseCompleted
		state.Options = nil
		res := BuildResult(state)
		state.Result = &res
		return true
	}

	state.Options = BuildOptions(state.Deck, state.Index, state.rng)
	return false
}

// Tick adds one second of elapsed time while the quiz is in progress.
func Tick(state *State) {
	if state.Phase == PhaseInProgress {
		state.Elapsed++
	}
}

// UseHint marks the hint of the current card as shown. It counts towards
// HintsUsed only the first time per card and returns whether it did.
func UseHint(state *State) bool {
	if state.CurrentCard() == nil || state.HintShown {
		return false
	}
	state.HintShown = true
	state.HintsUsed++
	return true
}

// Reset returns the quiz to PhaseNotStarted with every counter zeroed, so
// the same deck can be attempted again.
func Reset(state *State) {
	state.Phase = PhaseNotStarted
	state.Index = 0
	state.Correct = 0
	state.Wrong = 0
	state.Streak = 0
	state.BestStreak = 0
	state.HintsUsed = 0
	state.Elapsed = 0
	state.Options = nil
	state.Selected = ""
	state.Revealing = false
	state.LastCorrect = false
	state.HintShown = false
	state.Result = nil
}
