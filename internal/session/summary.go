package session

import (
	"fmt"
	"math"
	"time"

	"github.com/abhisek/flashiz/internal/models"
)

// Result summarizes a completed quiz.
type Result struct {
	DeckID     string
	DeckName   string
	TotalCards int
	Correct    int
	Accuracy   int
	TimeTaken  int // seconds
	BestStreak int
	HintsUsed  int
	Date       time.Time
}

// BuildResult creates a Result from the current quiz state.
func BuildResult(state *State) Result {
	var id, name string
	if state.Deck != nil {
		id, name = state.Deck.ID, state.Deck.Name
	}
	now := time.Now
	if state.now != nil {
		now = state.now
	}
	total := state.TotalCards()
	return Result{
		DeckID:     id,
		DeckName:   name,
		TotalCards: total,
		Correct:    state.Correct,
		Accuracy:   Accuracy(state.Correct, total),
		TimeTaken:  state.Elapsed,
		BestStreak: state.BestStreak,
		HintsUsed:  state.HintsUsed,
		Date:       now().UTC(),
	}
}

// Attempt converts the result into the local history record.
func (r Result) Attempt(id string) models.Attempt {
	return models.Attempt{
		ID:         id,
		DeckID:     r.DeckID,
		DeckName:   r.DeckName,
		TotalCards: r.TotalCards,
		Correct:    r.Correct,
		Accuracy:   r.Accuracy,
		TimeTaken:  r.TimeTaken,
		BestStreak: r.BestStreak,
		HintsUsed:  r.HintsUsed,
		Date:       r.Date,
	}
}

// StatsRequest converts the result into the remote stats body.
func (r Result) StatsRequest() models.RecordStatsRequest {
	return models.RecordStatsRequest{
		Deck:       r.DeckName,
		TotalCards: r.TotalCards,
		Correct:    r.Correct,
	}
}

// Accuracy returns correct/total as a whole percentage, rounded half up.
// Zero total yields zero.
func Accuracy(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Floor(float64(correct)*100/float64(total) + 0.5))
}

// FormatClock renders seconds as mm:ss. Minutes grow past two digits
// rather than wrapping.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
