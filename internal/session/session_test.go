package session

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/flashiz/internal/models"
)

func testRNG() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func testDeck(n int) *models.Deck {
	d := &models.Deck{ID: "d1", Name: "Capitals", Difficulty: "easy"}
	answers := []string{"Paris", "Rome", "Berlin", "Madrid", "Lisbon", "Vienna"}
	questions := []string{"France", "Italy", "Germany", "Spain", "Portugal", "Austria"}
	for i := 0; i < n; i++ {
		d.Cards = append(d.Cards, models.Card{Front: questions[i], Back: answers[i]})
	}
	return d
}

func startedState(t *testing.T, deck *models.Deck) *State {
	t.Helper()
	s := NewState(deck, testRNG())
	require.NoError(t, Start(s))
	return s
}

func TestStart(t *testing.T) {
	s := NewState(testDeck(3), testRNG())
	assert.Equal(t, PhaseNotStarted, s.Phase)
	assert.Nil(t, s.CurrentCard())

	require.NoError(t, Start(s))
	assert.Equal(t, PhaseInProgress, s.Phase)
	assert.Len(t, s.Options, OptionCount)
	assert.Equal(t, "France", s.CurrentCard().Front)
}

func TestStart_EmptyDeck(t *testing.T) {
	s := NewState(&models.Deck{Name: "Empty"}, testRNG())
	assert.ErrorIs(t, Start(s), ErrEmptyDeck)
	assert.Equal(t, PhaseNotStarted, s.Phase)
}

func TestStreakSequence(t *testing.T) {
	s := startedState(t, testDeck(4))

	answers := []bool{true, true, false, true}
	var streaks []int
	for _, correct := range answers {
		pick := s.CurrentCard().Back
		if !correct {
			pick = "definitely wrong"
		}
		got, err := HandleAnswer(s, pick)
		require.NoError(t, err)
		assert.Equal(t, correct, got)
		streaks = append(streaks, s.Streak)
		Advance(s)
	}

	assert.Equal(t, []int{1, 2, 0, 1}, streaks)
	assert.Equal(t, 2, s.BestStreak)
	assert.Equal(t, 3, s.Correct)
	assert.Equal(t, 1, s.Wrong)
}

func TestHandleAnswer_ExactMatch(t *testing.T) {
	s := startedState(t, testDeck(2))

	got, err := HandleAnswer(s, "paris")
	require.NoError(t, err)
	assert.False(t, got, "comparison is case sensitive")
	assert.Equal(t, "paris", s.Selected)
	assert.True(t, s.Revealing)
}

func TestHandleAnswer_OncePerCard(t *testing.T) {
	s := startedState(t, testDeck(2))

	_, err := HandleAnswer(s, "Paris")
	require.NoError(t, err)
	_, err = HandleAnswer(s, "Paris")
	assert.ErrorIs(t, err, ErrAlreadyAnswered)
	assert.Equal(t, 1, s.Correct)
}

func TestHandleAnswer_NotInProgress(t *testing.T) {
	s := NewState(testDeck(2), testRNG())
	_, err := HandleAnswer(s, "Paris")
	assert.ErrorIs(t, err, ErrNotInProgress)
}

func TestAdvanceClearsPerQuestionState(t *testing.T) {
	s := startedState(t, testDeck(3))

	assert.True(t, UseHint(s))
	_, err := HandleAnswer(s, "Paris")
	require.NoError(t, err)

	completed := Advance(s)
	assert.False(t, completed)
	assert.Equal(t, 1, s.Index)
	assert.Empty(t, s.Selected)
	assert.False(t, s.HintShown)
	assert.False(t, s.Revealing)
	assert.Contains(t, s.Options, "Rome")
}

func TestAdvanceRequiresAnswer(t *testing.T) {
	s := startedState(t, testDeck(3))
	assert.False(t, Advance(s))
	assert.Equal(t, 0, s.Index)
}

func TestCompletionBuildsResultOnce(t *testing.T) {
	deck := testDeck(5)
	s := NewState(deck, testRNG())
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	s.SetClock(func() time.Time { return fixed })
	require.NoError(t, Start(s))

	completions := 0
	for i := range deck.Cards {
		pick := "nope"
		if i < 3 {
			pick = deck.Cards[i].Back
		}
		_, err := HandleAnswer(s, pick)
		require.NoError(t, err)
		Tick(s)
		if Advance(s) {
			completions++
		}
	}
	assert.False(t, Advance(s))

	assert.Equal(t, 1, completions)
	assert.Equal(t, PhaseCompleted, s.Phase)
	require.NotNil(t, s.Result)
	assert.Equal(t, Result{
		DeckID:     "d1",
		DeckName:   "Capitals",
		TotalCards: 5,
		Correct:    3,
		Accuracy:   60,
		TimeTaken:  5,
		BestStreak: 3,
		HintsUsed:  0,
		Date:       fixed,
	}, *s.Result)
}

func TestTickOnlyWhileInProgress(t *testing.T) {
	s := NewState(testDeck(1), testRNG())
	Tick(s)
	assert.Zero(t, s.Elapsed)

	require.NoError(t, Start(s))
	Tick(s)
	Tick(s)
	assert.Equal(t, 2, s.Elapsed)

	_, err := HandleAnswer(s, "Paris")
	require.NoError(t, err)
	Tick(s) // reveal still counts
	require.True(t, Advance(s))

	Tick(s)
	assert.Equal(t, 3, s.Elapsed)
	assert.Equal(t, 3, s.Result.TimeTaken)
}

func TestUseHintCountsOncePerQuestion(t *testing.T) {
	s := startedState(t, testDeck(2))

	assert.True(t, UseHint(s))
	assert.False(t, UseHint(s))
	assert.Equal(t, 1, s.HintsUsed)

	_, _ = HandleAnswer(s, "Paris")
	Advance(s)
	assert.True(t, UseHint(s))
	assert.Equal(t, 2, s.HintsUsed)
}

func TestReset(t *testing.T) {
	s := startedState(t, testDeck(1))
	UseHint(s)
	Tick(s)
	_, _ = HandleAnswer(s, "Paris")
	require.True(t, Advance(s))

	Reset(s)
	assert.Equal(t, PhaseNotStarted, s.Phase)
	assert.Zero(t, s.Index)
	assert.Zero(t, s.Correct)
	assert.Zero(t, s.Wrong)
	assert.Zero(t, s.Streak)
	assert.Zero(t, s.BestStreak)
	assert.Zero(t, s.HintsUsed)
	assert.Zero(t, s.Elapsed)
	assert.Nil(t, s.Result)
	assert.Nil(t, s.Options)

	require.NoError(t, Start(s))
	assert.Equal(t, PhaseInProgress, s.Phase)
}

func TestProgress(t *testing.T) {
	s := startedState(t, testDeck(4))
	assert.Equal(t, 0.0, s.Progress())
	_, _ = HandleAnswer(s, "Paris")
	assert.Equal(t, 0.25, s.Progress())
	Advance(s)
	assert.Equal(t, 0.25, s.Progress())
}

func TestAccuracy(t *testing.T) {
	tests := []struct {
		correct, total, want int
	}{
		{3, 5, 60},
		{0, 0, 0},
		{0, 4, 0},
		{4, 4, 100},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13}, // 12.5 rounds up
		{12, 15, 80},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Accuracy(tt.correct, tt.total), "%d/%d", tt.correct, tt.total)
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "00:59", FormatClock(59))
	assert.Equal(t, "01:05", FormatClock(65))
	assert.Equal(t, "120:00", FormatClock(7200))
	assert.Equal(t, "00:00", FormatClock(-3))
}
