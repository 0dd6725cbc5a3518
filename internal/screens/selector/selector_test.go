package selector

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/flashiz/internal/api"
	"github.com/abhisek/flashiz/internal/models"
	"github.com/abhisek/flashiz/internal/router"
	"github.com/abhisek/flashiz/internal/screen"
	"github.com/abhisek/flashiz/internal/screen/screentest"
	"github.com/abhisek/flashiz/internal/screens/quiz"
)

func sampleDecks() []models.Deck {
	return []models.Deck{
		{ID: "d1", Name: "Capitals", Difficulty: "easy", Cards: []models.Card{{Front: "France", Back: "Paris"}}},
		{ID: "d2", Name: "Go", Cards: []models.Card{{Front: "Zero value of int", Back: "0"}}},
	}
}

func loaded(t *testing.T, env *screentest.Env) *SelectorScreen {
	t.Helper()
	s := New(env.Services)
	s.Update(screentest.Exec(s.Init()))
	return s
}

func TestSelector_ListsDecks(t *testing.T) {
	env := screentest.NewEnv()
	env.API.Decks = sampleDecks()

	s := loaded(t, env)

	require.Len(t, s.decks, 2)
	view := s.View(100, 30)
	assert.Contains(t, view, "Capitals")
	assert.Contains(t, view, "1 cards · easy")
}

func TestSelector_Empty(t *testing.T) {
	env := screentest.NewEnv()
	s := loaded(t, env)
	assert.Contains(t, s.View(100, 30), "No decks available")
}

func TestSelector_EnterStartsQuiz(t *testing.T) {
	env := screentest.NewEnv()
	env.API.Decks = sampleDecks()
	s := loaded(t, env)

	s.Update(screentest.SpecialKey(tea.KeyDown))
	_, cmd := s.Update(screentest.SpecialKey(tea.KeyEnter))

	push, ok := screentest.Exec(cmd).(router.PushScreenMsg)
	require.True(t, ok)
	q, ok := push.Screen.(*quiz.QuizScreen)
	require.True(t, ok)
	assert.Equal(t, "d2", q.DeckID())
}

func TestSelector_FetchError(t *testing.T) {
	env := screentest.NewEnv()
	env.API.ListErr = &api.Error{Status: 500, Message: "Failed to fetch decks"}

	s := loaded(t, env)

	assert.Equal(t, "Failed to fetch decks", s.errMsg)
	assert.Contains(t, s.View(100, 30), "Failed to fetch decks")
}

func TestSelector_UnauthorizedSignsOut(t *testing.T) {
	env := screentest.NewEnv()
	env.SignIn()
	env.API.ListErr = screentest.Unauthorized()

	s := New(env.Services)
	_, cmd := s.Update(screentest.Exec(s.Init()))

	msg := screentest.Exec(cmd)
	assert.Equal(t, screen.SignedOutMsg{Notice: screen.SessionExpiredNotice}, msg)
	assert.False(t, env.Services.Auth.SignedIn(t.Context()))
}

func TestSelector_NoticeFromQuiz(t *testing.T) {
	env := screentest.NewEnv()
	s := loaded(t, env)

	s.Update(screen.NoticeMsg{Text: "Deck not found", IsErr: true})
	assert.Contains(t, s.View(100, 30), "Deck not found")
}
