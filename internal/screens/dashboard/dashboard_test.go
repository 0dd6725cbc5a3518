package dashboard

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/flashiz/internal/models"
	"github.com/abhisek/flashiz/internal/router"
	"github.com/abhisek/flashiz/internal/screen"
	"github.com/abhisek/flashiz/internal/screen/screentest"
	"github.com/abhisek/flashiz/internal/screens/selector"
)

func TestDashboard_GreetsUser(t *testing.T) {
	env := screentest.NewEnv()
	env.SignIn()

	d := New(env.Services)
	assert.Contains(t, d.View(120, 40), "Welcome back, Ada!")
}

func TestDashboard_LoadsLocalProgress(t *testing.T) {
	env := screentest.NewEnv()
	env.SignIn()
	env.History.Attempts = []models.Attempt{
		{ID: "a1", DeckName: "Capitals", TotalCards: 4, Correct: 3, Accuracy: 75, Date: time.Now()},
		{ID: "a2", DeckName: "Go", TotalCards: 4, Correct: 4, Accuracy: 100, Date: time.Now()},
	}

	d := New(env.Services)
	d.Update(screentest.Exec(d.Init()))

	require.NotNil(t, d.progress)
	assert.Len(t, d.progress.Series, 2)
	assert.Equal(t, 88, d.progress.OverallAccuracy)
	assert.Contains(t, d.View(120, 40), "2 QUIZZES")
}

func TestDashboard_StartQuizPushesSelector(t *testing.T) {
	env := screentest.NewEnv()
	d := New(env.Services)

	_, cmd := d.Update(screentest.SpecialKey(tea.KeyEnter))
	msg := screentest.Exec(cmd)

	push, ok := msg.(router.PushScreenMsg)
	require.True(t, ok, "expected PushScreenMsg, got %T", msg)
	assert.IsType(t, &selector.SelectorScreen{}, push.Screen)
}

func TestDashboard_SignOut(t *testing.T) {
	env := screentest.NewEnv()
	env.SignIn()
	d := New(env.Services)

	for range 4 {
		d.Update(screentest.SpecialKey(tea.KeyDown))
	}
	assert.Equal(t, "SIGN OUT", d.menuLabels[d.menu.Selected])

	_, cmd := d.Update(screentest.SpecialKey(tea.KeyEnter))
	msg := screentest.Exec(cmd)

	assert.Equal(t, screen.SignedOutMsg{}, msg)
	assert.False(t, env.Services.Auth.SignedIn(t.Context()))
}

func TestDashboard_Notice(t *testing.T) {
	env := screentest.NewEnv()
	d := New(env.Services)

	d.Update(screen.NoticeMsg{Text: "Deck saved"})
	assert.Contains(t, d.View(120, 40), "Deck saved")

	d.Update(screentest.SpecialKey(tea.KeyDown))
	assert.Empty(t, d.notice)
}
