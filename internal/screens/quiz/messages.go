package quiz

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/flashiz/internal/assist"
	"github.com/abhisek/flashiz/internal/models"
)

// deckLoadedMsg carries the fetched deck.
type deckLoadedMsg struct {
	deck *models.Deck
	err  error
}

// timerTickMsg advances the quiz clock. Ticks from an earlier run carry a
// stale generation and are dropped.
type timerTickMsg struct {
	gen int
}

// advanceMsg fires after the answer has been shown for the feedback delay.
type advanceMsg struct {
	gen int
}

// hintMsg delivers the hint for the card at index.
type hintMsg struct {
	index int
	hint  assist.Hint
}

// recordStartedMsg reports the local write and hands over the channel the
// remote outcome arrives on.
type recordStartedMsg struct {
	gen  int
	done <-chan error
	err  error
}

// saveResultMsg is the outcome of the remote stats write.
type saveResultMsg struct {
	gen int
	err error
}

// tickCmd returns a 1-second tick command.
func tickCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return timerTickMsg{gen: gen}
	})
}

// advanceCmd fires advanceMsg after d.
func advanceCmd(d time.Duration, gen int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return advanceMsg{gen: gen}
	})
}

// waitSave blocks on the remote outcome.
func waitSave(done <-chan error, gen int) tea.Cmd {
	return func() tea.Msg {
		return saveResultMsg{gen: gen, err: <-done}
	}
}
