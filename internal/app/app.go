package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/flashiz/internal/router"
	"github.com/abhisek/flashiz/internal/screen"
	"github.com/abhisek/flashiz/internal/screens/dashboard"
	"github.com/abhisek/flashiz/internal/screens/landing"
	"github.com/abhisek/flashiz/internal/screens/quiz"
	"github.com/abhisek/flashiz/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	Services *screen.Services

	// DeckID, when set, opens straight into a quiz on that deck. Leaving
	// the quiz exits the program.
	DeckID string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	svc    *screen.Services
	router *router.Router
	width  int
	height int
}

// newAppModel picks the first screen: a standalone quiz, the dashboard when
// a session is stored, or the sign-in form.
func newAppModel(opts Options) AppModel {
	svc := opts.Services
	var initial screen.Screen
	switch {
	case opts.DeckID != "":
		initial = quiz.New(svc, opts.DeckID, quiz.Standalone())
	case svc.Auth.SignedIn(context.Background()):
		initial = dashboard.New(svc)
	default:
		initial = landing.New(svc, "")
	}
	return AppModel{
		svc:    svc,
		router: router.New(initial),
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.SignedInMsg:
		m.svc.Log().Info("signed in", zap.String("user", msg.User.Email))
		return m, m.router.Reset(dashboard.New(m.svc))

	case screen.SignedOutMsg:
		return m, m.router.Reset(landing.New(m.svc, msg.Notice))

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	v.SetContent(m.render())
	return v
}

// render draws header, active screen and footer.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.svc.UserName(context.Background()), m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)
	return layout.RenderFrame(header, footer, m.width, m.height, m.router.View)
}

func (m AppModel) footerHints() []layout.KeyHint {
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
