// Package dashboard is the signed-in home screen.
package dashboard

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/flashiz/internal/router"
	"github.com/abhisek/flashiz/internal/screen"
	"github.com/abhisek/flashiz/internal/screens/createdeck"
	"github.com/abhisek/flashiz/internal/screens/history"
	"github.com/abhisek/flashiz/internal/screens/selector"
	"github.com/abhisek/flashiz/internal/screens/statistics"
	"github.com/abhisek/flashiz/internal/stats"
	"github.com/abhisek/flashiz/internal/ui/components"
	"github.com/abhisek/flashiz/internal/ui/layout"
)

type progressLoadedMsg struct {
	report stats.Report
	err    error
}

// DashboardScreen is the main menu shown after sign-in.
type DashboardScreen struct {
	svc        *screen.Services
	menu       components.Menu
	menuLabels []string
	user       string
	progress   *stats.Report
	notice     string
	noticeErr  bool
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates the dashboard.
func New(svc *screen.Services) *DashboardScreen {
	menuLabels := []string{"START QUIZ", "CREATE DECK", "STATISTICS", "HISTORY", "SIGN OUT", "QUIT"}

	push := func(s screen.Screen) tea.Cmd {
		return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
	}

	items := []components.MenuItem{
		{Label: menuLabels[0], Action: func() tea.Cmd { return push(selector.New(svc)) }},
		{Label: menuLabels[1], Action: func() tea.Cmd { return push(createdeck.New(svc)) }},
		{Label: menuLabels[2], Action: func() tea.Cmd { return push(statistics.New(svc)) }},
		{Label: menuLabels[3], Action: func() tea.Cmd { return push(history.New(svc)) }},
		{Label: menuLabels[4], Action: func() tea.Cmd { return signOut(svc) }},
		{Label: menuLabels[5], Action: func() tea.Cmd { return tea.Quit }},
	}

	return &DashboardScreen{
		svc:        svc,
		menu:       components.NewMenu(items),
		menuLabels: menuLabels,
		user:       svc.UserName(context.Background()),
	}
}

func signOut(svc *screen.Services) tea.Cmd {
	return func() tea.Msg {
		if err := svc.Auth.Logout(context.Background()); err != nil {
			svc.Log().Warn("sign out", zap.Error(err))
		}
		return screen.SignedOutMsg{}
	}
}

// Init loads the local progress summary.
func (d *DashboardScreen) Init() tea.Cmd {
	return d.loadProgress()
}

func (d *DashboardScreen) loadProgress() tea.Cmd {
	svc := d.svc
	return func() tea.Msg {
		r, err := svc.Stats.LoadLocal(context.Background(), "")
		return progressLoadedMsg{report: r, err: err}
	}
}

func (d *DashboardScreen) Title() string {
	return "Dashboard"
}

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "1-6", Description: "Jump"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case progressLoadedMsg:
		if msg.err != nil {
			d.svc.Log().Warn("load local progress", zap.Error(msg.err))
			msg.report = stats.Report{}
		}
		d.progress = &msg.report
		return d, nil

	case screen.NoticeMsg:
		d.notice, d.noticeErr = msg.Text, msg.IsErr
		return d, d.loadProgress()

	case tea.KeyMsg:
		d.notice = ""
	}

	var cmd tea.Cmd
	d.menu, cmd = d.menu.Update(msg)
	return d, cmd
}

func (d *DashboardScreen) View(width, height int) string {
	compact := layout.IsCompact(width, height)
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))

	greeting := "Welcome!"
	if d.user != "" {
		greeting = "Welcome back, " + d.user + "!"
	}
	sections = append(sections, components.Panel(greeting, cw, 1))

	if d.notice != "" {
		sections = append(sections, components.Banner(d.notice, d.noticeErr, cw))
	}

	sections = append(sections, renderStatsBar(d.progress, cw, compact))

	if compact {
		sections = append(sections, renderMenuCompact(d.menuLabels, d.menu.Selected, cw))
	} else {
		sections = append(sections, renderMenu(d.menuLabels, d.menu.Selected, cw))
	}

	return components.Panel(strings.Join(sections, "\n\n"), width, height)
}
