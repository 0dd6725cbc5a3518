// Package statistics shows aggregated quiz results and lets the user reset
// them.
package statistics

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/flashiz/internal/api"
	"github.com/abhisek/flashiz/internal/screen"
	"github.com/abhisek/flashiz/internal/stats"
	"github.com/abhisek/flashiz/internal/ui/layout"
)

const (
	resetConfirmText = "Are you sure you want to reset your statistics?"
	resetFailedText  = "Failed to reset statistics. Please try again."
)

type statsLoadedMsg struct {
	report stats.Report
	local  bool
	err    error
}

type resetDoneMsg struct {
	message string
	err     error
}

// StatisticsScreen displays a stats.Report.
type StatisticsScreen struct {
	svc    *screen.Services
	report stats.Report
	local  bool
	loaded bool
	offset int

	errMsg  string
	notice  string
	confirm bool
}

var _ screen.Screen = (*StatisticsScreen)(nil)
var _ screen.KeyHintProvider = (*StatisticsScreen)(nil)

// New creates the statistics screen showing the remote records.
func New(svc *screen.Services) *StatisticsScreen {
	return &StatisticsScreen{svc: svc}
}

func (s *StatisticsScreen) Init() tea.Cmd {
	return s.load()
}

func (s *StatisticsScreen) load() tea.Cmd {
	svc, local := s.svc, s.local
	return func() tea.Msg {
		ctx := context.Background()
		var (
			r   stats.Report
			err error
		)
		if local {
			r, err = svc.Stats.LoadLocal(ctx, "")
		} else {
			r, err = svc.Stats.Load(ctx)
		}
		return statsLoadedMsg{report: r, local: local, err: err}
	}
}

func (s *StatisticsScreen) Title() string {
	return "Statistics"
}

func (s *StatisticsScreen) KeyHints() []layout.KeyHint {
	if s.confirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Reset"},
			{Key: "N", Description: "Cancel"},
		}
	}
	source := "Local history"
	if s.local {
		source = "Server stats"
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "L", Description: source},
		{Key: "R", Description: "Reset"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatisticsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.local != s.local {
			return s, nil
		}
		s.loaded = true
		if msg.err != nil {
			if cmd := s.svc.Expired(msg.err); cmd != nil {
				return s, cmd
			}
			s.errMsg = api.Message(msg.err)
			s.svc.Log().Warn("load statistics", zap.Error(msg.err))
			return s, nil
		}
		s.errMsg = ""
		s.report = msg.report
		s.offset = 0
		return s, nil

	case resetDoneMsg:
		if msg.err != nil {
			s.errMsg = resetFailedText
			s.svc.Log().Warn("reset statistics", zap.Error(msg.err))
			return s, s.svc.Expired(msg.err)
		}
		s.errMsg = ""
		s.notice = msg.message
		if !s.local {
			s.report = stats.Report{}
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *StatisticsScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	if s.confirm {
		switch key {
		case "y", "Y":
			s.confirm = false
			return s, s.reset()
		case "n", "N":
			s.confirm = false
		}
		return s, nil
	}

	switch key {
	case "up", "k":
		if s.offset > 0 {
			s.offset--
		}
	case "down", "j":
		if s.offset < len(s.report.Groups)-1 {
			s.offset++
		}
	case "l", "L":
		s.local = !s.local
		s.loaded = false
		s.notice = ""
		return s, s.load()
	case "r", "R":
		if !s.local {
			s.notice = ""
			s.confirm = true
		}
	}
	return s, nil
}

func (s *StatisticsScreen) reset() tea.Cmd {
	svc := s.svc
	return func() tea.Msg {
		text, err := svc.Stats.Reset(context.Background(), stats.ResetOptions{})
		return resetDoneMsg{message: text, err: err}
	}
}
