// Package landing is the sign-in and sign-up screen.
package landing

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/flashiz/internal/api"
	"github.com/abhisek/flashiz/internal/auth"
	"github.com/abhisek/flashiz/internal/models"
	"github.com/abhisek/flashiz/internal/screen"
	"github.com/abhisek/flashiz/internal/ui/components"
	"github.com/abhisek/flashiz/internal/ui/layout"
	"github.com/abhisek/flashiz/internal/ui/theme"
)

type mode int

const (
	modeSignIn mode = iota
	modeSignUp
)

// Field keys match the auth form struct fields so validation errors can be
// placed next to their input.
const (
	fieldName     = "Name"
	fieldEmail    = "Email"
	fieldPassword = "Password"
	fieldConfirm  = "ConfirmPassword"
)

type loginDoneMsg struct {
	user *models.User
	err  error
}

type registerDoneMsg struct {
	email string
	err   error
}

// LandingScreen collects credentials and signs the user in or up.
type LandingScreen struct {
	svc    *screen.Services
	mode   mode
	keys   []string
	fields []components.TextInput
	focus  int
	busy   bool
	notice string
	errMsg string
}

var _ screen.Screen = (*LandingScreen)(nil)
var _ screen.KeyHintProvider = (*LandingScreen)(nil)

// New creates the sign-in form. notice, when set, is shown above the form.
func New(svc *screen.Services, notice string) *LandingScreen {
	s := &LandingScreen{svc: svc, notice: notice}
	s.setMode(modeSignIn)
	return s
}

func (s *LandingScreen) setMode(m mode) {
	email := s.value(fieldEmail)
	s.mode = m
	switch m {
	case modeSignIn:
		s.keys = []string{fieldEmail, fieldPassword}
		s.fields = []components.TextInput{
			components.NewTextInput("Email", "you@example.com", false, 128),
			components.NewTextInput("Password", "", true, 128),
		}
	case modeSignUp:
		s.keys = []string{fieldName, fieldEmail, fieldPassword, fieldConfirm}
		s.fields = []components.TextInput{
			components.NewTextInput("Name", "Your name", false, 64),
			components.NewTextInput("Email", "you@example.com", false, 128),
			components.NewTextInput("Password", "", true, 128),
			components.NewTextInput("Confirm Password", "", true, 128),
		}
	}
	s.errMsg = ""
	s.focus = 0
	if i := s.index(fieldEmail); i >= 0 {
		s.fields[i].SetValue(email)
	}
	s.fields[0].Focus()
}

func (s *LandingScreen) index(key string) int {
	for i, k := range s.keys {
		if k == key {
			return i
		}
	}
	return -1
}

func (s *LandingScreen) value(key string) string {
	if i := s.index(key); i >= 0 {
		return strings.TrimSpace(s.fields[i].Value())
	}
	return ""
}

func (s *LandingScreen) Init() tea.Cmd {
	return s.fields[s.focus].Focus()
}

func (s *LandingScreen) Title() string {
	if s.mode == modeSignUp {
		return "Create Account"
	}
	return "Sign In"
}

func (s *LandingScreen) KeyHints() []layout.KeyHint {
	toggle := "Create account"
	if s.mode == modeSignUp {
		toggle = "Have an account? Sign in"
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Ctrl+R", Description: toggle},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *LandingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		s.busy = false
		if msg.err != nil {
			s.showError(msg.err)
			return s, nil
		}
		user := *msg.user
		return s, func() tea.Msg { return screen.SignedInMsg{User: user} }

	case registerDoneMsg:
		s.busy = false
		if msg.err != nil {
			s.showError(msg.err)
			return s, nil
		}
		s.setMode(modeSignIn)
		s.fields[s.index(fieldEmail)].SetValue(msg.email)
		s.moveFocus(s.index(fieldPassword))
		s.notice = auth.MsgRegistered
		return s, nil

	case screen.NoticeMsg:
		s.notice = msg.Text
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	var cmd tea.Cmd
	s.fields[s.focus], cmd = s.fields[s.focus].Update(msg)
	return s, cmd
}

func (s *LandingScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.busy {
		return s, nil
	}
	switch msg.String() {
	case "tab", "down":
		return s, s.moveFocus((s.focus + 1) % len(s.fields))
	case "shift+tab", "up":
		return s, s.moveFocus((s.focus - 1 + len(s.fields)) % len(s.fields))
	case "ctrl+r":
		if s.mode == modeSignIn {
			s.setMode(modeSignUp)
		} else {
			s.setMode(modeSignIn)
		}
		s.notice = ""
		return s, nil
	case "enter":
		if s.focus < len(s.fields)-1 {
			return s, s.moveFocus(s.focus + 1)
		}
		return s, s.submit()
	}

	var cmd tea.Cmd
	s.fields[s.focus], cmd = s.fields[s.focus].Update(msg)
	return s, cmd
}

func (s *LandingScreen) moveFocus(i int) tea.Cmd {
	s.fields[s.focus].Blur()
	s.focus = i
	return s.fields[s.focus].Focus()
}

// submit validates locally and, when the form is valid, starts the request.
func (s *LandingScreen) submit() tea.Cmd {
	for i := range s.fields {
		s.fields[i].Err = ""
	}
	s.errMsg = ""

	if s.mode == modeSignIn {
		form := auth.LoginForm{
			Email:    s.value(fieldEmail),
			Password: s.fields[s.index(fieldPassword)].Value(),
		}
		if err := form.Validate(); err != nil {
			s.showError(err)
			return nil
		}
		s.busy = true
		mgr := s.svc.Auth
		return func() tea.Msg {
			user, err := mgr.Login(context.Background(), form)
			return loginDoneMsg{user: user, err: err}
		}
	}

	form := auth.RegisterForm{
		Name:            s.value(fieldName),
		Email:           s.value(fieldEmail),
		Password:        s.fields[s.index(fieldPassword)].Value(),
		ConfirmPassword: s.fields[s.index(fieldConfirm)].Value(),
	}
	if err := form.Validate(); err != nil {
		s.showError(err)
		return nil
	}
	s.busy = true
	mgr := s.svc.Auth
	return func() tea.Msg {
		_, err := mgr.Register(context.Background(), form)
		return registerDoneMsg{email: form.Email, err: err}
	}
}

// showError places field errors next to their inputs and anything else in
// the banner.
func (s *LandingScreen) showError(err error) {
	var fe auth.FieldErrors
	if errors.As(err, &fe) {
		for key, text := range fe {
			if i := s.index(key); i >= 0 {
				s.fields[i].Err = text
			}
		}
		return
	}
	s.errMsg = api.Message(err)
	s.svc.Log().Warn("authentication failed", zap.Error(err))
}

func (s *LandingScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	heading := "Welcome back"
	sub := "Sign in to continue studying."
	if s.mode == modeSignUp {
		heading = "Create your account"
		sub = "Start building flashcard decks."
	}
	b.WriteString(theme.Title.Width(cw).Render(heading))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(cw).Render(sub))
	b.WriteString("\n\n")

	if s.notice != "" {
		b.WriteString(components.Banner(s.notice, false, cw))
		b.WriteString("\n")
	}
	if s.errMsg != "" {
		b.WriteString(components.Banner(s.errMsg, true, cw))
		b.WriteString("\n")
	}

	for i, f := range s.fields {
		b.WriteString(f.View())
		if i < len(s.fields)-1 {
			b.WriteString("\n\n")
		}
	}
	b.WriteString("\n\n")

	if s.busy {
		b.WriteString(theme.Hint.Render("Please wait..."))
	} else {
		label := "Sign In"
		if s.mode == modeSignUp {
			label = "Sign Up"
		}
		b.WriteString(components.NewButton(label, s.focus == len(s.fields)-1).View())
	}

	card := lipgloss.NewStyle().Width(cw).Render(b.String())
	return components.Panel(card, width, height)
}
