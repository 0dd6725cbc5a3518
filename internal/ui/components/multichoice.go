package components

import (
	"fmt"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashiz/internal/ui/theme"
)

// MultiChoice is a numbered option picker. It only tracks the cursor and
// the pick; the caller decides whether the pick was right and calls Reveal.
type MultiChoice struct {
	Options  []string
	Selected int

	// Chosen is the index picked by the user, -1 until a pick is made.
	Chosen int

	// Answer is the index of the correct option, set by Reveal.
	Answer   int
	Revealed bool
}

// NewMultiChoice creates a picker over options with the cursor on the first.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{
		Options: options,
		Chosen:  -1,
		Answer:  -1,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles cursor movement, number keys and enter. Picking stops
// further input until the picker is replaced.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Picked() {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		if len(m.Options) > 0 {
			m.Chosen = m.Selected
		}
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.Options) {
			m.Selected = n - 1
			m.Chosen = n - 1
		}
	}

	return m, nil
}

// Picked reports whether an option has been chosen.
func (m MultiChoice) Picked() bool {
	return m.Chosen >= 0
}

// Value returns the chosen option text, or "" before a pick.
func (m MultiChoice) Value() string {
	if !m.Picked() || m.Chosen >= len(m.Options) {
		return ""
	}
	return m.Options[m.Chosen]
}

// Reveal marks the option equal to answer as correct. Options are matched
// by text so duplicates of the answer are all highlighted.
func (m *MultiChoice) Reveal(answer string) {
	m.Revealed = true
	m.Answer = -1
	for i, opt := range m.Options {
		if opt == answer {
			m.Answer = i
			break
		}
	}
}

// View renders the options, colored by outcome once revealed.
func (m MultiChoice) View() string {
	var s string
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Revealed {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		switch {
		case m.Revealed && m.Answer >= 0 && opt == m.Options[m.Answer]:
			s += theme.Correct.Render(line+"  ✓") + "\n"
		case m.Revealed && i == m.Chosen:
			s += theme.Incorrect.Render(line+"  ✗") + "\n"
		case m.Revealed:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
		case i == m.Selected:
			s += theme.Selected.Render(line) + "\n"
		default:
			s += theme.Unselected.Render(line) + "\n"
		}
	}
	return s
}
