package components

import (
	"github.com/abhisek/flashiz/internal/ui/theme"
)

// Button renders an action label. Screens handle the keys themselves; Key is
// only shown as a shortcut hint.
type Button struct {
	Label  string
	Key    string
	Active bool
}

// NewButton creates a button.
func NewButton(label string, active bool) Button {
	return Button{Label: label, Active: active}
}

// WithKey returns a copy showing key as the shortcut.
func (b Button) WithKey(key string) Button {
	b.Key = key
	return b
}

func (b Button) View() string {
	label := b.Label
	if b.Key != "" {
		label = "[" + b.Key + "] " + label
	}
	if b.Active {
		return theme.ButtonActive.Render("  ▸ " + label + " ")
	}
	return theme.ButtonInactive.Render("    " + label + " ")
}
