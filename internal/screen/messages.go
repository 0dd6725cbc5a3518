package screen

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/flashiz/internal/api"
	"github.com/abhisek/flashiz/internal/models"
)

// SessionExpiredNotice is shown on the sign-in form after the backend
// rejected the stored token.
const SessionExpiredNotice = "Your session has expired. Please sign in again."

// SignedInMsg is sent after a successful login. The app swaps the whole
// stack for the dashboard.
type SignedInMsg struct {
	User models.User
}

// SignedOutMsg is sent after logout or an expired session. The app swaps
// the whole stack for the sign-in form, showing Notice if set.
type SignedOutMsg struct {
	Notice string
}

// NoticeMsg carries a one-line message for the screen that receives it.
type NoticeMsg struct {
	Text  string
	IsErr bool
}

// Notify returns a command delivering a notice to the active screen.
func Notify(text string, isErr bool) tea.Cmd {
	return func() tea.Msg { return NoticeMsg{Text: text, IsErr: isErr} }
}

// Expired clears the stored session when err is an authorization failure
// and returns the command that sends the user back to sign-in. It returns
// nil for any other error.
func (s *Services) Expired(err error) tea.Cmd {
	if s == nil || s.Auth == nil || !api.IsUnauthorized(err) {
		return nil
	}
	s.Auth.HandleError(context.Background(), err)
	return func() tea.Msg { return SignedOutMsg{Notice: SessionExpiredNotice} }
}
