package screen

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/flashiz/internal/assist"
	"github.com/abhisek/flashiz/internal/auth"
	"github.com/abhisek/flashiz/internal/deck"
	"github.com/abhisek/flashiz/internal/models"
	"github.com/abhisek/flashiz/internal/session"
	"github.com/abhisek/flashiz/internal/stats"
)

// DeckSource reads decks from the backend.
type DeckSource interface {
	ListDecks(ctx context.Context) ([]models.Deck, error)
	GetDeck(ctx context.Context, id string) (*models.Deck, error)
}

// Services carries the dependencies screens call into. Screens receive it
// by pointer and never modify it.
type Services struct {
	Auth     *auth.Manager
	Decks    DeckSource
	Writer   deck.Backend
	Stats    *stats.Service
	Recorder *session.Recorder
	History  stats.LocalHistory
	Assist   *assist.Assistant

	// RevealDelay is how long the answer stays highlighted and
	// TransitionDelay the pause before the next card is shown.
	RevealDelay     time.Duration
	TransitionDelay time.Duration

	Logger *zap.Logger
}

// FeedbackDelay is the total time between an answer and the next card.
func (s *Services) FeedbackDelay() time.Duration {
	return s.RevealDelay + s.TransitionDelay
}

// Log returns the logger, or a no-op logger when none is set.
func (s *Services) Log() *zap.Logger {
	if s == nil || s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// UserName returns the signed-in user's name, or "" when signed out.
func (s *Services) UserName(ctx context.Context) string {
	if s == nil || s.Auth == nil {
		return ""
	}
	u, err := s.Auth.CurrentUser(ctx)
	if err != nil || u == nil {
		return ""
	}
	return u.Name
}
