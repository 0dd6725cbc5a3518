package stats

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/flashiz/internal/models"
	"github.com/abhisek/flashiz/internal/store"
)

// Remote is the backend stats API.
type Remote interface {
	UserStats(ctx context.Context) ([]models.StatsEntry, error)
	DeckStats(ctx context.Context, deckName string) ([]models.StatsEntry, error)
	ResetStats(ctx context.Context) (string, error)
}

// LocalHistory is the local attempt cache.
type LocalHistory interface {
	List(ctx context.Context, opts store.QueryOpts) ([]models.Attempt, error)
	Clear(ctx context.Context) error
}

// ResetOptions controls what a reset removes. The zero value clears only
// the remote records and leaves the local history untouched.
type ResetOptions struct {
	ClearLocal bool
}

// Service loads and resets statistics.
type Service struct {
	remote Remote
	local  LocalHistory
	logger *zap.Logger
}

// NewService creates a Service. local may be nil when no local cache is
// available; a nil logger discards log output.
func NewService(remote Remote, local LocalHistory, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{remote: remote, local: local, logger: logger}
}

// Load aggregates every remote record of the current user.
func (s *Service) Load(ctx context.Context) (Report, error) {
	entries, err := s.remote.UserStats(ctx)
	if err != nil {
		return Report{}, err
	}
	s.logger.Debug("loaded statistics", zap.Int("entries", len(entries)))
	return Aggregate(entries), nil
}

// LoadDeck aggregates the remote records for one deck name.
func (s *Service) LoadDeck(ctx context.Context, deckName string) (Report, error) {
	entries, err := s.remote.DeckStats(ctx, deckName)
	if err != nil {
		return Report{}, err
	}
	return Aggregate(entries), nil
}

// LoadLocal aggregates the local attempt history, optionally limited to
// one deck name.
func (s *Service) LoadLocal(ctx context.Context, deckName string) (Report, error) {
	if s.local == nil {
		return Report{}, nil
	}
	attempts, err := s.local.List(ctx, store.QueryOpts{Deck: deckName})
	if err != nil {
		return Report{}, fmt.Errorf("list local history: %w", err)
	}
	entries := make([]models.StatsEntry, len(attempts))
	for i, a := range attempts {
		entries[i] = a.StatsEntry()
	}
	return Aggregate(entries), nil
}

// Reset deletes the remote records and, when asked, the local history.
// The local history is only touched after the remote reset succeeds.
func (s *Service) Reset(ctx context.Context, opts ResetOptions) (string, error) {
	msg, err := s.remote.ResetStats(ctx)
	if err != nil {
		return "", err
	}
	if opts.ClearLocal && s.local != nil {
		if err := s.local.Clear(ctx); err != nil {
			return msg, fmt.Errorf("clear local history: %w", err)
		}
		s.logger.Info("cleared local history")
	}
	return msg, nil
}
