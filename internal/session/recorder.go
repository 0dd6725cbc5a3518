package session

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/flashiz/internal/models"
)

// SaveErrorMessage is shown when the remote stats write fails.
const SaveErrorMessage = "Failed to save your results to the server"

// History is the local store completed attempts are appended to.
type History interface {
	Append(ctx context.Context, a models.Attempt) error
}

// RemoteStats is the backend endpoint completed quizzes are posted to.
type RemoteStats interface {
	RecordStats(ctx context.Context, req models.RecordStatsRequest) (*models.StatsEntry, error)
}

// Recorder persists a completed quiz to the local history and the remote
// stats endpoint.
type Recorder struct {
	history History
	remote  RemoteStats
	logger  *zap.Logger
	newID   func() string
}

// NewRecorder creates a Recorder. A nil logger discards log output.
func NewRecorder(history History, remote RemoteStats, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{
		history: history,
		remote:  remote,
		logger:  logger,
		newID:   func() string { return uuid.New().String() },
	}
}

// Record writes the local attempt synchronously and returns its error.
// When that succeeds the remote write starts in the background; its outcome
// is delivered once on the returned channel, which is then closed. A failed
// remote write never undoes the local record and is not retried.
func (r *Recorder) Record(ctx context.Context, res Result) (<-chan error, error) {
	attempt := res.Attempt(r.newID())
	if err := r.history.Append(ctx, attempt); err != nil {
		return nil, fmt.Errorf("save attempt locally: %w", err)
	}

	done := make(chan error, 1)
	remoteCtx := context.WithoutCancel(ctx)
	go func() {
		defer close(done)
		_, err := r.remote.RecordStats(remoteCtx, res.StatsRequest())
		if err != nil {
			r.logger.Error("failed to save statistics to backend",
				zap.String("attempt", attempt.ID),
				zap.String("deck", res.DeckName),
				zap.Error(err),
			)
		}
		done <- err
	}()

	return done, nil
}
