package store

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/flashiz/internal/models"
)

// ErrNotFound is returned when a keyed lookup has no row.
var ErrNotFound = errors.New("not found")

// QueryOpts configures history and event queries with filtering and pagination.
type QueryOpts struct {
	Limit int       // most recent N results (0 = unlimited)
	Deck  string    // exact deck name match (attempts only)
	From  time.Time // timestamp >= From
	To    time.Time // timestamp <= To
}

// KV is a small string key/value store. The auth token and the cached
// user profile live here.
type KV interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Clear removes the given keys. Missing keys are ignored.
	Clear(ctx context.Context, keys ...string) error
}

// HistoryRepo is the append-only local cache of completed quiz attempts.
type HistoryRepo interface {
	// Append stores one attempt. Attempts are never updated.
	Append(ctx context.Context, a models.Attempt) error

	// List returns attempts oldest first.
	List(ctx context.Context, opts QueryOpts) ([]models.Attempt, error)

	// Clear deletes every stored attempt.
	Clear(ctx context.Context) error
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// EventRepo records and queries LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns one event by ID, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)
}
