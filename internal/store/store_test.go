package store

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/abhisek/flashiz/internal/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
		{"busy_timeout", "5000"},
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestKV(t *testing.T) {
	s := openTestStore(t)
	kv := s.KV()
	ctx := context.Background()

	_, err := kv.Get(ctx, "token")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kv.Set(ctx, "token", "abc"))
	require.NoError(t, kv.Set(ctx, "user", `{"name":"Ada"}`))

	v, err := kv.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "abc", v)

	require.NoError(t, kv.Set(ctx, "token", "def"))
	v, err = kv.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "def", v)

	require.NoError(t, kv.Clear(ctx, "token", "user", "missing"))
	_, err = kv.Get(ctx, "token")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = kv.Get(ctx, "user")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, kv.Clear(ctx))
}

type HistoryRepoSuite struct {
	suite.Suite
	store *Store
	repo  HistoryRepo
	base  time.Time
}

func (s *HistoryRepoSuite) SetupTest() {
	s.store = openTestStore(s.T())
	s.repo = s.store.HistoryRepo()
	s.base = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
}

func (s *HistoryRepoSuite) attempt(id, deck string, total, correct int, offset time.Duration) models.Attempt {
	return models.Attempt{
		ID:         id,
		DeckID:     "d-" + deck,
		DeckName:   deck,
		TotalCards: total,
		Correct:    correct,
		Accuracy:   correct * 100 / total,
		TimeTaken:  42,
		BestStreak: correct,
		HintsUsed:  1,
		Date:       s.base.Add(offset),
	}
}

func (s *HistoryRepoSuite) TestAppendAndListPreservesOrder() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Append(ctx, s.attempt("a1", "Go", 4, 3, 0)))
	s.Require().NoError(s.repo.Append(ctx, s.attempt("a2", "SQL", 5, 5, time.Minute)))
	s.Require().NoError(s.repo.Append(ctx, s.attempt("a3", "Go", 4, 1, 2*time.Minute)))

	got, err := s.repo.List(ctx, QueryOpts{})
	s.Require().NoError(err)
	s.Require().Len(got, 3)
	s.Equal("a1", got[0].ID)
	s.Equal("a3", got[2].ID)
	s.Equal(s.base, got[0].Date)
	s.Equal(42, got[0].TimeTaken)
	s.Equal(1, got[0].HintsUsed)
}

func (s *HistoryRepoSuite) TestListFilters() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Append(ctx, s.attempt("a1", "Go", 4, 3, 0)))
	s.Require().NoError(s.repo.Append(ctx, s.attempt("a2", "SQL", 5, 5, time.Minute)))
	s.Require().NoError(s.repo.Append(ctx, s.attempt("a3", "Go", 4, 1, 2*time.Minute)))

	byDeck, err := s.repo.List(ctx, QueryOpts{Deck: "Go"})
	s.Require().NoError(err)
	s.Len(byDeck, 2)

	latest, err := s.repo.List(ctx, QueryOpts{Limit: 2})
	s.Require().NoError(err)
	s.Require().Len(latest, 2)
	s.Equal("a2", latest[0].ID)
	s.Equal("a3", latest[1].ID)

	since, err := s.repo.List(ctx, QueryOpts{From: s.base.Add(time.Minute)})
	s.Require().NoError(err)
	s.Len(since, 2)
}

func (s *HistoryRepoSuite) TestDuplicateIDRejected() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Append(ctx, s.attempt("a1", "Go", 4, 3, 0)))
	s.Error(s.repo.Append(ctx, s.attempt("a1", "Go", 4, 3, 0)))
}

func (s *HistoryRepoSuite) TestClear() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Append(ctx, s.attempt("a1", "Go", 4, 3, 0)))
	s.Require().NoError(s.repo.Clear(ctx))

	got, err := s.repo.List(ctx, QueryOpts{})
	s.Require().NoError(err)
	s.Empty(got)
}

func TestHistoryRepoSuite(t *testing.T) {
	suite.Run(t, new(HistoryRepoSuite))
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "mock", Purpose: "hint",
		InputTokens: 10, OutputTokens: 5, LatencyMs: 12, Success: true,
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "mock", Purpose: "distractors",
		Success: false, ErrorMessage: "boom",
	}))

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "distractors", events[0].Purpose)
	assert.False(t, events[0].Success)
	assert.Equal(t, "boom", events[0].ErrorMessage)
	assert.True(t, events[1].Success)
	assert.Equal(t, 10, events[1].InputTokens)

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	one, err := repo.GetLLMEvent(ctx, events[1].ID)
	require.NoError(t, err)
	require.NotNil(t, one)
	assert.Equal(t, "hint", one.Purpose)

	missing, err := repo.GetLLMEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
