package stats

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/flashiz/internal/models"
	"github.com/abhisek/flashiz/internal/store"
)

type mockRemote struct {
	mock.Mock
}

func (m *mockRemote) UserStats(ctx context.Context) ([]models.StatsEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StatsEntry), args.Error(1)
}

func (m *mockRemote) DeckStats(ctx context.Context, deckName string) ([]models.StatsEntry, error) {
	args := m.Called(ctx, deckName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StatsEntry), args.Error(1)
}

func (m *mockRemote) ResetStats(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

type mockLocal struct {
	mock.Mock
}

func (m *mockLocal) List(ctx context.Context, opts store.QueryOpts) ([]models.Attempt, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Attempt), args.Error(1)
}

func (m *mockLocal) Clear(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func TestService_Load(t *testing.T) {
	remote := &mockRemote{}
	remote.On("UserStats", mock.Anything).Return([]models.StatsEntry{
		{Deck: "Go", TotalCards: 10, Correct: 7},
		{Deck: "Go", TotalCards: 5, Correct: 5},
	}, nil)

	r, err := NewService(remote, nil, nil).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 15, r.TotalReviewed)
	assert.Equal(t, 80, r.OverallAccuracy)
	remote.AssertExpectations(t)
}

func TestService_LoadError(t *testing.T) {
	remote := &mockRemote{}
	remote.On("UserStats", mock.Anything).Return(nil, errors.New("Failed to fetch statistics"))

	_, err := NewService(remote, nil, nil).Load(context.Background())
	assert.EqualError(t, err, "Failed to fetch statistics")
}

func TestService_LoadDeck(t *testing.T) {
	remote := &mockRemote{}
	remote.On("DeckStats", mock.Anything, "Go").Return([]models.StatsEntry{
		{Deck: "Go", TotalCards: 4, Correct: 1},
	}, nil)

	r, err := NewService(remote, nil, nil).LoadDeck(context.Background(), "Go")
	require.NoError(t, err)
	assert.Equal(t, 25, r.OverallAccuracy)
}

func TestService_LoadLocal(t *testing.T) {
	local := &mockLocal{}
	local.On("List", mock.Anything, store.QueryOpts{Deck: "Go"}).Return([]models.Attempt{
		{ID: "a1", DeckName: "Go", TotalCards: 4, Correct: 2, Accuracy: 50},
		{ID: "a2", DeckName: "Go", TotalCards: 4, Correct: 4, Accuracy: 100},
	}, nil)

	r, err := NewService(&mockRemote{}, local, nil).LoadLocal(context.Background(), "Go")
	require.NoError(t, err)
	assert.Equal(t, 8, r.TotalReviewed)
	assert.Equal(t, 75, r.OverallAccuracy)
	assert.Equal(t, ChartTrend, r.Chart())
}

func TestService_ResetLeavesLocalByDefault(t *testing.T) {
	remote := &mockRemote{}
	remote.On("ResetStats", mock.Anything).Return("Statistics reset successfully", nil)
	local := &mockLocal{}

	msg, err := NewService(remote, local, nil).Reset(context.Background(), ResetOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Statistics reset successfully", msg)
	local.AssertNotCalled(t, "Clear", mock.Anything)
}

func TestService_ResetClearLocal(t *testing.T) {
	remote := &mockRemote{}
	remote.On("ResetStats", mock.Anything).Return("ok", nil)
	local := &mockLocal{}
	local.On("Clear", mock.Anything).Return(nil)

	_, err := NewService(remote, local, nil).Reset(context.Background(), ResetOptions{ClearLocal: true})
	require.NoError(t, err)
	local.AssertCalled(t, "Clear", mock.Anything)
}

func TestService_ResetRemoteFailureKeepsLocal(t *testing.T) {
	remote := &mockRemote{}
	remote.On("ResetStats", mock.Anything).Return("", errors.New("Failed to reset statistics"))
	local := &mockLocal{}

	_, err := NewService(remote, local, nil).Reset(context.Background(), ResetOptions{ClearLocal: true})
	require.Error(t, err)
	local.AssertNotCalled(t, "Clear", mock.Anything)
}
