package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/leetstreak/internal/domain/challenge"
	"github.com/riskibarqy/leetstreak/internal/infrastructure/repository/memory"
	challengemock "github.com/riskibarqy/leetstreak/internal/mocks/domain/challenge"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestDashboardService(t *testing.T) (*DashboardService, *fakeLeaderboardCache) {
	t.Helper()

	repo := seededRepository(t)
	cache := newFakeLeaderboardCache()
	leaderboards := newTestLeaderboardService(repo, cache, true)
	return NewDashboardService(repo, leaderboards, fixedClock(), 2), cache
}

func TestDashboardService_Get_MultipleChallenges(t *testing.T) {
	t.Parallel()

	service, cache := newTestDashboardService(t)
	got, err := service.Get(context.Background(), "u-alice")
	require.NoError(t, err)

	assert.Equal(t, "u-alice", got.UserID)
	assert.True(t, got.Today.Equal(seedToday))
	assert.Equal(t, 2, got.ActiveChallenges)
	assert.Equal(t, 2, got.CompletedToday)
	assert.Zero(t, got.PendingToday)
	assert.Equal(t, 11, got.BestCurrentStreak)
	assert.Equal(t, 11, got.BestLongestStreak)
	assert.True(t, got.TotalPenalties.Equal(decimal.RequireFromString("7.5")), "total penalties %s", got.TotalPenalties)

	require.Len(t, got.Challenges, 2)
	first := got.Challenges[0]
	assert.Equal(t, memory.ChallengeIDBlind75, first.ChallengeID)
	assert.Equal(t, "Blind 75 Sprint", first.ChallengeName)
	assert.Equal(t, 1, first.Rank)
	assert.Equal(t, 4, first.Participants)
	require.NotNil(t, first.Today)
	assert.True(t, first.Today.Completed)

	second := got.Challenges[1]
	assert.Equal(t, memory.ChallengeIDDailyGrind, second.ChallengeID)
	assert.Equal(t, 1, second.Rank)
	assert.Equal(t, 2, second.Participants)
	assert.Equal(t, 6, second.CurrentStreak)

	assert.Equal(t, 2, cache.sets)
}

func TestDashboardService_Get_TodayNotEvaluated(t *testing.T) {
	t.Parallel()

	service, _ := newTestDashboardService(t)
	got, err := service.Get(context.Background(), "u-carol")
	require.NoError(t, err)

	require.Len(t, got.Challenges, 1)
	assert.Nil(t, got.Challenges[0].Today)
	assert.Equal(t, 3, got.Challenges[0].Rank)
	assert.Equal(t, 1, got.PendingToday)
	assert.Zero(t, got.CompletedToday)
	assert.Equal(t, 12, got.BestLongestStreak)
}

func TestDashboardService_Get_UnknownUserIsEmpty(t *testing.T) {
	t.Parallel()

	service, _ := newTestDashboardService(t)
	got, err := service.Get(context.Background(), "u-nobody")
	require.NoError(t, err)
	assert.Zero(t, got.ActiveChallenges)
	assert.Empty(t, got.Challenges)
	assert.True(t, got.TotalPenalties.IsZero())
}

func TestDashboardService_Get_SkipsInactiveMemberships(t *testing.T) {
	t.Parallel()

	repo := challengemock.NewRepository(t)
	repo.On("ListMembershipsByUser", mock.Anything, "u-1").
		Return([]challenge.Membership{{ID: "m-1", ChallengeID: "c-1", UserID: "u-1", Active: false}}, nil).
		Once()

	service := NewDashboardService(repo, newTestLeaderboardService(repo, newFakeLeaderboardCache(), true), fixedClock(), 1)
	got, err := service.Get(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Zero(t, got.ActiveChallenges)
}

func TestDashboardService_Get_PropagatesRepositoryError(t *testing.T) {
	t.Parallel()

	dbErr := errors.New("db down")
	repo := challengemock.NewRepository(t)
	repo.On("ListMembershipsByUser", mock.Anything, "u-1").
		Return(nil, dbErr).
		Once()

	service := NewDashboardService(repo, newTestLeaderboardService(repo, newFakeLeaderboardCache(), true), fixedClock(), 1)
	_, err := service.Get(context.Background(), "u-1")
	require.ErrorIs(t, err, dbErr)

	_, err = service.Get(context.Background(), " ")
	require.ErrorIs(t, err, ErrInvalidInput)
}
