package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/leetstreak/internal/domain/challenge"
	"github.com/riskibarqy/leetstreak/internal/infrastructure/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResultService(t *testing.T) (*ResultService, *memory.ChallengeRepository, *fakeLeaderboardCache) {
	t.Helper()

	repo := seededRepository(t)
	cache := newFakeLeaderboardCache()
	leaderboards := newTestLeaderboardService(repo, cache, true)
	return NewResultService(repo, repo, leaderboards, fixedClock()), repo, cache
}

func TestResultService_RecordResult_InvalidatesLeaderboard(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, repo, cache := newTestResultService(t)

	saved, err := service.RecordResult(ctx, RecordResultInput{
		ChallengeID:      memory.ChallengeIDBlind75,
		UserID:           "u-carol",
		Date:             seedToday.Add(20 * time.Hour),
		Completed:        true,
		SubmissionsCount: 4,
		ProblemsSolved:   2,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.True(t, saved.Date.Equal(seedToday))

	_, found, err := repo.FindDailyResult(ctx, memory.ChallengeIDBlind75, "m-carol-b75", seedToday)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{memory.ChallengeIDBlind75}, cache.invalidated)
}

func TestResultService_RecordResult_DuplicateDayConflicts(t *testing.T) {
	t.Parallel()

	service, _, cache := newTestResultService(t)
	_, err := service.RecordResult(context.Background(), RecordResultInput{
		ChallengeID: memory.ChallengeIDBlind75,
		UserID:      "u-alice",
		Date:        seedToday,
		Completed:   false,
	})
	require.ErrorIs(t, err, ErrConflict)
	require.ErrorIs(t, err, challenge.ErrDuplicateDailyResult)
	assert.Empty(t, cache.invalidated)
}

func TestResultService_RecordResult_Validation(t *testing.T) {
	t.Parallel()

	service, _, _ := newTestResultService(t)
	ctx := context.Background()

	_, err := service.RecordResult(ctx, RecordResultInput{ChallengeID: memory.ChallengeIDBlind75, UserID: "u-dave", Date: seedToday, SubmissionsCount: -1})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = service.RecordResult(ctx, RecordResultInput{ChallengeID: memory.ChallengeIDBlind75, UserID: "u-erin", Date: seedToday})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestResultService_RecordPenalty(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, repo, cache := newTestResultService(t)

	_, err := service.RecordPenalty(ctx, RecordPenaltyInput{
		ChallengeID: memory.ChallengeIDBlind75,
		UserID:      "u-dave",
		Date:        seedToday,
		Amount:      decimal.RequireFromString("2.50"),
		Reason:      " missed daily target ",
	})
	require.NoError(t, err)

	dave, _, err := repo.FindMembership(ctx, memory.ChallengeIDBlind75, "u-dave")
	require.NoError(t, err)
	assert.True(t, dave.TotalPenalties.Equal(decimal.RequireFromString("2.5")))

	penalties, err := repo.FindPenalties(ctx, dave.ID)
	require.NoError(t, err)
	require.Len(t, penalties, 1)
	assert.Equal(t, "missed daily target", penalties[0].Reason)
	assert.Equal(t, []string{memory.ChallengeIDBlind75}, cache.invalidated)

	_, err = service.RecordPenalty(ctx, RecordPenaltyInput{ChallengeID: memory.ChallengeIDBlind75, UserID: "u-dave", Date: seedToday, Amount: decimal.Zero})
	require.ErrorIs(t, err, ErrInvalidInput)
}
