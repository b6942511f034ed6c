package usecase

import (
	"context"
	"testing"

	"github.com/riskibarqy/leetstreak/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/leetstreak/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaderboardWarmer_Warm_AllActiveChallenges(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := seededRepository(t)
	cache := newFakeLeaderboardCache()
	warmer := NewLeaderboardWarmer(repo, newTestLeaderboardService(repo, cache, true), 2, logging.NewNop())

	got, err := warmer.Warm(ctx, nil)
	require.NoError(t, err)

	require.Len(t, got.Tasks, 2)
	assert.Equal(t, 2, got.SuccessCount)
	assert.Zero(t, got.FailedCount)
	assert.Equal(t, memory.ChallengeIDBlind75, got.Tasks[0].ChallengeID)
	assert.Equal(t, 4, got.Tasks[0].Members)
	assert.Equal(t, memory.ChallengeIDDailyGrind, got.Tasks[1].ChallengeID)
	assert.Equal(t, 2, got.Tasks[1].Members)
	assert.Equal(t, 2, cache.sets)
}

func TestLeaderboardWarmer_Warm_ReportsMissingChallenge(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := seededRepository(t)
	cache := newFakeLeaderboardCache()
	warmer := NewLeaderboardWarmer(repo, newTestLeaderboardService(repo, cache, true), 4, logging.NewNop())

	got, err := warmer.Warm(ctx, []string{memory.ChallengeIDDailyGrind, "ghost", memory.ChallengeIDDailyGrind})
	require.NoError(t, err)

	require.Len(t, got.Tasks, 2)
	assert.Equal(t, 1, got.SuccessCount)
	assert.Equal(t, 1, got.FailedCount)
	assert.Equal(t, memory.ChallengeIDDailyGrind, got.Tasks[0].ChallengeID)
	assert.Equal(t, warmStatusSuccess, got.Tasks[0].Status)
	assert.Equal(t, "ghost", got.Tasks[1].ChallengeID)
	assert.Equal(t, warmStatusNotFound, got.Tasks[1].Status)
	assert.NotEmpty(t, got.Tasks[1].Message)
}

func TestLeaderboardWarmer_Warm_RejectsBlankID(t *testing.T) {
	t.Parallel()

	repo := seededRepository(t)
	warmer := NewLeaderboardWarmer(repo, newTestLeaderboardService(repo, newFakeLeaderboardCache(), true), 1, logging.NewNop())

	_, err := warmer.Warm(context.Background(), []string{memory.ChallengeIDBlind75, " "})
	require.ErrorIs(t, err, ErrInvalidInput)
}
