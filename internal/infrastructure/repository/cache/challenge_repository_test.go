package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/leetstreak/internal/domain/challenge"
	challengemock "github.com/riskibarqy/leetstreak/internal/mocks/domain/challenge"
	basecache "github.com/riskibarqy/leetstreak/internal/platform/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestChallengeRepository_GetChallengeCachesExistenceAndAbsence(t *testing.T) {
	t.Parallel()

	next := challengemock.NewRepository(t)
	next.On("GetChallenge", mock.Anything, "c1").Return(challenge.Challenge{ID: "c1", Name: "Blind 75"}, true, nil).Once()
	next.On("GetChallenge", mock.Anything, "missing").Return(challenge.Challenge{}, false, nil).Once()

	repo := NewChallengeRepository(next, basecache.NewStore(time.Minute))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		item, exists, err := repo.GetChallenge(ctx, "c1")
		require.NoError(t, err)
		assert.True(t, exists)
		assert.Equal(t, "Blind 75", item.Name)

		_, exists, err = repo.GetChallenge(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, exists)
	}
}

func TestChallengeRepository_ErrorsAreNotCached(t *testing.T) {
	t.Parallel()

	next := challengemock.NewRepository(t)
	next.On("ListActiveChallenges", mock.Anything).Return(nil, errors.New("db down")).Once()
	next.On("ListActiveChallenges", mock.Anything).Return([]challenge.Challenge{{ID: "c1"}}, nil).Once()

	repo := NewChallengeRepository(next, basecache.NewStore(time.Minute))
	ctx := context.Background()

	_, err := repo.ListActiveChallenges(ctx)
	require.Error(t, err)

	items, err := repo.ListActiveChallenges(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	items, err = repo.ListActiveChallenges(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestChallengeRepository_DelegatesUncachedReads(t *testing.T) {
	t.Parallel()

	next := challengemock.NewRepository(t)
	next.On("FindActiveMemberships", mock.Anything, "c1").Return([]challenge.Membership{{ID: "m1"}}, nil).Twice()

	repo := NewChallengeRepository(next, basecache.NewStore(time.Minute))
	for i := 0; i < 2; i++ {
		items, err := repo.FindActiveMemberships(context.Background(), "c1")
		require.NoError(t, err)
		assert.Len(t, items, 1)
	}
}
