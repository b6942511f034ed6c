package cache

import (
	"context"

	"github.com/riskibarqy/leetstreak/internal/domain/challenge"
	basecache "github.com/riskibarqy/leetstreak/internal/platform/cache"
)

// ChallengeRepository caches challenge definitions, which change far less
// often than memberships and results. Everything else goes to next.
type ChallengeRepository struct {
	challenge.Repository
	cache *basecache.Store
}

func NewChallengeRepository(next challenge.Repository, cache *basecache.Store) *ChallengeRepository {
	return &ChallengeRepository{Repository: next, cache: cache}
}

func (r *ChallengeRepository) GetChallenge(ctx context.Context, challengeID string) (challenge.Challenge, bool, error) {
	key := "challenge:id:" + challengeID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.Repository.GetChallenge(ctx, challengeID)
		if err != nil {
			return nil, err
		}
		return cachedChallengeByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return challenge.Challenge{}, false, err
	}

	cached, _ := v.(cachedChallengeByID)
	return cached.value, cached.exists, nil
}

func (r *ChallengeRepository) ListActiveChallenges(ctx context.Context) ([]challenge.Challenge, error) {
	v, err := r.cache.GetOrLoad(ctx, "challenge:active", func(ctx context.Context) (any, error) {
		items, err := r.Repository.ListActiveChallenges(ctx)
		if err != nil {
			return nil, err
		}
		return append([]challenge.Challenge(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]challenge.Challenge)
	return append([]challenge.Challenge(nil), items...), nil
}

type cachedChallengeByID struct {
	value  challenge.Challenge
	exists bool
}
