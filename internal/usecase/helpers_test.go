package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/leetstreak/internal/domain/challenge"
	"github.com/riskibarqy/leetstreak/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/leetstreak/internal/platform/logging"
	"github.com/stretchr/testify/require"
)

var seedToday = time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

func fixedClock() Clock {
	return Clock{
		Now:      func() time.Time { return seedToday.Add(18 * time.Hour) },
		Location: time.UTC,
	}
}

func seededRepository(t *testing.T) *memory.ChallengeRepository {
	t.Helper()

	repo := memory.NewChallengeRepository(nil)
	require.NoError(t, memory.Seed(context.Background(), repo, seedToday, time.UTC))
	return repo
}

type fakeLeaderboardCache struct {
	mu          sync.Mutex
	entries     map[string][]challenge.LeaderboardEntry
	ttls        map[string]time.Duration
	gets        int
	sets        int
	invalidated []string
}

func newFakeLeaderboardCache() *fakeLeaderboardCache {
	return &fakeLeaderboardCache{
		entries: make(map[string][]challenge.LeaderboardEntry),
		ttls:    make(map[string]time.Duration),
	}
}

func (c *fakeLeaderboardCache) GetLeaderboard(_ context.Context, challengeID string) ([]challenge.LeaderboardEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	entries, ok := c.entries[challengeID]
	return entries, ok
}

func (c *fakeLeaderboardCache) SetLeaderboard(_ context.Context, challengeID string, entries []challenge.LeaderboardEntry, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.entries[challengeID] = entries
	c.ttls[challengeID] = ttl
}

func (c *fakeLeaderboardCache) InvalidateLeaderboard(_ context.Context, challengeID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, challengeID)
	c.invalidated = append(c.invalidated, challengeID)
}

func newTestLeaderboardService(repo challenge.Repository, cache LeaderboardCache, strict bool) *LeaderboardService {
	return NewLeaderboardService(repo, cache, LeaderboardServiceConfig{
		TTL:              time.Minute,
		LoadConcurrency:  2,
		StrictInvariants: strict,
	}, logging.NewNop())
}
