package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/riskibarqy/leetstreak/internal/domain/challenge"
	"github.com/riskibarqy/leetstreak/internal/infrastructure/rediscache"
	basecache "github.com/riskibarqy/leetstreak/internal/platform/cache"
	"github.com/riskibarqy/leetstreak/internal/platform/logging"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntries() []challenge.LeaderboardEntry {
	return []challenge.LeaderboardEntry{
		{MembershipID: "m1", UserID: "u1", Username: "alice", PlatformHandle: "alice_lc", CurrentStreak: 5, LongestStreak: 10, TotalPenalties: decimal.RequireFromString("2.50"), CompletedDays: 9, TotalDays: 12, CompletionRate: 75},
		{MembershipID: "m2", UserID: "u2", Username: "bob", PlatformHandle: "bob_lc", CurrentStreak: 5, LongestStreak: 10, TotalPenalties: decimal.NewFromInt(5), CompletedDays: 1, TotalDays: 3, CompletionRate: 33.33},
	}
}

func assertEntriesEqual(t *testing.T, want, got []challenge.LeaderboardEntry) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Truef(t, want[i].TotalPenalties.Equal(got[i].TotalPenalties), "entry %d penalties: want %s got %s", i, want[i].TotalPenalties, got[i].TotalPenalties)
		w, g := want[i], got[i]
		w.TotalPenalties, g.TotalPenalties = decimal.Zero, decimal.Zero
		assert.Equal(t, w, g, "entry %d", i)
	}
}

type brokenDurable struct{}

func (brokenDurable) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("read tcp: connection reset by peer")
}

func (brokenDurable) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("read tcp: connection reset by peer")
}

func (brokenDurable) Delete(context.Context, string) error {
	return errors.New("read tcp: connection reset by peer")
}

func (brokenDurable) IsReady() bool { return true }

func newRedisBackedCache(t *testing.T) (*LeaderboardCache, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client, err := rediscache.New(rediscache.Config{URL: "redis://" + server.Addr()}, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(client.Close)
	client.Start()
	require.Eventually(t, client.IsReady, 2*time.Second, 10*time.Millisecond)

	tiered := basecache.NewTiered(basecache.NewStore(DefaultLeaderboardTTL), client, logging.NewNop())
	return NewLeaderboardCache(tiered, DefaultLeaderboardTTL, logging.NewNop()), server
}

func TestLeaderboardCache_SetThenGetWithHealthyRedis(t *testing.T) {
	t.Parallel()

	cache, server := newRedisBackedCache(t)
	ctx := context.Background()
	entries := sampleEntries()

	cache.SetLeaderboard(ctx, "c1", entries, 0)

	got, ok := cache.GetLeaderboard(ctx, "c1")
	require.True(t, ok)
	assertEntriesEqual(t, entries, got)
	assert.True(t, server.Exists("leaderboard:c1"))
	assert.Equal(t, DefaultLeaderboardTTL, server.TTL("leaderboard:c1"))

	stored, err := server.Get("leaderboard:c1")
	require.NoError(t, err)
	assert.Contains(t, stored, `"platform_handle":"alice_lc"`)
	assert.Contains(t, stored, `"completion_rate":33.33`)
}

func TestLeaderboardCache_ExpiresInRedis(t *testing.T) {
	t.Parallel()

	cache, server := newRedisBackedCache(t)
	ctx := context.Background()

	cache.SetLeaderboard(ctx, "c1", sampleEntries(), 60*time.Second)
	server.FastForward(59 * time.Second)
	_, ok := cache.GetLeaderboard(ctx, "c1")
	assert.True(t, ok)

	server.FastForward(time.Second)
	_, ok = cache.GetLeaderboard(ctx, "c1")
	assert.False(t, ok, "a redis miss is a miss even though the local copy is still fresh")
}

func TestLeaderboardCache_InvalidateTwice(t *testing.T) {
	t.Parallel()

	cache, server := newRedisBackedCache(t)
	ctx := context.Background()

	cache.SetLeaderboard(ctx, "c1", sampleEntries(), 0)
	cache.SetLeaderboard(ctx, "c2", sampleEntries(), 0)
	cache.InvalidateLeaderboard(ctx, "c1")
	cache.InvalidateLeaderboard(ctx, "c1")

	_, ok := cache.GetLeaderboard(ctx, "c1")
	assert.False(t, ok)
	assert.False(t, server.Exists("leaderboard:c1"))
	_, ok = cache.GetLeaderboard(ctx, "c2")
	assert.True(t, ok, "keys are namespaced per challenge")
}

func TestLeaderboardCache_MalformedPayloadIsMiss(t *testing.T) {
	t.Parallel()

	cache, server := newRedisBackedCache(t)
	require.NoError(t, server.Set("leaderboard:c1", "{not json"))

	got, ok := cache.GetLeaderboard(context.Background(), "c1")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestLeaderboardCache_EmptyLeaderboardIsAHit(t *testing.T) {
	t.Parallel()

	cache, _ := newRedisBackedCache(t)
	ctx := context.Background()

	cache.SetLeaderboard(ctx, "c1", nil, 0)

	got, ok := cache.GetLeaderboard(ctx, "c1")
	assert.True(t, ok)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestLeaderboardCache_DurableErrorsFallBackLocally(t *testing.T) {
	t.Parallel()

	tiered := basecache.NewTiered(basecache.NewStore(DefaultLeaderboardTTL), brokenDurable{}, logging.NewNop())
	cache := NewLeaderboardCache(tiered, 0, logging.NewNop())
	ctx := context.Background()
	entries := sampleEntries()

	cache.SetLeaderboard(ctx, "c1", entries, 0)

	got, ok := cache.GetLeaderboard(ctx, "c1")
	require.True(t, ok)
	assertEntriesEqual(t, entries, got)

	cache.InvalidateLeaderboard(ctx, "c1")
	cache.InvalidateLeaderboard(ctx, "c1")
	_, ok = cache.GetLeaderboard(ctx, "c1")
	assert.False(t, ok)
}

func TestLeaderboardCache_RedisNeverConnected(t *testing.T) {
	t.Parallel()

	client, err := rediscache.New(rediscache.Config{URL: "redis://127.0.0.1:1"}, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(client.Close)

	tiered := basecache.NewTiered(basecache.NewStore(DefaultLeaderboardTTL), client, logging.NewNop())
	cache := NewLeaderboardCache(tiered, 0, logging.NewNop())
	ctx := context.Background()

	_, ok := cache.GetLeaderboard(ctx, "c1")
	assert.False(t, ok)

	cache.SetLeaderboard(ctx, "c1", sampleEntries(), 0)
	got, ok := cache.GetLeaderboard(ctx, "c1")
	require.True(t, ok)
	assertEntriesEqual(t, sampleEntries(), got)
}

func TestLeaderboardKey(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "leaderboard:abc", LeaderboardKey("abc"))
}
