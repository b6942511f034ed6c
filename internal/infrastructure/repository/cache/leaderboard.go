package cache

import (
	"bytes"
	"context"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/leetstreak/internal/domain/challenge"
	basecache "github.com/riskibarqy/leetstreak/internal/platform/cache"
	"github.com/riskibarqy/leetstreak/internal/platform/logging"
	"github.com/valyala/bytebufferpool"
)

const (
	leaderboardKeyPrefix  = "leaderboard:"
	DefaultLeaderboardTTL = 60 * time.Second
)

func LeaderboardKey(challengeID string) string {
	return leaderboardKeyPrefix + challengeID
}

// LeaderboardCache stores ranked leaderboards in the tiered cache. It never
// returns an error: every failure degrades to "not cached".
type LeaderboardCache struct {
	tiered *basecache.Tiered
	ttl    time.Duration
	logger *logging.Logger
}

func NewLeaderboardCache(tiered *basecache.Tiered, ttl time.Duration, logger *logging.Logger) *LeaderboardCache {
	if ttl <= 0 {
		ttl = DefaultLeaderboardTTL
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &LeaderboardCache{tiered: tiered, ttl: ttl, logger: logger.Named("leaderboard_cache")}
}

func (c *LeaderboardCache) GetLeaderboard(ctx context.Context, challengeID string) ([]challenge.LeaderboardEntry, bool) {
	key := LeaderboardKey(challengeID)
	raw, outcome := c.tiered.Get(ctx, key)
	if !outcome.Found() {
		return nil, false
	}

	entries, err := decodeLeaderboard(raw)
	if err != nil {
		c.logger.WarnContext(ctx, "discarding malformed cached leaderboard", "key", key, "error", err)
		return nil, false
	}
	return entries, true
}

// SetLeaderboard caches entries for ttl, or the default TTL when ttl is not
// positive.
func (c *LeaderboardCache) SetLeaderboard(ctx context.Context, challengeID string, entries []challenge.LeaderboardEntry, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.ttl
	}

	key := LeaderboardKey(challengeID)
	raw, err := encodeLeaderboard(entries)
	if err != nil {
		c.logger.WarnContext(ctx, "encode leaderboard for cache failed", "key", key, "error", err)
		return
	}
	c.tiered.Set(ctx, key, raw, ttl)
}

func (c *LeaderboardCache) InvalidateLeaderboard(ctx context.Context, challengeID string) {
	c.tiered.Delete(ctx, LeaderboardKey(challengeID))
}

func encodeLeaderboard(entries []challenge.LeaderboardEntry) ([]byte, error) {
	if entries == nil {
		entries = []challenge.LeaderboardEntry{}
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(entries); err != nil {
		return nil, err
	}
	return bytes.Clone(bytes.TrimSpace(buf.B)), nil
}

func decodeLeaderboard(raw []byte) ([]challenge.LeaderboardEntry, error) {
	var entries []challenge.LeaderboardEntry
	if err := sonic.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []challenge.LeaderboardEntry{}
	}
	return entries, nil
}
