package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/leetstreak/internal/domain/challenge"
	"github.com/riskibarqy/leetstreak/internal/domain/ranking"
	"github.com/riskibarqy/leetstreak/internal/platform/logging"
	"github.com/riskibarqy/leetstreak/internal/platform/resilience"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"
)

// LeaderboardCache is the tiered leaderboard store. Its methods never fail;
// a missing or unreadable entry is reported as not found.
type LeaderboardCache interface {
	GetLeaderboard(ctx context.Context, challengeID string) ([]challenge.LeaderboardEntry, bool)
	SetLeaderboard(ctx context.Context, challengeID string, entries []challenge.LeaderboardEntry, ttl time.Duration)
	InvalidateLeaderboard(ctx context.Context, challengeID string)
}

const defaultRecomputeTimeout = 30 * time.Second

type LeaderboardServiceConfig struct {
	TTL             time.Duration
	LoadConcurrency int
	// RecomputeTimeout bounds a shared recomputation, which no longer follows
	// the cancellation of the request that started it.
	RecomputeTimeout time.Duration
	// StrictInvariants fails requests on corrupt input instead of logging it.
	StrictInvariants bool
}

type LeaderboardService struct {
	repo   challenge.Repository
	cache  LeaderboardCache
	cfg    LeaderboardServiceConfig
	logger *logging.Logger
	flight resilience.SingleFlight[[]challenge.LeaderboardEntry]
}

func NewLeaderboardService(repo challenge.Repository, cache LeaderboardCache, cfg LeaderboardServiceConfig, logger *logging.Logger) *LeaderboardService {
	if cfg.LoadConcurrency < 1 {
		cfg.LoadConcurrency = 8
	}
	if cfg.RecomputeTimeout <= 0 {
		cfg.RecomputeTimeout = defaultRecomputeTimeout
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &LeaderboardService{
		repo:   repo,
		cache:  cache,
		cfg:    cfg,
		logger: logger.Named("leaderboard"),
	}
}

// Get serves the cached leaderboard or recomputes it from persistence.
// Concurrent misses for one challenge share a single recomputation.
func (s *LeaderboardService) Get(ctx context.Context, challengeID string) ([]challenge.LeaderboardEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Get", challengeAttr(challengeID))
	defer span.End()

	challengeID = strings.TrimSpace(challengeID)
	if challengeID == "" {
		return nil, fmt.Errorf("%w: challenge id is required", ErrInvalidInput)
	}

	if entries, ok := s.cache.GetLeaderboard(ctx, challengeID); ok {
		span.SetAttributes(attribute.Bool("leaderboard.cache_hit", true))
		return entries, nil
	}
	span.SetAttributes(attribute.Bool("leaderboard.cache_hit", false))

	entries, err, _ := s.flight.Do(challengeID, func() ([]challenge.LeaderboardEntry, error) {
		flightCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.RecomputeTimeout)
		defer cancel()
		return s.Refresh(flightCtx, challengeID)
	})
	if err != nil {
		markSpanError(span, err)
		return nil, err
	}
	return entries, nil
}

// Refresh recomputes the leaderboard and stores it, bypassing any cached copy.
func (s *LeaderboardService) Refresh(ctx context.Context, challengeID string) ([]challenge.LeaderboardEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Refresh", challengeAttr(challengeID))
	defer span.End()

	_, exists, err := s.repo.GetChallenge(ctx, challengeID)
	if err != nil {
		return nil, fmt.Errorf("get challenge: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: challenge=%s", ErrNotFound, challengeID)
	}

	memberships, err := s.repo.FindActiveMemberships(ctx, challengeID)
	if err != nil {
		return nil, fmt.Errorf("find active memberships: %w", err)
	}

	members, err := s.loadMemberResults(ctx, memberships)
	if err != nil {
		return nil, err
	}

	if err := ranking.Validate(members); err != nil {
		if s.cfg.StrictInvariants {
			return nil, fmt.Errorf("rank challenge %s: %w", challengeID, err)
		}
		s.logger.ErrorContext(ctx, "leaderboard input violates invariants, normalizing", "challenge_id", challengeID, "error", err)
	}

	entries := ranking.BuildLeaderboard(members)
	s.cache.SetLeaderboard(ctx, challengeID, entries, s.cfg.TTL)
	span.SetAttributes(attribute.Int("leaderboard.members", len(entries)))
	return entries, nil
}

func (s *LeaderboardService) Invalidate(ctx context.Context, challengeID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Invalidate", challengeAttr(challengeID))
	defer span.End()

	challengeID = strings.TrimSpace(challengeID)
	if challengeID == "" {
		return fmt.Errorf("%w: challenge id is required", ErrInvalidInput)
	}

	s.cache.InvalidateLeaderboard(ctx, challengeID)
	return nil
}

func (s *LeaderboardService) loadMemberResults(ctx context.Context, memberships []challenge.Membership) ([]ranking.MemberResults, error) {
	members := make([]ranking.MemberResults, len(memberships))
	p := pool.New().WithContext(ctx).WithMaxGoroutines(s.cfg.LoadConcurrency).WithCancelOnError().WithFirstError()
	for i, m := range memberships {
		p.Go(func(ctx context.Context) error {
			results, err := s.repo.FindDailyResults(ctx, m.ID, 0)
			if err != nil {
				return fmt.Errorf("find daily results membership=%s: %w", m.ID, err)
			}
			members[i] = ranking.MemberResults{Membership: m, Results: results}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}
	return members, nil
}
