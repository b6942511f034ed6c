package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/leetstreak/internal/domain/challenge"
	"github.com/riskibarqy/leetstreak/internal/platform/logging"
)

const (
	warmStatusSuccess  = "success"
	warmStatusNotFound = "not_found"
	warmStatusFailed   = "failed"
)

type WarmTaskResult struct {
	ChallengeID string `json:"challenge_id"`
	Status      string `json:"status"`
	Members     int    `json:"members"`
	Message     string `json:"message,omitempty"`
	DurationMs  int64  `json:"duration_ms"`
}

type WarmResult struct {
	Tasks        []WarmTaskResult `json:"tasks"`
	SuccessCount int              `json:"success_count"`
	FailedCount  int              `json:"failed_count"`
}

type leaderboardRefresher interface {
	Refresh(ctx context.Context, challengeID string) ([]challenge.LeaderboardEntry, error)
}

// LeaderboardWarmer recomputes leaderboards ahead of reads, e.g. after the
// daily evaluation job has written a batch of results.
type LeaderboardWarmer struct {
	repo      challenge.Repository
	refresher leaderboardRefresher
	workers   int
	logger    *logging.Logger
}

func NewLeaderboardWarmer(repo challenge.Repository, refresher leaderboardRefresher, workers int, logger *logging.Logger) *LeaderboardWarmer {
	if workers < 1 {
		workers = 4
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &LeaderboardWarmer{
		repo:      repo,
		refresher: refresher,
		workers:   workers,
		logger:    logger.Named("leaderboard_warmer"),
	}
}

// Warm refreshes the given challenges, or every active challenge when ids is
// empty. Per-challenge failures are reported in the result, not returned.
func (w *LeaderboardWarmer) Warm(ctx context.Context, challengeIDs []string) (WarmResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardWarmer.Warm")
	defer span.End()

	ids, err := w.resolveTargets(ctx, challengeIDs)
	if err != nil {
		return WarmResult{}, err
	}
	if len(ids) == 0 {
		return WarmResult{Tasks: []WarmTaskResult{}}, nil
	}

	pool, err := ants.NewPool(min(w.workers, len(ids)))
	if err != nil {
		return WarmResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan WarmTaskResult, len(ids))
	var failed atomic.Int32
	var workers sync.WaitGroup
	for _, challengeID := range ids {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := WarmTaskResult{ChallengeID: challengeID, Status: warmStatusSuccess}
			entries, err := w.refresher.Refresh(ctx, challengeID)
			switch {
			case errors.Is(err, ErrNotFound):
				row.Status = warmStatusNotFound
				row.Message = err.Error()
				failed.Add(1)
			case err != nil:
				row.Status = warmStatusFailed
				row.Message = err.Error()
				failed.Add(1)
				w.logger.WarnContext(ctx, "warm leaderboard failed", "challenge_id", challengeID, "error", err)
			default:
				row.Members = len(entries)
			}
			row.DurationMs = time.Since(start).Milliseconds()
			results <- row
		}); err != nil {
			workers.Done()
			return WarmResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	out := WarmResult{Tasks: make([]WarmTaskResult, 0, len(ids))}
	for row := range results {
		out.Tasks = append(out.Tasks, row)
	}
	sort.SliceStable(out.Tasks, func(i, j int) bool {
		return out.Tasks[i].ChallengeID < out.Tasks[j].ChallengeID
	})
	out.FailedCount = int(failed.Load())
	out.SuccessCount = len(out.Tasks) - out.FailedCount

	w.logger.InfoContext(ctx, "leaderboards warmed", "success", out.SuccessCount, "failed", out.FailedCount)
	return out, nil
}

func (w *LeaderboardWarmer) resolveTargets(ctx context.Context, challengeIDs []string) ([]string, error) {
	seen := make(map[string]struct{}, len(challengeIDs))
	ids := make([]string, 0, len(challengeIDs))
	for _, raw := range challengeIDs {
		challengeID := strings.TrimSpace(raw)
		if challengeID == "" {
			return nil, fmt.Errorf("%w: challenge id must not be blank", ErrInvalidInput)
		}
		if _, dup := seen[challengeID]; dup {
			continue
		}
		seen[challengeID] = struct{}{}
		ids = append(ids, challengeID)
	}
	if len(ids) > 0 {
		return ids, nil
	}

	active, err := w.repo.ListActiveChallenges(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active challenges: %w", err)
	}
	for _, item := range active {
		ids = append(ids, item.ID)
	}
	return ids, nil
}
