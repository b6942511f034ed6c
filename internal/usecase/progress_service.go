package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/leetstreak/internal/domain/challenge"
	"github.com/riskibarqy/leetstreak/internal/domain/ranking"
)

const (
	DefaultProgressLimit = 30
	MaxProgressLimit     = 366
)

type ProgressService struct {
	repo challenge.Repository
}

func NewProgressService(repo challenge.Repository) *ProgressService {
	return &ProgressService{repo: repo}
}

// Get aggregates one member's most recent limit results. A limit of zero
// covers the full history.
func (s *ProgressService) Get(ctx context.Context, challengeID, userID string, limit int) (ranking.Progress, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProgressService.Get", challengeAttr(challengeID), userAttr(userID))
	defer span.End()

	challengeID = strings.TrimSpace(challengeID)
	userID = strings.TrimSpace(userID)
	if challengeID == "" || userID == "" {
		return ranking.Progress{}, fmt.Errorf("%w: challenge id and user id are required", ErrInvalidInput)
	}
	if limit < 0 || limit > MaxProgressLimit {
		return ranking.Progress{}, fmt.Errorf("%w: limit must be between 0 and %d", ErrInvalidInput, MaxProgressLimit)
	}

	membership, exists, err := s.repo.FindMembership(ctx, challengeID, userID)
	if err != nil {
		return ranking.Progress{}, fmt.Errorf("find membership: %w", err)
	}
	if !exists {
		return ranking.Progress{}, fmt.Errorf("%w: membership challenge=%s user=%s", ErrNotFound, challengeID, userID)
	}

	results, err := s.repo.FindDailyResults(ctx, membership.ID, limit)
	if err != nil {
		return ranking.Progress{}, fmt.Errorf("find daily results: %w", err)
	}
	penalties, err := s.repo.FindPenalties(ctx, membership.ID)
	if err != nil {
		return ranking.Progress{}, fmt.Errorf("find penalties: %w", err)
	}

	return ranking.BuildProgress(membership, results, penalties), nil
}
