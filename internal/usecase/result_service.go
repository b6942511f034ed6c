package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/leetstreak/internal/domain/challenge"
	"github.com/riskibarqy/leetstreak/internal/domain/ranking"
	"github.com/shopspring/decimal"
)

type RecordResultInput struct {
	ChallengeID      string
	UserID           string
	Date             time.Time
	Completed        bool
	SubmissionsCount int
	ProblemsSolved   int
}

type RecordPenaltyInput struct {
	ChallengeID string
	UserID      string
	Date        time.Time
	Amount      decimal.Decimal
	Reason      string
}

type leaderboardInvalidator interface {
	Invalidate(ctx context.Context, challengeID string) error
}

// ResultService ingests evaluated days and penalties from the evaluation job
// and drops the affected leaderboard from the cache.
type ResultService struct {
	repo         challenge.Repository
	writer       challenge.Writer
	leaderboards leaderboardInvalidator
	clock        Clock
}

func NewResultService(repo challenge.Repository, writer challenge.Writer, leaderboards leaderboardInvalidator, clock Clock) *ResultService {
	return &ResultService{repo: repo, writer: writer, leaderboards: leaderboards, clock: clock}
}

func (s *ResultService) RecordResult(ctx context.Context, input RecordResultInput) (challenge.DailyResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.RecordResult",
		challengeAttr(input.ChallengeID), userAttr(input.UserID))
	defer span.End()

	if input.SubmissionsCount < 0 || input.ProblemsSolved < 0 {
		return challenge.DailyResult{}, fmt.Errorf("%w: counts must not be negative", ErrInvalidInput)
	}
	membership, err := s.membership(ctx, input.ChallengeID, input.UserID)
	if err != nil {
		return challenge.DailyResult{}, err
	}

	saved, err := s.writer.RecordDailyResult(ctx, challenge.DailyResult{
		ChallengeID:      membership.ChallengeID,
		MembershipID:     membership.ID,
		Date:             ranking.TruncateDay(input.Date, s.clock.Location),
		Completed:        input.Completed,
		SubmissionsCount: input.SubmissionsCount,
		ProblemsSolved:   input.ProblemsSolved,
	})
	if err != nil {
		if errors.Is(err, challenge.ErrDuplicateDailyResult) {
			return challenge.DailyResult{}, fmt.Errorf("%w: %w", ErrConflict, err)
		}
		return challenge.DailyResult{}, fmt.Errorf("record daily result: %w", err)
	}

	if err := s.leaderboards.Invalidate(ctx, membership.ChallengeID); err != nil {
		return challenge.DailyResult{}, err
	}
	return saved, nil
}

func (s *ResultService) RecordPenalty(ctx context.Context, input RecordPenaltyInput) (challenge.Penalty, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.RecordPenalty",
		challengeAttr(input.ChallengeID), userAttr(input.UserID))
	defer span.End()

	if !input.Amount.IsPositive() {
		return challenge.Penalty{}, fmt.Errorf("%w: penalty amount must be positive", ErrInvalidInput)
	}
	membership, err := s.membership(ctx, input.ChallengeID, input.UserID)
	if err != nil {
		return challenge.Penalty{}, err
	}

	saved, err := s.writer.RecordPenalty(ctx, challenge.Penalty{
		MembershipID: membership.ID,
		Amount:       input.Amount,
		Date:         ranking.TruncateDay(input.Date, s.clock.Location),
		Reason:       strings.TrimSpace(input.Reason),
	})
	if err != nil {
		return challenge.Penalty{}, fmt.Errorf("record penalty: %w", err)
	}

	if err := s.leaderboards.Invalidate(ctx, membership.ChallengeID); err != nil {
		return challenge.Penalty{}, err
	}
	return saved, nil
}

func (s *ResultService) membership(ctx context.Context, challengeID, userID string) (challenge.Membership, error) {
	challengeID = strings.TrimSpace(challengeID)
	userID = strings.TrimSpace(userID)
	if challengeID == "" || userID == "" {
		return challenge.Membership{}, fmt.Errorf("%w: challenge id and user id are required", ErrInvalidInput)
	}

	m, exists, err := s.repo.FindMembership(ctx, challengeID, userID)
	if err != nil {
		return challenge.Membership{}, fmt.Errorf("find membership: %w", err)
	}
	if !exists {
		return challenge.Membership{}, fmt.Errorf("%w: membership challenge=%s user=%s", ErrNotFound, challengeID, userID)
	}
	return m, nil
}
