package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/leetstreak/internal/domain/challenge"
	"github.com/riskibarqy/leetstreak/internal/domain/ranking"
	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc/pool"
)

type DashboardChallenge struct {
	ChallengeID    string
	ChallengeName  string
	MembershipID   string
	CurrentStreak  int
	LongestStreak  int
	TotalPenalties decimal.Decimal
	Rank           int
	Participants   int
	Today          *ranking.TodayStatus
}

type Dashboard struct {
	UserID            string
	Today             time.Time
	ActiveChallenges  int
	CompletedToday    int
	PendingToday      int
	BestCurrentStreak int
	BestLongestStreak int
	TotalPenalties    decimal.Decimal
	Challenges        []DashboardChallenge
}

type leaderboardReader interface {
	Get(ctx context.Context, challengeID string) ([]challenge.LeaderboardEntry, error)
}

type DashboardService struct {
	repo         challenge.Repository
	leaderboards leaderboardReader
	clock        Clock
	concurrency  int
}

func NewDashboardService(repo challenge.Repository, leaderboards leaderboardReader, clock Clock, concurrency int) *DashboardService {
	if concurrency < 1 {
		concurrency = 4
	}
	return &DashboardService{
		repo:         repo,
		leaderboards: leaderboards,
		clock:        clock,
		concurrency:  concurrency,
	}
}

// Get summarizes the user's active memberships: today's status, leaderboard
// rank and totals across challenges.
func (s *DashboardService) Get(ctx context.Context, userID string) (Dashboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.Get", userAttr(userID))
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Dashboard{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	memberships, err := s.repo.ListMembershipsByUser(ctx, userID)
	if err != nil {
		return Dashboard{}, fmt.Errorf("list memberships by user: %w", err)
	}

	active := make([]challenge.Membership, 0, len(memberships))
	for _, m := range memberships {
		if m.Active {
			active = append(active, m)
		}
	}

	today := s.clock.Today()
	rows := make([]DashboardChallenge, len(active))
	p := pool.New().WithContext(ctx).WithMaxGoroutines(s.concurrency).WithCancelOnError().WithFirstError()
	for i, m := range active {
		p.Go(func(ctx context.Context) error {
			row, err := s.buildChallengeRow(ctx, m, today)
			if err != nil {
				return err
			}
			rows[i] = row
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return Dashboard{}, err
	}

	out := Dashboard{
		UserID:           userID,
		Today:            today,
		ActiveChallenges: len(rows),
		TotalPenalties:   decimal.Zero,
		Challenges:       rows,
	}
	for _, row := range rows {
		out.TotalPenalties = out.TotalPenalties.Add(row.TotalPenalties)
		out.BestCurrentStreak = max(out.BestCurrentStreak, row.CurrentStreak)
		out.BestLongestStreak = max(out.BestLongestStreak, row.LongestStreak)
		switch {
		case row.Today == nil:
			out.PendingToday++
		case row.Today.Completed:
			out.CompletedToday++
		}
	}
	return out, nil
}

func (s *DashboardService) buildChallengeRow(ctx context.Context, m challenge.Membership, today time.Time) (DashboardChallenge, error) {
	item, exists, err := s.repo.GetChallenge(ctx, m.ChallengeID)
	if err != nil {
		return DashboardChallenge{}, fmt.Errorf("get challenge: %w", err)
	}
	if !exists {
		return DashboardChallenge{}, fmt.Errorf("%w: challenge=%s", ErrNotFound, m.ChallengeID)
	}

	result, found, err := s.repo.FindDailyResult(ctx, m.ChallengeID, m.ID, today)
	if err != nil {
		return DashboardChallenge{}, fmt.Errorf("find today's result: %w", err)
	}

	entries, err := s.leaderboards.Get(ctx, m.ChallengeID)
	if err != nil {
		return DashboardChallenge{}, fmt.Errorf("get leaderboard: %w", err)
	}

	return DashboardChallenge{
		ChallengeID:    item.ID,
		ChallengeName:  item.Name,
		MembershipID:   m.ID,
		CurrentStreak:  m.CurrentStreak,
		LongestStreak:  m.LongestStreak,
		TotalPenalties: m.TotalPenalties,
		Rank:           ranking.Rank(entries, m.ID),
		Participants:   len(entries),
		Today:          ranking.ProjectToday(m, result, found),
	}, nil
}
