package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/leetstreak/internal/domain/challenge"
	"github.com/riskibarqy/leetstreak/internal/domain/ranking"
)

const (
	DefaultHeatmapDays = 90
	MaxHeatmapDays     = 366
)

type Heatmap struct {
	UserID           string
	From             time.Time
	To               time.Time
	ActiveDays       int
	TotalSubmissions int
	TotalSolved      int
	Cells            []ranking.HeatmapCell
}

type HeatmapService struct {
	repo  challenge.Repository
	clock Clock
}

func NewHeatmapService(repo challenge.Repository, clock Clock) *HeatmapService {
	return &HeatmapService{repo: repo, clock: clock}
}

// Get returns one cell per day for the last days days, today included,
// summed across all of the user's memberships. Zero days means the default
// window.
func (s *HeatmapService) Get(ctx context.Context, userID string, days int) (Heatmap, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HeatmapService.Get", userAttr(userID))
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Heatmap{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if days == 0 {
		days = DefaultHeatmapDays
	}
	if days < 1 || days > MaxHeatmapDays {
		return Heatmap{}, fmt.Errorf("%w: days must be between 1 and %d", ErrInvalidInput, MaxHeatmapDays)
	}

	memberships, err := s.repo.ListMembershipsByUser(ctx, userID)
	if err != nil {
		return Heatmap{}, fmt.Errorf("list memberships by user: %w", err)
	}

	var results []challenge.DailyResult
	for _, m := range memberships {
		// At most one result per day, so the newest days rows cover the window.
		rows, err := s.repo.FindDailyResults(ctx, m.ID, days)
		if err != nil {
			return Heatmap{}, fmt.Errorf("find daily results membership=%s: %w", m.ID, err)
		}
		results = append(results, ranking.DedupeByDay(rows)...)
	}

	to := s.clock.Today()
	from := to.AddDate(0, 0, -(days - 1))
	out := Heatmap{
		UserID: userID,
		From:   from,
		To:     to,
		Cells:  ranking.BuildHeatmap(results, from, to, s.clock.Location),
	}
	for _, cell := range out.Cells {
		out.TotalSubmissions += cell.Submissions
		out.TotalSolved += cell.ProblemsSolved
		if cell.Evaluated > 0 && cell.Completed > 0 {
			out.ActiveDays++
		}
	}
	return out, nil
}
