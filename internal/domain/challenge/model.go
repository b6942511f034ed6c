package challenge

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var ErrDuplicateDailyResult = errors.New("daily result already recorded for date")

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Challenge is a timed practice run that members join.
type Challenge struct {
	ID                string
	Name              string
	Status            Status
	StartDate         time.Time
	EndDate           *time.Time
	MinProblemsPerDay int
	PenaltyAmount     decimal.Decimal
	CreatedAt         time.Time
}

func (c Challenge) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("challenge id is required")
	}
	if c.Name == "" {
		return fmt.Errorf("challenge name is required")
	}
	if c.MinProblemsPerDay < 1 {
		return fmt.Errorf("challenge min problems per day must be positive")
	}
	if c.PenaltyAmount.IsNegative() {
		return fmt.Errorf("challenge penalty amount must not be negative")
	}
	if c.EndDate != nil && c.EndDate.Before(c.StartDate) {
		return fmt.Errorf("challenge end date is before start date")
	}

	return nil
}

// Membership is one user's participation in one challenge.
type Membership struct {
	ID             string
	ChallengeID    string
	UserID         string
	Username       string
	PlatformHandle string
	Active         bool
	CurrentStreak  int
	LongestStreak  int
	TotalPenalties decimal.Decimal
	JoinedAt       time.Time
}

// DailyResult is the evaluation of one membership for one calendar day.
// Date carries no time-of-day component.
type DailyResult struct {
	ID               string
	ChallengeID      string
	MembershipID     string
	Date             time.Time
	Completed        bool
	SubmissionsCount int
	ProblemsSolved   int
	EvaluatedAt      time.Time
}

// Penalty is a charge against a membership for a failed day.
type Penalty struct {
	ID           string
	MembershipID string
	Amount       decimal.Decimal
	Date         time.Time
	Reason       string
	CreatedAt    time.Time
}

// LeaderboardEntry is a ranked, derived summary of one membership. It is the
// payload stored in the leaderboard cache.
type LeaderboardEntry struct {
	MembershipID   string          `json:"membership_id"`
	UserID         string          `json:"user_id"`
	Username       string          `json:"username"`
	PlatformHandle string          `json:"platform_handle"`
	CurrentStreak  int             `json:"current_streak"`
	LongestStreak  int             `json:"longest_streak"`
	TotalPenalties decimal.Decimal `json:"total_penalties"`
	CompletedDays  int             `json:"completed_days"`
	TotalDays      int             `json:"total_days"`
	CompletionRate float64         `json:"completion_rate"`
}
