package postgres

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

type challengeTableModel struct {
	ID                string          `db:"id"`
	Name              string          `db:"name"`
	Status            string          `db:"status"`
	StartDate         time.Time       `db:"start_date"`
	EndDate           sql.NullTime    `db:"end_date"`
	MinProblemsPerDay int             `db:"min_problems_per_day"`
	PenaltyAmount     decimal.Decimal `db:"penalty_amount"`
	CreatedAt         time.Time       `db:"created_at"`
}

type membershipTableModel struct {
	ID             string          `db:"id"`
	ChallengeID    string          `db:"challenge_id"`
	UserID         string          `db:"user_id"`
	Username       string          `db:"username"`
	PlatformHandle sql.NullString  `db:"platform_handle"`
	IsActive       bool            `db:"is_active"`
	CurrentStreak  int             `db:"current_streak"`
	LongestStreak  int             `db:"longest_streak"`
	TotalPenalties decimal.Decimal `db:"total_penalties"`
	JoinedAt       time.Time       `db:"joined_at"`
}

type dailyResultTableModel struct {
	ID               string    `db:"id"`
	ChallengeID      string    `db:"challenge_id"`
	MembershipID     string    `db:"membership_id"`
	ResultDate       time.Time `db:"result_date"`
	Completed        bool      `db:"completed"`
	SubmissionsCount int       `db:"submissions_count"`
	ProblemsSolved   int       `db:"problems_solved"`
	EvaluatedAt      time.Time `db:"evaluated_at"`
}

// dailyResultInsertModel carries the date as text so the server never shifts
// it across time zones.
type dailyResultInsertModel struct {
	ID               string    `db:"id"`
	ChallengeID      string    `db:"challenge_id"`
	MembershipID     string    `db:"membership_id"`
	ResultDate       string    `db:"result_date"`
	Completed        bool      `db:"completed"`
	SubmissionsCount int       `db:"submissions_count"`
	ProblemsSolved   int       `db:"problems_solved"`
	EvaluatedAt      time.Time `db:"evaluated_at"`
}

type penaltyTableModel struct {
	ID           string          `db:"id"`
	MembershipID string          `db:"membership_id"`
	Amount       decimal.Decimal `db:"amount"`
	PenaltyDate  time.Time       `db:"penalty_date"`
	Reason       sql.NullString  `db:"reason"`
	CreatedAt    time.Time       `db:"created_at"`
}

type penaltyInsertModel struct {
	ID           string          `db:"id"`
	MembershipID string          `db:"membership_id"`
	Amount       decimal.Decimal `db:"amount"`
	PenaltyDate  string          `db:"penalty_date"`
	Reason       string          `db:"reason"`
	CreatedAt    time.Time       `db:"created_at"`
}
