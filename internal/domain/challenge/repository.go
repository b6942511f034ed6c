package challenge

import (
	"context"
	"time"
)

// Repository is the read side of challenge persistence used by the
// aggregation use cases.
type Repository interface {
	GetChallenge(ctx context.Context, challengeID string) (Challenge, bool, error)
	ListActiveChallenges(ctx context.Context) ([]Challenge, error)
	FindActiveMemberships(ctx context.Context, challengeID string) ([]Membership, error)
	FindMembership(ctx context.Context, challengeID, userID string) (Membership, bool, error)
	ListMembershipsByUser(ctx context.Context, userID string) ([]Membership, error)
	// FindDailyResults returns results newest first. A limit of zero or less
	// returns the full history.
	FindDailyResults(ctx context.Context, membershipID string, limit int) ([]DailyResult, error)
	FindDailyResult(ctx context.Context, challengeID, membershipID string, date time.Time) (DailyResult, bool, error)
	FindPenalties(ctx context.Context, membershipID string) ([]Penalty, error)
}

// Writer records ranking-relevant events. Implementations reject a second
// result for the same (challenge, membership, day) with
// ErrDuplicateDailyResult.
type Writer interface {
	RecordDailyResult(ctx context.Context, result DailyResult) (DailyResult, error)
	RecordPenalty(ctx context.Context, penalty Penalty) (Penalty, error)
}
