package ranking

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/leetstreak/internal/domain/challenge"
)

var ErrInvariantViolation = errors.New("aggregation invariant violated")

// ValidateMembership checks the counters a membership must satisfy.
func ValidateMembership(m challenge.Membership) error {
	switch {
	case m.CurrentStreak < 0:
		return fmt.Errorf("%w: membership %s current streak %d is negative", ErrInvariantViolation, m.ID, m.CurrentStreak)
	case m.LongestStreak < 0:
		return fmt.Errorf("%w: membership %s longest streak %d is negative", ErrInvariantViolation, m.ID, m.LongestStreak)
	case m.LongestStreak < m.CurrentStreak:
		return fmt.Errorf("%w: membership %s longest streak %d below current %d", ErrInvariantViolation, m.ID, m.LongestStreak, m.CurrentStreak)
	case m.TotalPenalties.IsNegative():
		return fmt.Errorf("%w: membership %s total penalties %s is negative", ErrInvariantViolation, m.ID, m.TotalPenalties)
	}
	return nil
}

// ValidateResults checks counters and day truncation of raw results.
func ValidateResults(results []challenge.DailyResult) error {
	for _, result := range results {
		switch {
		case !IsDay(result.Date):
			return fmt.Errorf("%w: result %s date %s is not truncated to a day", ErrInvariantViolation, result.ID, result.Date)
		case result.SubmissionsCount < 0:
			return fmt.Errorf("%w: result %s submissions count is negative", ErrInvariantViolation, result.ID)
		case result.ProblemsSolved < 0:
			return fmt.Errorf("%w: result %s problems solved is negative", ErrInvariantViolation, result.ID)
		}
	}
	return nil
}

// Validate checks every member and its results, returning the first violation.
func Validate(members []MemberResults) error {
	for _, member := range members {
		if err := ValidateMembership(member.Membership); err != nil {
			return err
		}
		if err := ValidateResults(member.Results); err != nil {
			return err
		}
	}
	return nil
}
