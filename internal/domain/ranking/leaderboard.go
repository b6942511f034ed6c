package ranking

import (
	"sort"

	"github.com/riskibarqy/leetstreak/internal/domain/challenge"
	"github.com/shopspring/decimal"
)

// MemberResults pairs an active membership with its full result history.
type MemberResults struct {
	Membership challenge.Membership
	Results    []challenge.DailyResult
}

// BuildLeaderboard ranks members by current streak, then longest streak, then
// fewest penalties. Members equal on all three keep their input order.
func BuildLeaderboard(members []MemberResults) []challenge.LeaderboardEntry {
	entries := make([]challenge.LeaderboardEntry, 0, len(members))
	for _, member := range members {
		m := normalizeMembership(member.Membership)
		stats := Summarize(member.Results)
		entries = append(entries, challenge.LeaderboardEntry{
			MembershipID:   m.ID,
			UserID:         m.UserID,
			Username:       m.Username,
			PlatformHandle: m.PlatformHandle,
			CurrentStreak:  m.CurrentStreak,
			LongestStreak:  m.LongestStreak,
			TotalPenalties: m.TotalPenalties,
			CompletedDays:  stats.CompletedDays,
			TotalDays:      stats.TotalDays,
			CompletionRate: stats.CompletionRate,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return RanksBefore(entries[i], entries[j])
	})
	return entries
}

// RanksBefore reports whether a is strictly ahead of b.
func RanksBefore(a, b challenge.LeaderboardEntry) bool {
	if a.CurrentStreak != b.CurrentStreak {
		return a.CurrentStreak > b.CurrentStreak
	}
	if a.LongestStreak != b.LongestStreak {
		return a.LongestStreak > b.LongestStreak
	}
	return a.TotalPenalties.LessThan(b.TotalPenalties)
}

// Rank returns the 1-based position of membershipID, or 0 when absent.
func Rank(entries []challenge.LeaderboardEntry, membershipID string) int {
	for i, entry := range entries {
		if entry.MembershipID == membershipID {
			return i + 1
		}
	}
	return 0
}

// normalizeMembership clamps counters that violate the membership invariants
// so ranking never sees them.
func normalizeMembership(m challenge.Membership) challenge.Membership {
	if m.CurrentStreak < 0 {
		m.CurrentStreak = 0
	}
	if m.LongestStreak < m.CurrentStreak {
		m.LongestStreak = m.CurrentStreak
	}
	if m.TotalPenalties.IsNegative() {
		m.TotalPenalties = decimal.Zero
	}
	return m
}
