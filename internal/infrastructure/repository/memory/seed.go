package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/leetstreak/internal/domain/challenge"
	"github.com/riskibarqy/leetstreak/internal/domain/ranking"
	"github.com/shopspring/decimal"
)

const (
	ChallengeIDBlind75    = "blind-75-sprint"
	ChallengeIDDailyGrind = "daily-grind-2026"
)

type seedMember struct {
	id, userID, username, handle string
	// pattern is read oldest day first; '1' completed, '0' failed, '-' not evaluated.
	pattern string
}

var seedMembers = map[string][]seedMember{
	ChallengeIDBlind75: {
		{id: "m-alice-b75", userID: "u-alice", username: "alice", handle: "alice_codes", pattern: "11011111111111"},
		{id: "m-bob-b75", userID: "u-bob", username: "bob", handle: "bobby_tables", pattern: "11110011011111"},
		{id: "m-carol-b75", userID: "u-carol", username: "carol", handle: "carol_dp", pattern: "1111111111110-"},
		{id: "m-dave-b75", userID: "u-dave", username: "dave", handle: "dave_graphs", pattern: "--------------"},
	},
	ChallengeIDDailyGrind: {
		{id: "m-alice-dg", userID: "u-alice", username: "alice", handle: "alice_codes", pattern: "0111111"},
		{id: "m-erin-dg", userID: "u-erin", username: "erin", handle: "erin_bits", pattern: "1101101"},
	},
}

// Seed loads a small demo dataset whose last evaluated day is today in loc.
func Seed(ctx context.Context, repo *ChallengeRepository, today time.Time, loc *time.Location) error {
	today = ranking.TruncateDay(today, loc)
	penaltyAmount := decimal.RequireFromString("2.50")

	challenges := []challenge.Challenge{
		{ID: ChallengeIDBlind75, Name: "Blind 75 Sprint", Status: challenge.StatusActive, StartDate: today.AddDate(0, 0, -13), MinProblemsPerDay: 1, PenaltyAmount: penaltyAmount},
		{ID: ChallengeIDDailyGrind, Name: "Daily Grind", Status: challenge.StatusActive, StartDate: today.AddDate(0, 0, -6), MinProblemsPerDay: 2, PenaltyAmount: decimal.NewFromInt(5)},
	}

	for _, item := range challenges {
		if err := repo.AddChallenge(item); err != nil {
			return fmt.Errorf("seed challenge %s: %w", item.ID, err)
		}

		for _, sm := range seedMembers[item.ID] {
			current, longest := streaks(sm.pattern)
			m := challenge.Membership{
				ID:             sm.id,
				ChallengeID:    item.ID,
				UserID:         sm.userID,
				Username:       sm.username,
				PlatformHandle: sm.handle,
				Active:         true,
				CurrentStreak:  current,
				LongestStreak:  longest,
				JoinedAt:       item.StartDate,
			}
			if err := repo.AddMembership(m); err != nil {
				return fmt.Errorf("seed membership %s: %w", m.ID, err)
			}

			for offset, mark := range sm.pattern {
				if mark == '-' {
					continue
				}
				date := item.StartDate.AddDate(0, 0, offset)
				completed := mark == '1'
				solved := 0
				if completed {
					solved = item.MinProblemsPerDay
				}
				if _, err := repo.RecordDailyResult(ctx, challenge.DailyResult{
					ChallengeID:      item.ID,
					MembershipID:     m.ID,
					Date:             date,
					Completed:        completed,
					SubmissionsCount: solved + offset%3,
					ProblemsSolved:   solved,
					EvaluatedAt:      date.Add(23*time.Hour + 55*time.Minute),
				}); err != nil {
					return fmt.Errorf("seed result %s: %w", m.ID, err)
				}
				if !completed {
					if _, err := repo.RecordPenalty(ctx, challenge.Penalty{
						MembershipID: m.ID,
						Amount:       item.PenaltyAmount,
						Date:         date,
						Reason:       "missed daily target",
					}); err != nil {
						return fmt.Errorf("seed penalty %s: %w", m.ID, err)
					}
				}
			}
		}
	}

	return nil
}

func streaks(pattern string) (current, longest int) {
	run := 0
	for _, mark := range pattern {
		switch mark {
		case '1':
			run++
			if run > longest {
				longest = run
			}
		case '0':
			run = 0
		}
	}
	return run, longest
}
