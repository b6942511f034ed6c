package ranking

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/leetstreak/internal/domain/challenge"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildProgress(t *testing.T) {
	t.Parallel()

	m := member("a", 3, 6, "10")
	penalties := []challenge.Penalty{{ID: "p1", MembershipID: "a", Amount: decimal.NewFromInt(10), Date: day(2026, 3, 2)}}
	results := []challenge.DailyResult{
		{Date: day(2026, 3, 1), Completed: true},
		{Date: day(2026, 3, 2), Completed: false},
		{Date: day(2026, 3, 3), Completed: true},
		{Date: day(2026, 3, 4), Completed: true},
	}

	progress := BuildProgress(m, results, penalties)

	assert.Equal(t, 3, progress.CurrentStreak)
	assert.Equal(t, 6, progress.LongestStreak)
	assert.True(t, progress.TotalPenalties.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, Stats{TotalDays: 4, CompletedDays: 3, FailedDays: 1, CompletionRate: 75}, progress.Stats)
	assert.Equal(t, penalties, progress.Penalties)
	require.Len(t, progress.Results, 4)
	assert.Equal(t, day(2026, 3, 4), progress.Results[0].Date)
}

func TestProjectToday(t *testing.T) {
	t.Parallel()

	m := member("a", 1, 1, "0")
	assert.Nil(t, ProjectToday(m, challenge.DailyResult{}, false))

	status := ProjectToday(m, challenge.DailyResult{Date: day(2026, 3, 1), Completed: true, ProblemsSolved: 2, SubmissionsCount: 5}, true)
	require.NotNil(t, status)
	assert.True(t, status.Completed)
	assert.Equal(t, 2, status.ProblemsSolved)
	assert.Equal(t, 5, status.SubmissionsCount)
	assert.Equal(t, "a", status.MembershipID)
}

func TestBuildHeatmap(t *testing.T) {
	t.Parallel()

	results := []challenge.DailyResult{
		{MembershipID: "a", Date: day(2026, 3, 2), Completed: true, SubmissionsCount: 3, ProblemsSolved: 2},
		{MembershipID: "b", Date: day(2026, 3, 2), Completed: false, SubmissionsCount: 1},
		{MembershipID: "a", Date: day(2026, 3, 4), Completed: true, SubmissionsCount: 1, ProblemsSolved: 1},
		{MembershipID: "a", Date: day(2026, 2, 1), Completed: true, SubmissionsCount: 9},
	}

	cells := BuildHeatmap(results, time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC), time.Date(2026, 3, 4, 1, 0, 0, 0, time.UTC), time.UTC)

	require.Len(t, cells, 4)
	assert.Equal(t, day(2026, 3, 1), cells[0].Date)
	assert.Equal(t, HeatmapCell{Date: day(2026, 3, 1)}, cells[0])
	assert.Equal(t, HeatmapCell{Date: day(2026, 3, 2), Submissions: 4, ProblemsSolved: 2, Completed: 1, Evaluated: 2}, cells[1])
	assert.Equal(t, HeatmapCell{Date: day(2026, 3, 3)}, cells[2])
	assert.Equal(t, 1, cells[3].Completed)

	assert.Nil(t, BuildHeatmap(results, day(2026, 3, 4), day(2026, 3, 1), time.UTC))
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		members []MemberResults
		wantErr bool
	}{
		{name: "valid", members: []MemberResults{{Membership: member("a", 2, 5, "1"), Results: []challenge.DailyResult{{Date: day(2026, 3, 1)}}}}},
		{name: "negative current", members: []MemberResults{{Membership: member("a", -1, 5, "0")}}, wantErr: true},
		{name: "longest below current", members: []MemberResults{{Membership: member("a", 5, 4, "0")}}, wantErr: true},
		{name: "negative penalties", members: []MemberResults{{Membership: member("a", 0, 0, "-0.5")}}, wantErr: true},
		{
			name:    "untruncated date",
			members: []MemberResults{{Membership: member("a", 0, 0, "0"), Results: []challenge.DailyResult{{Date: time.Date(2026, 3, 1, 4, 0, 0, 0, time.UTC)}}}},
			wantErr: true,
		},
		{
			name:    "negative submissions",
			members: []MemberResults{{Membership: member("a", 0, 0, "0"), Results: []challenge.DailyResult{{Date: day(2026, 3, 1), SubmissionsCount: -2}}}},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := Validate(tc.members)
			if !tc.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, ErrInvariantViolation), "got %v", err)
		})
	}
}
