package ranking

import (
	"time"

	"github.com/riskibarqy/leetstreak/internal/domain/challenge"
	"github.com/shopspring/decimal"
)

type Progress struct {
	MembershipID   string
	ChallengeID    string
	UserID         string
	CurrentStreak  int
	LongestStreak  int
	TotalPenalties decimal.Decimal
	Stats          Stats
	Results        []challenge.DailyResult
	Penalties      []challenge.Penalty
}

// BuildProgress aggregates one membership's results. Streak fields and the
// penalty history are surfaced unchanged.
func BuildProgress(m challenge.Membership, results []challenge.DailyResult, penalties []challenge.Penalty) Progress {
	return Progress{
		MembershipID:   m.ID,
		ChallengeID:    m.ChallengeID,
		UserID:         m.UserID,
		CurrentStreak:  m.CurrentStreak,
		LongestStreak:  m.LongestStreak,
		TotalPenalties: m.TotalPenalties,
		Stats:          Summarize(results),
		Results:        DedupeByDay(results),
		Penalties:      penalties,
	}
}

type TodayStatus struct {
	MembershipID     string
	ChallengeID      string
	Date             time.Time
	Completed        bool
	SubmissionsCount int
	ProblemsSolved   int
	EvaluatedAt      time.Time
}

// ProjectToday returns nil when today has not been evaluated for m.
func ProjectToday(m challenge.Membership, result challenge.DailyResult, found bool) *TodayStatus {
	if !found {
		return nil
	}
	return &TodayStatus{
		MembershipID:     m.ID,
		ChallengeID:      m.ChallengeID,
		Date:             result.Date,
		Completed:        result.Completed,
		SubmissionsCount: result.SubmissionsCount,
		ProblemsSolved:   result.ProblemsSolved,
		EvaluatedAt:      result.EvaluatedAt,
	}
}

type HeatmapCell struct {
	Date           time.Time
	Submissions    int
	ProblemsSolved int
	Completed      int
	Evaluated      int
}

// BuildHeatmap buckets results into one cell per day from..to inclusive,
// oldest first. Days without results get an empty cell. Results from several
// memberships on the same day are summed.
func BuildHeatmap(results []challenge.DailyResult, from, to time.Time, loc *time.Location) []HeatmapCell {
	from = TruncateDay(from, loc)
	to = TruncateDay(to, loc)
	if to.Before(from) {
		return nil
	}

	cells := make([]HeatmapCell, 0, int(to.Sub(from).Hours()/24)+1)
	index := make(map[string]int)
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		index[DayKey(day)] = len(cells)
		cells = append(cells, HeatmapCell{Date: day})
	}

	for _, result := range results {
		i, ok := index[DayKey(result.Date)]
		if !ok {
			continue
		}
		cells[i].Submissions += result.SubmissionsCount
		cells[i].ProblemsSolved += result.ProblemsSolved
		cells[i].Evaluated++
		if result.Completed {
			cells[i].Completed++
		}
	}
	return cells
}
