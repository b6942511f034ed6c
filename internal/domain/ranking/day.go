package ranking

import (
	"sort"
	"time"

	"github.com/riskibarqy/leetstreak/internal/domain/challenge"
)

const dayLayout = "2006-01-02"

// TruncateDay returns midnight of t's calendar day in loc. A nil loc keeps
// t's own location.
func TruncateDay(t time.Time, loc *time.Location) time.Time {
	if loc != nil {
		t = t.In(loc)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// IsDay reports whether t has no time-of-day component in its own location.
func IsDay(t time.Time) bool {
	return t.Equal(TruncateDay(t, nil))
}

// DayKey identifies a calendar day independent of the location it was
// truncated in.
func DayKey(t time.Time) string {
	return t.Format(dayLayout)
}

// SameDay compares two instants at day granularity in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	return DayKey(TruncateDay(a, loc)) == DayKey(TruncateDay(b, loc))
}

// DedupeByDay keeps one result per calendar day, preferring the latest
// evaluation, and returns them newest day first.
func DedupeByDay(results []challenge.DailyResult) []challenge.DailyResult {
	if len(results) == 0 {
		return nil
	}

	byDay := make(map[string]challenge.DailyResult, len(results))
	for _, result := range results {
		key := DayKey(result.Date)
		current, exists := byDay[key]
		if !exists || result.EvaluatedAt.After(current.EvaluatedAt) {
			byDay[key] = result
		}
	}

	out := make([]challenge.DailyResult, 0, len(byDay))
	for _, result := range byDay {
		out = append(out, result)
	}
	sort.Slice(out, func(i, j int) bool {
		return DayKey(out[i].Date) > DayKey(out[j].Date)
	})
	return out
}
