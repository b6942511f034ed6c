package ranking

import (
	"github.com/riskibarqy/leetstreak/internal/domain/challenge"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Stats summarizes a set of daily results.
type Stats struct {
	TotalDays      int     `json:"total_days"`
	CompletedDays  int     `json:"completed_days"`
	FailedDays     int     `json:"failed_days"`
	CompletionRate float64 `json:"completion_rate"`
}

// CompletionRate is completed/total as a percentage rounded to two decimal
// places, or 0 when total is not positive.
func CompletionRate(completed, total int) float64 {
	if total <= 0 || completed <= 0 {
		return 0
	}
	if completed > total {
		completed = total
	}
	return decimal.NewFromInt(int64(completed)).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(total))).
		Round(2).
		InexactFloat64()
}

// Summarize counts results after collapsing duplicates for the same day.
func Summarize(results []challenge.DailyResult) Stats {
	deduped := DedupeByDay(results)

	stats := Stats{TotalDays: len(deduped)}
	for _, result := range deduped {
		if result.Completed {
			stats.CompletedDays++
		}
	}
	stats.FailedDays = stats.TotalDays - stats.CompletedDays
	stats.CompletionRate = CompletionRate(stats.CompletedDays, stats.TotalDays)
	return stats
}
