package httpapi

import (
	"time"

	"github.com/riskibarqy/leetstreak/internal/domain/challenge"
	"github.com/riskibarqy/leetstreak/internal/domain/ranking"
	"github.com/riskibarqy/leetstreak/internal/usecase"
)

const dayLayout = "2006-01-02"

type leaderboardEntryDTO struct {
	Rank           int     `json:"rank"`
	MembershipID   string  `json:"membership_id"`
	UserID         string  `json:"user_id"`
	Username       string  `json:"username"`
	PlatformHandle string  `json:"platform_handle"`
	CurrentStreak  int     `json:"current_streak"`
	LongestStreak  int     `json:"longest_streak"`
	TotalPenalties string  `json:"total_penalties"`
	CompletedDays  int     `json:"completed_days"`
	TotalDays      int     `json:"total_days"`
	CompletionRate float64 `json:"completion_rate"`
}

type leaderboardDTO struct {
	ChallengeID string                `json:"challenge_id"`
	Entries     []leaderboardEntryDTO `json:"entries"`
}

type dailyResultDTO struct {
	Date             string `json:"date"`
	Completed        bool   `json:"completed"`
	SubmissionsCount int    `json:"submissions_count"`
	ProblemsSolved   int    `json:"problems_solved"`
	EvaluatedAt      string `json:"evaluated_at"`
}

type penaltyDTO struct {
	ID     string `json:"id"`
	Date   string `json:"date"`
	Amount string `json:"amount"`
	Reason string `json:"reason,omitempty"`
}

type progressDTO struct {
	MembershipID   string           `json:"membership_id"`
	ChallengeID    string           `json:"challenge_id"`
	UserID         string           `json:"user_id"`
	CurrentStreak  int              `json:"current_streak"`
	LongestStreak  int              `json:"longest_streak"`
	TotalPenalties string           `json:"total_penalties"`
	TotalDays      int              `json:"total_days"`
	CompletedDays  int              `json:"completed_days"`
	FailedDays     int              `json:"failed_days"`
	CompletionRate float64          `json:"completion_rate"`
	Results        []dailyResultDTO `json:"results"`
	Penalties      []penaltyDTO     `json:"penalties"`
}

type todayStatusDTO struct {
	Date             string `json:"date"`
	Completed        bool   `json:"completed"`
	SubmissionsCount int    `json:"submissions_count"`
	ProblemsSolved   int    `json:"problems_solved"`
}

type dashboardChallengeDTO struct {
	ChallengeID    string          `json:"challenge_id"`
	ChallengeName  string          `json:"challenge_name"`
	MembershipID   string          `json:"membership_id"`
	CurrentStreak  int             `json:"current_streak"`
	LongestStreak  int             `json:"longest_streak"`
	TotalPenalties string          `json:"total_penalties"`
	Rank           int             `json:"rank"`
	Participants   int             `json:"participants"`
	Today          *todayStatusDTO `json:"today"`
}

type dashboardDTO struct {
	UserID            string                  `json:"user_id"`
	Today             string                  `json:"today"`
	ActiveChallenges  int                     `json:"active_challenges"`
	CompletedToday    int                     `json:"completed_today"`
	PendingToday      int                     `json:"pending_today"`
	BestCurrentStreak int                     `json:"best_current_streak"`
	BestLongestStreak int                     `json:"best_longest_streak"`
	TotalPenalties    string                  `json:"total_penalties"`
	Challenges        []dashboardChallengeDTO `json:"challenges"`
}

type heatmapCellDTO struct {
	Date           string `json:"date"`
	Submissions    int    `json:"submissions"`
	ProblemsSolved int    `json:"problems_solved"`
	Completed      int    `json:"completed"`
	Evaluated      int    `json:"evaluated"`
}

type heatmapDTO struct {
	UserID           string           `json:"user_id"`
	From             string           `json:"from"`
	To               string           `json:"to"`
	ActiveDays       int              `json:"active_days"`
	TotalSubmissions int              `json:"total_submissions"`
	TotalSolved      int              `json:"total_solved"`
	Cells            []heatmapCellDTO `json:"cells"`
}

type warmLeaderboardsRequest struct {
	ChallengeIDs []string `json:"challenge_ids" validate:"omitempty,max=100,dive,required"`
}

type recordResultRequest struct {
	UserID           string `json:"user_id" validate:"required,max=64"`
	Date             string `json:"date" validate:"required,datetime=2006-01-02"`
	Completed        *bool  `json:"completed" validate:"required"`
	SubmissionsCount int    `json:"submissions_count" validate:"gte=0"`
	ProblemsSolved   int    `json:"problems_solved" validate:"gte=0"`
}

type recordPenaltyRequest struct {
	UserID string `json:"user_id" validate:"required,max=64"`
	Date   string `json:"date" validate:"required,datetime=2006-01-02"`
	Amount string `json:"amount" validate:"required,numeric"`
	Reason string `json:"reason" validate:"omitempty,max=200"`
}

type recordPenaltyResponse struct {
	ID           string `json:"id"`
	MembershipID string `json:"membership_id"`
	Date         string `json:"date"`
	Amount       string `json:"amount"`
}

type recordResultResponse struct {
	ID           string `json:"id"`
	MembershipID string `json:"membership_id"`
	Date         string `json:"date"`
	Completed    bool   `json:"completed"`
}

func leaderboardToDTO(challengeID string, entries []challenge.LeaderboardEntry) leaderboardDTO {
	items := make([]leaderboardEntryDTO, 0, len(entries))
	for i, entry := range entries {
		items = append(items, leaderboardEntryDTO{
			Rank:           i + 1,
			MembershipID:   entry.MembershipID,
			UserID:         entry.UserID,
			Username:       entry.Username,
			PlatformHandle: entry.PlatformHandle,
			CurrentStreak:  entry.CurrentStreak,
			LongestStreak:  entry.LongestStreak,
			TotalPenalties: entry.TotalPenalties.StringFixed(2),
			CompletedDays:  entry.CompletedDays,
			TotalDays:      entry.TotalDays,
			CompletionRate: entry.CompletionRate,
		})
	}
	return leaderboardDTO{ChallengeID: challengeID, Entries: items}
}

func progressToDTO(p ranking.Progress) progressDTO {
	results := make([]dailyResultDTO, 0, len(p.Results))
	for _, result := range p.Results {
		results = append(results, dailyResultDTO{
			Date:             formatDay(result.Date),
			Completed:        result.Completed,
			SubmissionsCount: result.SubmissionsCount,
			ProblemsSolved:   result.ProblemsSolved,
			EvaluatedAt:      formatTimestamp(result.EvaluatedAt),
		})
	}

	penalties := make([]penaltyDTO, 0, len(p.Penalties))
	for _, penalty := range p.Penalties {
		penalties = append(penalties, penaltyDTO{
			ID:     penalty.ID,
			Date:   formatDay(penalty.Date),
			Amount: penalty.Amount.StringFixed(2),
			Reason: penalty.Reason,
		})
	}

	return progressDTO{
		MembershipID:   p.MembershipID,
		ChallengeID:    p.ChallengeID,
		UserID:         p.UserID,
		CurrentStreak:  p.CurrentStreak,
		LongestStreak:  p.LongestStreak,
		TotalPenalties: p.TotalPenalties.StringFixed(2),
		TotalDays:      p.Stats.TotalDays,
		CompletedDays:  p.Stats.CompletedDays,
		FailedDays:     p.Stats.FailedDays,
		CompletionRate: p.Stats.CompletionRate,
		Results:        results,
		Penalties:      penalties,
	}
}

func dashboardToDTO(d usecase.Dashboard) dashboardDTO {
	items := make([]dashboardChallengeDTO, 0, len(d.Challenges))
	for _, row := range d.Challenges {
		item := dashboardChallengeDTO{
			ChallengeID:    row.ChallengeID,
			ChallengeName:  row.ChallengeName,
			MembershipID:   row.MembershipID,
			CurrentStreak:  row.CurrentStreak,
			LongestStreak:  row.LongestStreak,
			TotalPenalties: row.TotalPenalties.StringFixed(2),
			Rank:           row.Rank,
			Participants:   row.Participants,
		}
		if row.Today != nil {
			item.Today = &todayStatusDTO{
				Date:             formatDay(row.Today.Date),
				Completed:        row.Today.Completed,
				SubmissionsCount: row.Today.SubmissionsCount,
				ProblemsSolved:   row.Today.ProblemsSolved,
			}
		}
		items = append(items, item)
	}

	return dashboardDTO{
		UserID:            d.UserID,
		Today:             formatDay(d.Today),
		ActiveChallenges:  d.ActiveChallenges,
		CompletedToday:    d.CompletedToday,
		PendingToday:      d.PendingToday,
		BestCurrentStreak: d.BestCurrentStreak,
		BestLongestStreak: d.BestLongestStreak,
		TotalPenalties:    d.TotalPenalties.StringFixed(2),
		Challenges:        items,
	}
}

func heatmapToDTO(hm usecase.Heatmap) heatmapDTO {
	cells := make([]heatmapCellDTO, 0, len(hm.Cells))
	for _, cell := range hm.Cells {
		cells = append(cells, heatmapCellDTO{
			Date:           formatDay(cell.Date),
			Submissions:    cell.Submissions,
			ProblemsSolved: cell.ProblemsSolved,
			Completed:      cell.Completed,
			Evaluated:      cell.Evaluated,
		})
	}

	return heatmapDTO{
		UserID:           hm.UserID,
		From:             formatDay(hm.From),
		To:               formatDay(hm.To),
		ActiveDays:       hm.ActiveDays,
		TotalSubmissions: hm.TotalSubmissions,
		TotalSolved:      hm.TotalSolved,
		Cells:            cells,
	}
}

func formatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dayLayout)
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
