package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/leetstreak/internal/domain/challenge"
	"github.com/riskibarqy/leetstreak/internal/domain/ranking"
	"github.com/riskibarqy/leetstreak/internal/platform/id"
	qb "github.com/riskibarqy/leetstreak/internal/platform/querybuilder"
)

type ChallengeRepository struct {
	db  *sqlx.DB
	ids id.Generator
	now func() time.Time
}

func NewChallengeRepository(db *sqlx.DB, ids id.Generator) *ChallengeRepository {
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	return &ChallengeRepository{db: db, ids: ids, now: time.Now}
}

func (r *ChallengeRepository) GetChallenge(ctx context.Context, challengeID string) (challenge.Challenge, bool, error) {
	query, args, err := challengeSelectBuilder().
		Where(qb.Eq("id", challengeID), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return challenge.Challenge{}, false, fmt.Errorf("build get challenge query: %w", err)
	}

	var row challengeTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return challenge.Challenge{}, false, nil
		}
		return challenge.Challenge{}, false, fmt.Errorf("get challenge: %w", err)
	}

	return challengeFromRow(row), true, nil
}

func (r *ChallengeRepository) ListActiveChallenges(ctx context.Context) ([]challenge.Challenge, error) {
	query, args, err := challengeSelectBuilder().
		Where(qb.Eq("status", string(challenge.StatusActive)), qb.IsNull("deleted_at")).
		OrderBy("start_date", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list active challenges query: %w", err)
	}

	var rows []challengeTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list active challenges: %w", err)
	}

	out := make([]challenge.Challenge, 0, len(rows))
	for _, row := range rows {
		out = append(out, challengeFromRow(row))
	}
	return out, nil
}

func (r *ChallengeRepository) FindActiveMemberships(ctx context.Context, challengeID string) ([]challenge.Membership, error) {
	return r.selectMemberships(ctx, "find active memberships",
		qb.Eq("m.challenge_id", challengeID),
		qb.Eq("m.is_active", true),
		qb.IsNull("m.deleted_at"),
	)
}

func (r *ChallengeRepository) FindMembership(ctx context.Context, challengeID, userID string) (challenge.Membership, bool, error) {
	items, err := r.selectMemberships(ctx, "find membership",
		qb.Eq("m.challenge_id", challengeID),
		qb.Eq("m.user_id", userID),
		qb.IsNull("m.deleted_at"),
	)
	if err != nil {
		return challenge.Membership{}, false, err
	}
	if len(items) == 0 {
		return challenge.Membership{}, false, nil
	}
	return items[0], true, nil
}

func (r *ChallengeRepository) ListMembershipsByUser(ctx context.Context, userID string) ([]challenge.Membership, error) {
	return r.selectMemberships(ctx, "list memberships by user",
		qb.Eq("m.user_id", userID),
		qb.IsNull("m.deleted_at"),
	)
}

func (r *ChallengeRepository) FindDailyResults(ctx context.Context, membershipID string, limit int) ([]challenge.DailyResult, error) {
	query, args, err := dailyResultSelectBuilder().
		Where(qb.Eq("membership_id", membershipID)).
		OrderBy("result_date DESC", "id").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build find daily results query: %w", err)
	}

	var rows []dailyResultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("find daily results: %w", err)
	}

	out := make([]challenge.DailyResult, 0, len(rows))
	for _, row := range rows {
		out = append(out, dailyResultFromRow(row))
	}
	return out, nil
}

func (r *ChallengeRepository) FindDailyResult(ctx context.Context, challengeID, membershipID string, date time.Time) (challenge.DailyResult, bool, error) {
	query, args, err := dailyResultSelectBuilder().
		Where(
			qb.Eq("challenge_id", challengeID),
			qb.Eq("membership_id", membershipID),
			qb.Eq("result_date", ranking.DayKey(date)),
		).
		ToSQL()
	if err != nil {
		return challenge.DailyResult{}, false, fmt.Errorf("build find daily result query: %w", err)
	}

	var row dailyResultTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return challenge.DailyResult{}, false, nil
		}
		return challenge.DailyResult{}, false, fmt.Errorf("find daily result: %w", err)
	}
	return dailyResultFromRow(row), true, nil
}

func (r *ChallengeRepository) FindPenalties(ctx context.Context, membershipID string) ([]challenge.Penalty, error) {
	query, args, err := qb.Select("id", "membership_id", "amount", "penalty_date", "reason", "created_at").
		From("penalties").
		Where(qb.Eq("membership_id", membershipID)).
		OrderBy("penalty_date DESC", "created_at DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build find penalties query: %w", err)
	}

	var rows []penaltyTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("find penalties: %w", err)
	}

	out := make([]challenge.Penalty, 0, len(rows))
	for _, row := range rows {
		out = append(out, challenge.Penalty{
			ID:           row.ID,
			MembershipID: row.MembershipID,
			Amount:       row.Amount,
			Date:         row.PenaltyDate,
			Reason:       nullString(row.Reason),
			CreatedAt:    row.CreatedAt,
		})
	}
	return out, nil
}

func (r *ChallengeRepository) RecordDailyResult(ctx context.Context, result challenge.DailyResult) (challenge.DailyResult, error) {
	if !ranking.IsDay(result.Date) {
		return challenge.DailyResult{}, fmt.Errorf("result date %s is not truncated to a day", result.Date)
	}
	if result.ID == "" {
		newID, err := r.ids.NewID()
		if err != nil {
			return challenge.DailyResult{}, err
		}
		result.ID = newID
	}
	if result.EvaluatedAt.IsZero() {
		result.EvaluatedAt = r.now()
	}

	query, args, err := qb.InsertModel("daily_results", dailyResultInsertModel{
		ID:               result.ID,
		ChallengeID:      result.ChallengeID,
		MembershipID:     result.MembershipID,
		ResultDate:       ranking.DayKey(result.Date),
		Completed:        result.Completed,
		SubmissionsCount: result.SubmissionsCount,
		ProblemsSolved:   result.ProblemsSolved,
		EvaluatedAt:      result.EvaluatedAt,
	}, "ON CONFLICT (challenge_id, membership_id, result_date) DO NOTHING RETURNING id")
	if err != nil {
		return challenge.DailyResult{}, fmt.Errorf("build insert daily result query: %w", err)
	}

	var insertedID string
	if err := r.db.GetContext(ctx, &insertedID, query, args...); err != nil {
		if isNotFound(err) || isUniqueViolation(err) {
			return challenge.DailyResult{}, fmt.Errorf("%w: membership %s on %s", challenge.ErrDuplicateDailyResult, result.MembershipID, ranking.DayKey(result.Date))
		}
		return challenge.DailyResult{}, fmt.Errorf("insert daily result: %w", err)
	}
	result.ID = insertedID
	return result, nil
}

// RecordPenalty inserts the penalty and bumps the membership total in one
// transaction.
func (r *ChallengeRepository) RecordPenalty(ctx context.Context, penalty challenge.Penalty) (challenge.Penalty, error) {
	if penalty.Amount.IsNegative() {
		return challenge.Penalty{}, fmt.Errorf("penalty amount must not be negative")
	}
	if penalty.ID == "" {
		newID, err := r.ids.NewID()
		if err != nil {
			return challenge.Penalty{}, err
		}
		penalty.ID = newID
	}
	if penalty.CreatedAt.IsZero() {
		penalty.CreatedAt = r.now()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return challenge.Penalty{}, fmt.Errorf("begin tx record penalty: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	insertQuery, insertArgs, err := qb.InsertModel("penalties", penaltyInsertModel{
		ID:           penalty.ID,
		MembershipID: penalty.MembershipID,
		Amount:       penalty.Amount,
		PenaltyDate:  ranking.DayKey(penalty.Date),
		Reason:       penalty.Reason,
		CreatedAt:    penalty.CreatedAt,
	}, "")
	if err != nil {
		return challenge.Penalty{}, fmt.Errorf("build insert penalty query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return challenge.Penalty{}, fmt.Errorf("insert penalty: %w", err)
	}

	updateQuery, updateArgs, err := qb.Update("challenge_memberships").
		SetExpr("total_penalties", "total_penalties + ?", penalty.Amount).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", penalty.MembershipID), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return challenge.Penalty{}, fmt.Errorf("build update membership penalties query: %w", err)
	}
	res, err := tx.ExecContext(ctx, updateQuery, updateArgs...)
	if err != nil {
		return challenge.Penalty{}, fmt.Errorf("update membership penalties: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return challenge.Penalty{}, fmt.Errorf("membership %s not found", penalty.MembershipID)
	}

	if err := tx.Commit(); err != nil {
		return challenge.Penalty{}, fmt.Errorf("commit record penalty: %w", err)
	}
	return penalty, nil
}

func (r *ChallengeRepository) selectMemberships(ctx context.Context, op string, conditions ...qb.Condition) ([]challenge.Membership, error) {
	query, args, err := qb.Select(
		"m.id", "m.challenge_id", "m.user_id", "u.username", "u.platform_handle",
		"m.is_active", "m.current_streak", "m.longest_streak", "m.total_penalties", "m.joined_at",
	).
		From("challenge_memberships m").
		Join("JOIN users u ON u.id = m.user_id").
		Where(conditions...).
		OrderBy("m.joined_at", "m.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var rows []membershipTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]challenge.Membership, 0, len(rows))
	for _, row := range rows {
		out = append(out, challenge.Membership{
			ID:             row.ID,
			ChallengeID:    row.ChallengeID,
			UserID:         row.UserID,
			Username:       row.Username,
			PlatformHandle: nullString(row.PlatformHandle),
			Active:         row.IsActive,
			CurrentStreak:  row.CurrentStreak,
			LongestStreak:  row.LongestStreak,
			TotalPenalties: row.TotalPenalties,
			JoinedAt:       row.JoinedAt,
		})
	}
	return out, nil
}

func challengeSelectBuilder() *qb.SelectBuilder {
	return qb.Select("id", "name", "status", "start_date", "end_date", "min_problems_per_day", "penalty_amount", "created_at").
		From("challenges")
}

func dailyResultSelectBuilder() *qb.SelectBuilder {
	return qb.Select("id", "challenge_id", "membership_id", "result_date", "completed", "submissions_count", "problems_solved", "evaluated_at").
		From("daily_results")
}

func challengeFromRow(row challengeTableModel) challenge.Challenge {
	return challenge.Challenge{
		ID:                row.ID,
		Name:              row.Name,
		Status:            challenge.Status(row.Status),
		StartDate:         row.StartDate,
		EndDate:           nullTimeToTimePtr(row.EndDate),
		MinProblemsPerDay: row.MinProblemsPerDay,
		PenaltyAmount:     row.PenaltyAmount,
		CreatedAt:         row.CreatedAt,
	}
}

func dailyResultFromRow(row dailyResultTableModel) challenge.DailyResult {
	return challenge.DailyResult{
		ID:               row.ID,
		ChallengeID:      row.ChallengeID,
		MembershipID:     row.MembershipID,
		Date:             row.ResultDate,
		Completed:        row.Completed,
		SubmissionsCount: row.SubmissionsCount,
		ProblemsSolved:   row.ProblemsSolved,
		EvaluatedAt:      row.EvaluatedAt,
	}
}
