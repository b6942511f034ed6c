package querybuilder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("m.id", "u.username").
		From("challenge_memberships m").
		Join("JOIN users u ON u.id = m.user_id").
		Where(Eq("m.challenge_id", "c1"), Eq("m.is_active", true), IsNull("m.deleted_at")).
		OrderBy("m.joined_at", "m.id").
		Limit(10).
		ToSQL()
	require.NoError(t, err)

	assert.Equal(t, "SELECT m.id, u.username FROM challenge_memberships m JOIN users u ON u.id = m.user_id WHERE m.challenge_id = $1 AND m.is_active = $2 AND m.deleted_at IS NULL ORDER BY m.joined_at, m.id LIMIT 10", query)
	assert.Equal(t, []any{"c1", true}, args)
}

func TestSelectBuilder_RangeAndExpr(t *testing.T) {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)

	query, args, err := Select("id").
		From("daily_results").
		Where(Gte("result_date", from), Lte("result_date", to), Expr("(completed OR problems_solved > ?)", 0), In("membership_id", []any{"m1", "m2"})).
		ToSQL()
	require.NoError(t, err)

	assert.Equal(t, "SELECT id FROM daily_results WHERE result_date >= $1 AND result_date <= $2 AND (completed OR problems_solved > $3) AND membership_id IN ($4, $5)", query)
	assert.Equal(t, []any{from, to, 0, "m1", "m2"}, args)
}

func TestSelectBuilder_EmptyInMatchesNothing(t *testing.T) {
	query, args, err := Select("id").From("penalties").Where(In("membership_id", nil)).ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM penalties WHERE 1=0", query)
	assert.Empty(t, args)
}

func TestSelectBuilder_Validation(t *testing.T) {
	_, _, err := Select().From("users").ToSQL()
	assert.Error(t, err)

	_, _, err = Select("id").ToSQL()
	assert.Error(t, err)
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("daily_results").
		Columns("id", "completed").
		Values("r1", true).
		Suffix("ON CONFLICT (challenge_id, membership_id, result_date) DO NOTHING RETURNING id").
		ToSQL()
	require.NoError(t, err)

	assert.Equal(t, "INSERT INTO daily_results (id, completed) VALUES ($1, $2) ON CONFLICT (challenge_id, membership_id, result_date) DO NOTHING RETURNING id", query)
	assert.Equal(t, []any{"r1", true}, args)
}

func TestInsertBuilder_RowWidthMismatch(t *testing.T) {
	_, _, err := InsertInto("t").Columns("a", "b").Values(1).ToSQL()
	assert.Error(t, err)
}

func TestInsertModel(t *testing.T) {
	type row struct {
		ID        string `db:"id"`
		Completed bool   `db:"completed"`
		Ignored   string `db:"-"`
		NoTag     string
		hidden    string
	}

	query, args, err := InsertModel("daily_results", row{ID: "r1", Completed: true, hidden: "x"}, "")
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO daily_results (id, completed) VALUES ($1, $2)", query)
	assert.Equal(t, []any{"r1", true}, args)

	_, _, err = InsertModel("t", (*row)(nil), "")
	assert.Error(t, err)
	_, _, err = InsertModel("t", 5, "")
	assert.Error(t, err)
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("challenge_memberships").
		SetExpr("total_penalties", "total_penalties + ?", "2.50").
		SetExpr("updated_at", "NOW()").
		Set("is_active", true).
		Where(Eq("id", "m1")).
		ToSQL()
	require.NoError(t, err)

	assert.Equal(t, "UPDATE challenge_memberships SET total_penalties = total_penalties + $1, updated_at = NOW(), is_active = $2 WHERE id = $3", query)
	assert.Equal(t, []any{"2.50", true, "m1"}, args)
}
