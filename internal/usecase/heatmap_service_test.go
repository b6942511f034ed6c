package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeatmapService_Get_SumsAcrossMemberships(t *testing.T) {
	t.Parallel()

	service := NewHeatmapService(seededRepository(t), fixedClock())
	got, err := service.Get(context.Background(), "u-alice", 7)
	require.NoError(t, err)

	require.Len(t, got.Cells, 7)
	assert.True(t, got.From.Equal(seedToday.AddDate(0, 0, -6)))
	assert.True(t, got.To.Equal(seedToday))
	assert.True(t, got.Cells[0].Date.Equal(got.From))
	assert.True(t, got.Cells[6].Date.Equal(got.To))

	for _, cell := range got.Cells {
		assert.Equal(t, 2, cell.Evaluated, "day %s", cell.Date)
	}
	assert.Equal(t, 1, got.Cells[0].Completed)
	assert.Equal(t, 2, got.Cells[6].Completed)
	assert.Equal(t, 7, got.ActiveDays)
	assert.Equal(t, 19, got.TotalSolved)
}

func TestHeatmapService_Get_FillsEmptyDays(t *testing.T) {
	t.Parallel()

	service := NewHeatmapService(seededRepository(t), fixedClock())
	got, err := service.Get(context.Background(), "u-erin", 0)
	require.NoError(t, err)

	require.Len(t, got.Cells, DefaultHeatmapDays)
	evaluated := 0
	for _, cell := range got.Cells {
		evaluated += cell.Evaluated
	}
	assert.Equal(t, 7, evaluated)
	assert.Zero(t, got.Cells[0].Evaluated)
	assert.Equal(t, 5, got.ActiveDays)
}

func TestHeatmapService_Get_ValidatesDays(t *testing.T) {
	t.Parallel()

	service := NewHeatmapService(seededRepository(t), fixedClock())

	for _, days := range []int{-1, MaxHeatmapDays + 1} {
		_, err := service.Get(context.Background(), "u-alice", days)
		require.ErrorIs(t, err, ErrInvalidInput, "days=%d", days)
	}

	got, err := service.Get(context.Background(), "u-alice", MaxHeatmapDays)
	require.NoError(t, err)
	assert.Len(t, got.Cells, MaxHeatmapDays)
}
