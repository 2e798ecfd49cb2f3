package businesshours_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaduk2001/selling-sub001/internal/domain"
	"github.com/yaduk2001/selling-sub001/internal/infra/storage/businesshours"
	"github.com/yaduk2001/selling-sub001/internal/infra/storage/storagetest"
)

func TestRepository_UpsertAndGet(t *testing.T) {
	ctx := context.Background()
	repo := businesshours.NewRepository(storagetest.Open(t))

	monday := &domain.BusinessHours{
		Weekday:      time.Monday,
		IsWorkingDay: true,
		StartTime:    "09:00",
		EndTime:      "17:00",
		Breaks:       []domain.Break{{Start: "12:00", End: "13:00"}},
		Timezone:     "America/New_York",
	}
	require.NoError(t, repo.Upsert(ctx, monday))

	got, err := repo.GetByWeekday(ctx, time.Monday)
	require.NoError(t, err)
	assert.True(t, got.IsWorkingDay)
	assert.Equal(t, "09:00", got.StartTime.String())
	assert.Equal(t, "17:00", got.EndTime.String())
	assert.Equal(t, []domain.Break{{Start: "12:00", End: "13:00"}}, got.Breaks)
	assert.Equal(t, "America/New_York", got.Timezone)

	monday.EndTime = "18:00"
	monday.Breaks = nil
	require.NoError(t, repo.Upsert(ctx, monday))

	got, err = repo.GetByWeekday(ctx, time.Monday)
	require.NoError(t, err)
	assert.Equal(t, "18:00", got.EndTime.String())
	assert.Empty(t, got.Breaks)
}

func TestRepository_ClosedDayAndList(t *testing.T) {
	ctx := context.Background()
	repo := businesshours.NewRepository(storagetest.Open(t))

	require.NoError(t, repo.Upsert(ctx, &domain.BusinessHours{Weekday: time.Sunday}))
	require.NoError(t, repo.Upsert(ctx, &domain.BusinessHours{
		Weekday: time.Tuesday, IsWorkingDay: true, StartTime: "10:00", EndTime: "16:00",
	}))

	sunday, err := repo.GetByWeekday(ctx, time.Sunday)
	require.NoError(t, err)
	assert.False(t, sunday.IsWorkingDay)
	assert.True(t, sunday.StartTime.IsZero())

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, time.Sunday, all[0].Weekday)
	assert.Equal(t, time.Tuesday, all[1].Weekday)

	_, err = repo.GetByWeekday(ctx, time.Friday)
	assert.ErrorIs(t, err, businesshours.ErrHoursNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
