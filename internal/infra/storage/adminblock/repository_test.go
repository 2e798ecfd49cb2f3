package adminblock_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaduk2001/selling-sub001/internal/domain"
	"github.com/yaduk2001/selling-sub001/internal/infra/storage/adminblock"
	"github.com/yaduk2001/selling-sub001/internal/infra/storage/storagetest"
)

func TestRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := adminblock.NewRepository(storagetest.Open(t))

	loc := time.FixedZone("UTC-5", -5*3600)
	block := &domain.AdminBlock{
		StartAt: time.Date(2024, 6, 1, 18, 30, 0, 0, loc),
		EndAt:   time.Date(2024, 6, 1, 19, 30, 0, 0, loc),
		Label:   "dentist",
	}

	created, err := repo.Create(ctx, block)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, got.StartAt.Location())
	assert.True(t, got.StartAt.Equal(time.Date(2024, 6, 1, 23, 30, 0, 0, time.UTC)))
	assert.True(t, got.EndAt.Equal(time.Date(2024, 6, 2, 0, 30, 0, 0, time.UTC)))
	assert.Equal(t, "dentist", got.Label)
	assert.False(t, got.Away)

	got.Away = true
	got.Label = "vacation"
	require.NoError(t, repo.Update(ctx, got, time.Now()))

	updated, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, updated.Away)
	assert.Equal(t, "vacation", updated.Label)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, adminblock.ErrBlockNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), adminblock.ErrBlockNotFound)
}

func TestRepository_ListOverlapping(t *testing.T) {
	ctx := context.Background()
	repo := adminblock.NewRepository(storagetest.Open(t))

	mk := func(start, end time.Time) {
		_, err := repo.Create(ctx, &domain.AdminBlock{StartAt: start, EndAt: end})
		require.NoError(t, err)
	}
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	mk(day.Add(-3*time.Hour), day.Add(-time.Hour))   // целиком раньше окна
	mk(day.Add(-time.Hour), day.Add(time.Hour))      // пересекает начало
	mk(day.Add(10*time.Hour), day.Add(11*time.Hour)) // внутри
	mk(day.Add(24*time.Hour), day.Add(25*time.Hour)) // начинается ровно на конце окна

	got, err := repo.ListOverlapping(ctx, day, day.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].StartAt.Equal(day.Add(-time.Hour)))
	assert.True(t, got[1].StartAt.Equal(day.Add(10*time.Hour)))
}
