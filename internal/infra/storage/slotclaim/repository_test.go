package slotclaim_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaduk2001/selling-sub001/internal/domain"
	"github.com/yaduk2001/selling-sub001/internal/infra/storage/slotclaim"
	"github.com/yaduk2001/selling-sub001/internal/infra/storage/storagetest"
)

var (
	day = time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
)

func TestBuckets(t *testing.T) {
	assert.Equal(t, []int{600, 601, 602}, slotclaim.Buckets(600, 3))
	assert.Len(t, slotclaim.Buckets(540, 60), 60)
	assert.Nil(t, slotclaim.Buckets(540, 0))
}

func TestRepository_Claim_HalfOpenNeighboursDoNotCollide(t *testing.T) {
	ctx := context.Background()
	repo := slotclaim.NewRepository(storagetest.Open(t))
	expires := now.Add(15 * time.Minute)

	require.NoError(t, repo.Claim(ctx, day, slotclaim.Buckets(540, 60), slotclaim.OwnerReservation, "a", &expires))
	require.NoError(t, repo.Claim(ctx, day, slotclaim.Buckets(600, 60), slotclaim.OwnerReservation, "b", &expires))
	require.NoError(t, repo.Claim(ctx, day.AddDate(0, 0, 1), slotclaim.Buckets(540, 60), slotclaim.OwnerReservation, "c", &expires))

	err := repo.Claim(ctx, day, slotclaim.Buckets(570, 60), slotclaim.OwnerReservation, "d", &expires)
	assert.ErrorIs(t, err, slotclaim.ErrSlotTaken)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRepository_DeleteExpiredIn_FreesLapsedHold(t *testing.T) {
	ctx := context.Background()
	repo := slotclaim.NewRepository(storagetest.Open(t))
	buckets := slotclaim.Buckets(540, 60)
	expired := now.Add(-time.Minute)

	require.NoError(t, repo.Claim(ctx, day, buckets, slotclaim.OwnerReservation, "a", &expired))

	n, err := repo.DeleteExpiredIn(ctx, day, buckets, now)
	require.NoError(t, err)
	assert.Equal(t, int64(60), n)

	require.NoError(t, repo.Claim(ctx, day, buckets, slotclaim.OwnerReservation, "b", nil))
}

func TestRepository_TransferAndRelease(t *testing.T) {
	ctx := context.Background()
	repo := slotclaim.NewRepository(storagetest.Open(t))
	buckets := slotclaim.Buckets(540, 30)
	expires := now.Add(15 * time.Minute)

	require.NoError(t, repo.Claim(ctx, day, buckets, slotclaim.OwnerReservation, "res-1", &expires))

	moved, err := repo.TransferToBooking(ctx, "res-1", "7")
	require.NoError(t, err)
	assert.Equal(t, int64(30), moved)

	// у бронирования нет срока действия, очистка его не трогает
	swept, err := repo.DeleteExpired(ctx, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Zero(t, swept)

	released, err := repo.ReleaseByOwner(ctx, slotclaim.OwnerBooking, "7")
	require.NoError(t, err)
	assert.Equal(t, int64(30), released)

	require.NoError(t, repo.Claim(ctx, day, buckets, slotclaim.OwnerReservation, "res-2", &expires))
}
