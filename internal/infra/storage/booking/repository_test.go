package booking_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaduk2001/selling-sub001/internal/domain"
	"github.com/yaduk2001/selling-sub001/internal/infra/storage/booking"
	"github.com/yaduk2001/selling-sub001/internal/infra/storage/storagetest"
	"github.com/yaduk2001/selling-sub001/pkg/ptr"
	"github.com/yaduk2001/selling-sub001/pkg/types"
)

func newBooking(reservationID, ref string, date time.Time, start string) *domain.Booking {
	return &domain.Booking{
		ProductID:       "coaching-60",
		ReservationID:   reservationID,
		TransactionRef:  ref,
		CustomerEmail:   ptr.Ptr("buyer@example.com"),
		BusinessDate:    date,
		StartTime:       types.TimeString(start),
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
	}
}

func TestRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := booking.NewRepository(storagetest.Open(t))
	date := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	created, err := repo.Create(ctx, newBooking("res-1", "cs_1", date, "10:00"))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := repo.GetByReservationID(ctx, "res-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "cs_1", got.TransactionRef)
	assert.Equal(t, "2024-06-03", got.BusinessDate.Format(domain.DateFormat))
	assert.Equal(t, "10:00", got.StartTime.String())
	assert.Equal(t, 60, got.DurationMinutes)
	require.NotNil(t, got.CustomerEmail)
	assert.Equal(t, "buyer@example.com", *got.CustomerEmail)
	assert.Nil(t, got.UserID)
	assert.Nil(t, got.CancelledAt)

	byRef, err := repo.GetByTransactionRef(ctx, "cs_1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byRef.ID)
}

func TestRepository_CreateDuplicateReservation(t *testing.T) {
	ctx := context.Background()
	repo := booking.NewRepository(storagetest.Open(t))
	date := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	_, err := repo.Create(ctx, newBooking("res-1", "cs_1", date, "10:00"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newBooking("res-1", "cs_2", date, "10:00"))
	require.Error(t, err)
	assert.ErrorIs(t, err, booking.ErrBookingExists)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo := booking.NewRepository(storagetest.Open(t))

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, booking.ErrBookingNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.True(t, booking.IsNotFound(err))
}

func TestRepository_ListActiveByDate(t *testing.T) {
	ctx := context.Background()
	repo := booking.NewRepository(storagetest.Open(t))
	date := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	other := date.AddDate(0, 0, 1)

	late, err := repo.Create(ctx, newBooking("res-1", "cs_1", date, "14:00"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newBooking("res-2", "cs_2", date, "09:00"))
	require.NoError(t, err)
	cancelled, err := repo.Create(ctx, newBooking("res-3", "cs_3", date, "11:00"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newBooking("res-4", "cs_4", other, "09:00"))
	require.NoError(t, err)

	require.NoError(t, repo.UpdateStatus(ctx, cancelled.ID, domain.StatusCancelled, time.Now()))

	got, err := repo.ListActiveByDate(ctx, date)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "09:00", got[0].StartTime.String())
	assert.Equal(t, late.ID, got[1].ID)
}

func TestRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := booking.NewRepository(storagetest.Open(t))
	date := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	created, err := repo.Create(ctx, newBooking("res-1", "cs_1", date, "10:00"))
	require.NoError(t, err)

	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.UpdateStatus(ctx, created.ID, domain.StatusCancelled, at))

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, got.Status)
	require.NotNil(t, got.CancelledAt)
	assert.True(t, got.CancelledAt.Equal(at))

	err = repo.UpdateStatus(ctx, 999, domain.StatusCompleted, at)
	assert.ErrorIs(t, err, booking.ErrBookingNotFound)
}

func TestRepository_List(t *testing.T) {
	ctx := context.Background()
	repo := booking.NewRepository(storagetest.Open(t))
	d1 := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)

	b1, err := repo.Create(ctx, newBooking("res-1", "cs_1", d1, "10:00"))
	require.NoError(t, err)
	b2, err := repo.Create(ctx, newBooking("res-2", "cs_2", d2, "10:00"))
	require.NoError(t, err)
	other := newBooking("res-3", "cs_3", d2, "12:00")
	other.CustomerEmail = ptr.Ptr("other@example.com")
	b3, err := repo.Create(ctx, other)
	require.NoError(t, err)
	require.NoError(t, repo.UpdateStatus(ctx, b3.ID, domain.StatusCancelled, time.Now()))

	all, err := repo.List(ctx, domain.BookingsFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, b2.ID, all[0].ID, "newest date first")
	assert.Equal(t, b1.ID, all[1].ID)

	withCancelled, err := repo.List(ctx, domain.BookingsFilter{IncludeCancelled: true})
	require.NoError(t, err)
	assert.Len(t, withCancelled, 3)

	oneDay, err := repo.List(ctx, domain.BookingsFilter{StartDate: &d1, EndDate: &d1})
	require.NoError(t, err)
	require.Len(t, oneDay, 1)
	assert.Equal(t, b1.ID, oneDay[0].ID)

	status := domain.StatusCancelled
	byStatus, err := repo.List(ctx, domain.BookingsFilter{Status: &status})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, b3.ID, byStatus[0].ID)

	byEmail, err := repo.List(ctx, domain.BookingsFilter{CustomerEmail: ptr.Ptr("other@example.com"), IncludeCancelled: true})
	require.NoError(t, err)
	require.Len(t, byEmail, 1)
	assert.Equal(t, b3.ID, byEmail[0].ID)
}

func TestRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := booking.NewRepository(storagetest.Open(t))
	date := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	created, err := repo.Create(ctx, newBooking("res-1", "cs_1", date, "10:00"))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), booking.ErrBookingNotFound)
}
