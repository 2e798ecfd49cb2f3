// Package slotclaim хранит захваты минутных ячеек дня. Первичный ключ (business_date, bucket)
// не даёт двум резервам или бронированиям занять одну и ту же ячейку даже при гонке.
package slotclaim

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/yaduk2001/selling-sub001/internal/domain"
	"github.com/yaduk2001/selling-sub001/pkg/dberr"
	"github.com/yaduk2001/selling-sub001/pkg/dbmetrics"
	"github.com/yaduk2001/selling-sub001/pkg/psqlbuilder"
)

// Buckets номера ячеек, покрывающих полуоткрытый интервал [start, start+duration)
func Buckets(startMinute, durationMinutes int) []int {
	if durationMinutes <= 0 {
		return nil
	}
	first := startMinute / domain.ClaimBucketMinutes
	last := (startMinute + durationMinutes + domain.ClaimBucketMinutes - 1) / domain.ClaimBucketMinutes
	buckets := make([]int, 0, last-first)
	for b := first; b < last; b++ {
		buckets = append(buckets, b)
	}
	return buckets
}

type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Claim захватывает ячейки одним INSERT. expiresAt задаётся для резервов, nil для бронирований.
func (r *Repository) Claim(ctx context.Context, date time.Time, buckets []int, kind OwnerKind, ownerID string, expiresAt *time.Time) error {
	if len(buckets) == 0 {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var expires interface{}
	if expiresAt != nil {
		expires = expiresAt.UTC().Truncate(time.Second)
	}

	day := date.Format(domain.DateFormat)
	insert := psqlbuilder.Insert("slot_claims").
		Columns("business_date", "bucket", "owner_kind", "owner_id", "expires_at")
	for _, b := range buckets {
		insert = insert.Values(day, b, kind, ownerID, expires)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Claim - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if dberr.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %s buckets %d-%d: %w", ErrSlotTaken, day, buckets[0], buckets[len(buckets)-1], err)
		}
		return fmt.Errorf("%w: Claim - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// DeleteExpiredIn освобождает ячейки даты, захваченные резервами, срок которых истёк к now
func (r *Repository) DeleteExpiredIn(ctx context.Context, date time.Time, buckets []int, now time.Time) (int64, error) {
	if len(buckets) == 0 {
		return 0, nil
	}
	return r.delete(ctx, "DeleteExpiredIn", squirrel.And{
		squirrel.Eq{
			"business_date": date.Format(domain.DateFormat),
			"bucket":        buckets,
			"owner_kind":    OwnerReservation,
		},
		squirrel.LtOrEq{"expires_at": now.UTC()},
	})
}

// DeleteExpired освобождает все ячейки истёкших резервов
func (r *Repository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return r.delete(ctx, "DeleteExpired", squirrel.And{
		squirrel.Eq{"owner_kind": OwnerReservation},
		squirrel.LtOrEq{"expires_at": now.UTC()},
	})
}

// ReleaseByOwner освобождает все ячейки владельца
func (r *Repository) ReleaseByOwner(ctx context.Context, kind OwnerKind, ownerID string) (int64, error) {
	return r.delete(ctx, "ReleaseByOwner", squirrel.Eq{"owner_kind": kind, "owner_id": ownerID})
}

// TransferToBooking переписывает ячейки резерва на бронирование и снимает срок действия
func (r *Repository) TransferToBooking(ctx context.Context, reservationID, bookingID string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slot_claims").
		Set("owner_kind", OwnerBooking).
		Set("owner_id", bookingID).
		Set("expires_at", nil).
		Where(squirrel.Eq{"owner_kind": OwnerReservation, "owner_id": reservationID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: TransferToBooking - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: TransferToBooking - execute update: %w", ErrExecQuery, err)
	}
	return result.RowsAffected()
}

func (r *Repository) delete(ctx context.Context, op string, where squirrel.Sqlizer) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slot_claims").Where(where).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - build delete query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: %s - execute delete: %w", ErrExecQuery, op, err)
	}
	return result.RowsAffected()
}
