package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/yaduk2001/selling-sub001/internal/domain"
	"github.com/yaduk2001/selling-sub001/pkg/dberr"
	"github.com/yaduk2001/selling-sub001/pkg/dbmetrics"
	"github.com/yaduk2001/selling-sub001/pkg/psqlbuilder"
)

var reservationColumns = []string{
	"id",
	"product_id",
	"business_date",
	"start_time",
	"duration_minutes",
	"status",
	"expires_at",
	"security_token",
	"transaction_ref",
	"customer_email",
	"confirmed_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий временных резервов слотов
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет резерв. ID и токен генерирует вызывающая сторона.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if res.CreatedAt.IsZero() {
		res.CreatedAt = time.Now()
	}
	res.CreatedAt = res.CreatedAt.UTC().Truncate(time.Second)
	res.UpdatedAt = res.CreatedAt
	res.ExpiresAt = res.ExpiresAt.UTC().Truncate(time.Second)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"id",
			"product_id",
			"business_date",
			"start_time",
			"duration_minutes",
			"status",
			"expires_at",
			"security_token",
			"transaction_ref",
			"customer_email",
			"created_at",
			"updated_at",
		).
		Values(
			res.ID,
			res.ProductID,
			res.BusinessDate.Format(domain.DateFormat),
			res.StartTime,
			res.DurationMinutes,
			res.Status,
			res.ExpiresAt,
			res.SecurityToken,
			res.TransactionRef,
			res.CustomerEmail,
			res.CreatedAt,
			res.UpdatedAt,
		).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if dberr.IsUniqueViolation(err) && res.TransactionRef != nil {
			return fmt.Errorf("%w: %s: %w", ErrTransactionRefTaken, *res.TransactionRef, err)
		}
		return fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает резерв по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByTransactionRef получает резерв по привязанной платёжной транзакции
func (r *Repository) GetByTransactionRef(ctx context.Context, transactionRef string) (*domain.Reservation, error) {
	return r.getOne(ctx, "GetByTransactionRef", squirrel.Eq{"transaction_ref": transactionRef})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	reservations, err := scanReservations(rows)
	if err != nil {
		return nil, err
	}
	if len(reservations) == 0 {
		return nil, ErrReservationNotFound
	}
	return reservations[0], nil
}

// ListLiveByDate pending-резервы на дату, срок которых ещё не истёк к now
func (r *Repository) ListLiveByDate(ctx context.Context, date time.Time, now time.Time) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{
			"business_date": date.Format(domain.DateFormat),
			"status":        domain.ReservationPending,
		}).
		Where(squirrel.Gt{"expires_at": now.UTC()}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListLiveByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListLiveByDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// AttachTransaction привязывает идентификатор платёжной транзакции к pending-резерву
func (r *Repository) AttachTransaction(ctx context.Context, id, transactionRef string, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("transaction_ref", transactionRef).
		Set("updated_at", at.UTC().Truncate(time.Second)).
		Where(squirrel.Eq{"id": id, "status": domain.ReservationPending}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: AttachTransaction - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if dberr.IsUniqueViolation(err) {
		return fmt.Errorf("%w: %s: %w", ErrTransactionRefTaken, transactionRef, err)
	}
	if err != nil {
		return fmt.Errorf("%w: AttachTransaction - execute update: %w", ErrExecQuery, err)
	}

	return r.expectOne(result, "AttachTransaction")
}

// MarkConfirmed переводит резерв в confirmed
func (r *Repository) MarkConfirmed(ctx context.Context, id string, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	at = at.UTC().Truncate(time.Second)
	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.ReservationConfirmed).
		Set("confirmed_at", at).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"status": domain.ReservationConfirmed}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkConfirmed - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkConfirmed - execute update: %w", ErrExecQuery, err)
	}

	return r.expectOne(result, "MarkConfirmed")
}

// MarkExpired переводит в expired все pending-резервы с expires_at <= now, возвращает их количество
func (r *Repository) MarkExpired(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.ReservationExpired).
		Set("updated_at", now.UTC().Truncate(time.Second)).
		Where(squirrel.Eq{"status": domain.ReservationPending}).
		Where(squirrel.LtOrEq{"expires_at": now.UTC()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: MarkExpired - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: MarkExpired - execute update: %w", ErrExecQuery, err)
	}

	return result.RowsAffected()
}

// DeleteExpiredBefore удаляет просроченные резервы, истёкшие раньше cutoff
func (r *Repository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservations").
		Where(squirrel.Eq{"status": domain.ReservationExpired}).
		Where(squirrel.Lt{"expires_at": cutoff.UTC()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpiredBefore - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpiredBefore - execute delete: %w", ErrExecQuery, err)
	}

	return result.RowsAffected()
}

func (r *Repository) expectOne(result sql.Result, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrNotPending
	}
	return nil
}

func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		var res domain.Reservation
		var transactionRef, customerEmail sql.NullString
		var confirmedAt, createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&res.ID,
			&res.ProductID,
			&res.BusinessDate,
			&res.StartTime,
			&res.DurationMinutes,
			&res.Status,
			&res.ExpiresAt,
			&res.SecurityToken,
			&transactionRef,
			&customerEmail,
			&confirmedAt,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}

		if transactionRef.Valid {
			res.TransactionRef = &transactionRef.String
		}
		if customerEmail.Valid {
			res.CustomerEmail = &customerEmail.String
		}
		if confirmedAt.Valid {
			t := confirmedAt.Time.UTC()
			res.ConfirmedAt = &t
		}
		y, m, d := res.BusinessDate.Date()
		res.BusinessDate = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		res.ExpiresAt = res.ExpiresAt.UTC()
		res.CreatedAt = createdAt.Time.UTC()
		res.UpdatedAt = updatedAt.Time.UTC()

		reservations = append(reservations, &res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
