package businesshours

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/yaduk2001/selling-sub001/internal/domain"
	"github.com/yaduk2001/selling-sub001/pkg/dbmetrics"
	"github.com/yaduk2001/selling-sub001/pkg/psqlbuilder"
)

var hoursColumns = []string{"weekday", "is_working_day", "start_time", "end_time", "breaks", "timezone", "updated_at"}

// Repository недельное расписание: одна строка на день недели (0 = воскресенье)
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByWeekday получает расписание дня недели
func (r *Repository) GetByWeekday(ctx context.Context, weekday time.Weekday) (*domain.BusinessHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(hoursColumns...).
		From("business_hours").
		Where(squirrel.Eq{"weekday": int(weekday)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByWeekday - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByWeekday - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	hours, err := scanHours(rows)
	if err != nil {
		return nil, err
	}
	if len(hours) == 0 {
		return nil, ErrHoursNotFound
	}
	return hours[0], nil
}

// List всё недельное расписание по порядку дней
func (r *Repository) List(ctx context.Context) ([]*domain.BusinessHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(hoursColumns...).
		From("business_hours").
		OrderBy("weekday ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanHours(rows)
}

// Upsert создаёт или перезаписывает расписание дня недели
func (r *Repository) Upsert(ctx context.Context, hours *domain.BusinessHours) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	breaks := hours.Breaks
	if breaks == nil {
		breaks = []domain.Break{}
	}
	breaksJSON, err := json.Marshal(breaks)
	if err != nil {
		return fmt.Errorf("%w: Upsert - marshal breaks: %v", ErrBuildQuery, err)
	}

	if hours.UpdatedAt.IsZero() {
		hours.UpdatedAt = time.Now()
	}
	hours.UpdatedAt = hours.UpdatedAt.UTC().Truncate(time.Second)

	query, args, err := psqlbuilder.Insert("business_hours").
		Columns(hoursColumns...).
		Values(
			int(hours.Weekday),
			hours.IsWorkingDay,
			hours.StartTime,
			hours.EndTime,
			string(breaksJSON),
			hours.Timezone,
			hours.UpdatedAt,
		).
		Suffix(`ON CONFLICT (weekday) DO UPDATE SET
			is_working_day = excluded.is_working_day,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			breaks = excluded.breaks,
			timezone = excluded.timezone,
			updated_at = excluded.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

func scanHours(rows *sql.Rows) ([]*domain.BusinessHours, error) {
	result := make([]*domain.BusinessHours, 0, 7)

	for rows.Next() {
		var hours domain.BusinessHours
		var weekday int
		var breaksJSON string

		if err := rows.Scan(
			&weekday,
			&hours.IsWorkingDay,
			&hours.StartTime,
			&hours.EndTime,
			&breaksJSON,
			&hours.Timezone,
			&hours.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanHours - scan row: %v", ErrScanRow, err)
		}

		hours.Weekday = time.Weekday(weekday)
		hours.UpdatedAt = hours.UpdatedAt.UTC()
		hours.Breaks = []domain.Break{}
		if breaksJSON != "" {
			if err := json.Unmarshal([]byte(breaksJSON), &hours.Breaks); err != nil {
				return nil, fmt.Errorf("%w: weekday %d: %v", ErrMalformedBreaks, weekday, err)
			}
		}

		result = append(result, &hours)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanHours - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}
