package adminblock

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/yaduk2001/selling-sub001/internal/domain"
	"github.com/yaduk2001/selling-sub001/pkg/dbmetrics"
	"github.com/yaduk2001/selling-sub001/pkg/psqlbuilder"
)

var blockColumns = []string{"id", "start_at", "end_at", "label", "away", "created_at", "updated_at"}

// Repository хранит административные блокировки времени (в UTC)
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет блокировку
func (r *Repository) Create(ctx context.Context, block *domain.AdminBlock) (*domain.AdminBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	block.Normalize()
	if block.CreatedAt.IsZero() {
		block.CreatedAt = time.Now()
	}
	block.CreatedAt = block.CreatedAt.UTC().Truncate(time.Second)
	block.UpdatedAt = block.CreatedAt

	query, args, err := psqlbuilder.Insert("admin_blocks").
		Columns("start_at", "end_at", "label", "away", "created_at", "updated_at").
		Values(block.StartAt, block.EndAt, block.Label, block.Away, block.CreatedAt, block.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&block.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return block, nil
}

// GetByID получает блокировку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AdminBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockColumns...).
		From("admin_blocks").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks, err := scanBlocks(rows)
	if err != nil {
		return nil, err
	}
	if len(blocks) == 0 {
		return nil, ErrBlockNotFound
	}
	return blocks[0], nil
}

// ListOverlapping блокировки, пересекающие UTC-окно [from, to)
func (r *Repository) ListOverlapping(ctx context.Context, from, to time.Time) ([]*domain.AdminBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockColumns...).
		From("admin_blocks").
		Where(squirrel.Lt{"start_at": to.UTC()}).
		Where(squirrel.Gt{"end_at": from.UTC()}).
		OrderBy("start_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverlapping - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBlocks(rows)
}

// Update перезаписывает диапазон, подпись и признак away
func (r *Repository) Update(ctx context.Context, block *domain.AdminBlock, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	block.Normalize()
	block.UpdatedAt = at.UTC().Truncate(time.Second)

	query, args, err := psqlbuilder.Update("admin_blocks").
		Set("start_at", block.StartAt).
		Set("end_at", block.EndAt).
		Set("label", block.Label).
		Set("away", block.Away).
		Set("updated_at", block.UpdatedAt).
		Where(squirrel.Eq{"id": block.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	return expectOne(result, "Update")
}

// Delete удаляет блокировку
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("admin_blocks").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	return expectOne(result, "Delete")
}

func expectOne(result sql.Result, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrBlockNotFound
	}
	return nil
}

func scanBlocks(rows *sql.Rows) ([]*domain.AdminBlock, error) {
	blocks := make([]*domain.AdminBlock, 0)

	for rows.Next() {
		var block domain.AdminBlock
		if err := rows.Scan(
			&block.ID,
			&block.StartAt,
			&block.EndAt,
			&block.Label,
			&block.Away,
			&block.CreatedAt,
			&block.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanBlocks - scan row: %v", ErrScanRow, err)
		}

		block.StartAt = block.StartAt.UTC()
		block.EndAt = block.EndAt.UTC()
		block.CreatedAt = block.CreatedAt.UTC()
		block.UpdatedAt = block.UpdatedAt.UTC()
		blocks = append(blocks, &block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBlocks - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}
