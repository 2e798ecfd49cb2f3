package migrations

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaduk2001/selling-sub001/pkg/dbmetrics"
)

// ErrMigration ошибка применения схемы
var ErrMigration = errors.New("migrations: failed to apply schema")

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS business_hours (
		weekday        SMALLINT PRIMARY KEY CHECK (weekday BETWEEN 0 AND 6),
		is_working_day BOOLEAN NOT NULL DEFAULT FALSE,
		start_time     TIME,
		end_time       TIME,
		breaks         TEXT NOT NULL DEFAULT '[]',
		timezone       TEXT NOT NULL DEFAULT '',
		updated_at     TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS admin_blocks (
		id         BIGSERIAL PRIMARY KEY,
		start_at   TIMESTAMPTZ NOT NULL,
		end_at     TIMESTAMPTZ NOT NULL,
		label      TEXT NOT NULL DEFAULT '',
		away       BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		CHECK (start_at < end_at)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_admin_blocks_range ON admin_blocks (start_at, end_at)`,
	`CREATE TABLE IF NOT EXISTS reservations (
		id               TEXT PRIMARY KEY,
		product_id       TEXT NOT NULL,
		business_date    DATE NOT NULL,
		start_time       TIME NOT NULL,
		duration_minutes INTEGER NOT NULL CHECK (duration_minutes > 0),
		status           TEXT NOT NULL,
		expires_at       TIMESTAMPTZ NOT NULL,
		security_token   TEXT NOT NULL UNIQUE,
		transaction_ref  TEXT UNIQUE,
		customer_email   TEXT,
		confirmed_at     TIMESTAMPTZ,
		created_at       TIMESTAMPTZ NOT NULL,
		updated_at       TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_reservations_date_status ON reservations (business_date, status)`,
	`CREATE INDEX IF NOT EXISTS idx_reservations_expires ON reservations (status, expires_at)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id               BIGSERIAL PRIMARY KEY,
		product_id       TEXT NOT NULL,
		reservation_id   TEXT NOT NULL UNIQUE,
		transaction_ref  TEXT NOT NULL UNIQUE,
		user_id          TEXT,
		customer_email   TEXT,
		business_date    DATE NOT NULL,
		start_time       TIME NOT NULL,
		duration_minutes INTEGER NOT NULL CHECK (duration_minutes > 0),
		status           TEXT NOT NULL,
		cancelled_at     TIMESTAMPTZ,
		created_at       TIMESTAMPTZ NOT NULL,
		updated_at       TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_date_status ON bookings (business_date, status)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_customer ON bookings (customer_email)`,
	`CREATE TABLE IF NOT EXISTS slot_claims (
		business_date DATE NOT NULL,
		bucket        INTEGER NOT NULL,
		owner_kind    TEXT NOT NULL,
		owner_id      TEXT NOT NULL,
		expires_at    TIMESTAMPTZ,
		PRIMARY KEY (business_date, bucket)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_slot_claims_owner ON slot_claims (owner_kind, owner_id)`,
	`CREATE INDEX IF NOT EXISTS idx_slot_claims_expires ON slot_claims (expires_at)`,
}

// В SQLite DATE/TIMESTAMP/BOOLEAN объявлены ради конвертации типов драйвером go-sqlite3
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS business_hours (
		weekday        INTEGER PRIMARY KEY CHECK (weekday BETWEEN 0 AND 6),
		is_working_day BOOLEAN NOT NULL DEFAULT 0,
		start_time     TEXT,
		end_time       TEXT,
		breaks         TEXT NOT NULL DEFAULT '[]',
		timezone       TEXT NOT NULL DEFAULT '',
		updated_at     TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS admin_blocks (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		start_at   TIMESTAMP NOT NULL,
		end_at     TIMESTAMP NOT NULL,
		label      TEXT NOT NULL DEFAULT '',
		away       BOOLEAN NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_admin_blocks_range ON admin_blocks (start_at, end_at)`,
	`CREATE TABLE IF NOT EXISTS reservations (
		id               TEXT PRIMARY KEY,
		product_id       TEXT NOT NULL,
		business_date    DATE NOT NULL,
		start_time       TEXT NOT NULL,
		duration_minutes INTEGER NOT NULL CHECK (duration_minutes > 0),
		status           TEXT NOT NULL,
		expires_at       TIMESTAMP NOT NULL,
		security_token   TEXT NOT NULL UNIQUE,
		transaction_ref  TEXT UNIQUE,
		customer_email   TEXT,
		confirmed_at     TIMESTAMP,
		created_at       TIMESTAMP NOT NULL,
		updated_at       TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_reservations_date_status ON reservations (business_date, status)`,
	`CREATE INDEX IF NOT EXISTS idx_reservations_expires ON reservations (status, expires_at)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id               INTEGER PRIMARY KEY AUTOINCREMENT,
		product_id       TEXT NOT NULL,
		reservation_id   TEXT NOT NULL UNIQUE,
		transaction_ref  TEXT NOT NULL UNIQUE,
		user_id          TEXT,
		customer_email   TEXT,
		business_date    DATE NOT NULL,
		start_time       TEXT NOT NULL,
		duration_minutes INTEGER NOT NULL CHECK (duration_minutes > 0),
		status           TEXT NOT NULL,
		cancelled_at     TIMESTAMP,
		created_at       TIMESTAMP NOT NULL,
		updated_at       TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_date_status ON bookings (business_date, status)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_customer ON bookings (customer_email)`,
	`CREATE TABLE IF NOT EXISTS slot_claims (
		business_date DATE NOT NULL,
		bucket        INTEGER NOT NULL,
		owner_kind    TEXT NOT NULL,
		owner_id      TEXT NOT NULL,
		expires_at    TIMESTAMP,
		PRIMARY KEY (business_date, bucket)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_slot_claims_owner ON slot_claims (owner_kind, owner_id)`,
	`CREATE INDEX IF NOT EXISTS idx_slot_claims_expires ON slot_claims (expires_at)`,
}

// Apply создаёт таблицы и индексы, если их ещё нет. driver: "postgres" или "sqlite3".
func Apply(ctx context.Context, db dbmetrics.DBExecutor, driver string) error {
	var statements []string
	switch driver {
	case "postgres":
		statements = postgresSchema
	case "sqlite3":
		statements = sqliteSchema
	default:
		return fmt.Errorf("%w: unsupported driver %q", ErrMigration, driver)
	}

	for i, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%w: statement %d: %v", ErrMigration, i, err)
		}
	}
	return nil
}
