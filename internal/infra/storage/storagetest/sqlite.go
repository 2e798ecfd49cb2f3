// Package storagetest поднимает временную SQLite-базу со схемой сервиса для тестов.
package storagetest

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/yaduk2001/selling-sub001/internal/infra/storage/migrations"
	"github.com/yaduk2001/selling-sub001/pkg/dbmetrics"
)

// Open создаёт файл БД во временной директории теста и применяет миграции
func Open(t testing.TB) *dbmetrics.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "booking.db")
	raw, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=on&_txlock=immediate", path))
	require.NoError(t, err)

	raw.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = raw.Close() })

	require.NoError(t, migrations.Apply(context.Background(), raw, "sqlite3"))

	return dbmetrics.Wrap(raw, nil)
}
