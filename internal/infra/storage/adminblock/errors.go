package adminblock

import (
	"errors"
	"fmt"

	"github.com/yaduk2001/selling-sub001/internal/domain"
)

var (
	// ErrBlockNotFound блокировка не найдена
	ErrBlockNotFound = fmt.Errorf("adminblock.repository: block not found: %w", domain.ErrNotFound)

	ErrBuildQuery = errors.New("adminblock.repository: failed to build query")
	ErrExecQuery  = errors.New("adminblock.repository: failed to execute query")
	ErrScanRow    = errors.New("adminblock.repository: failed to scan row")
)
