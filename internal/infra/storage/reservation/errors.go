package reservation

import (
	"errors"
	"fmt"

	"github.com/yaduk2001/selling-sub001/internal/domain"
)

var (
	// ErrReservationNotFound резерв не найден
	ErrReservationNotFound = fmt.Errorf("reservation.repository: reservation not found: %w", domain.ErrNotFound)

	// ErrTransactionRefTaken транзакция уже привязана к другому резерву
	ErrTransactionRefTaken = fmt.Errorf("reservation.repository: transaction reference already attached: %w", domain.ErrConflict)

	// ErrNotPending резерв уже не в статусе pending
	ErrNotPending = errors.New("reservation.repository: reservation is not pending")

	ErrBuildQuery = errors.New("reservation.repository: failed to build query")
	ErrExecQuery  = errors.New("reservation.repository: failed to execute query")
	ErrScanRow    = errors.New("reservation.repository: failed to scan row")
)
