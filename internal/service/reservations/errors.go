package reservations

import (
	"errors"
	"fmt"

	"github.com/yaduk2001/selling-sub001/internal/domain"
)

var (
	// ErrReservationNotFound резерв не найден или токен не совпал
	ErrReservationNotFound = fmt.Errorf("reservation not found: %w", domain.ErrNotFound)

	// ErrReservationExpired резерв истёк
	ErrReservationExpired = fmt.Errorf("reservation has expired: %w", domain.ErrExpired)

	// ErrTransactionAlreadyAttached к резерву уже привязана другая транзакция
	ErrTransactionAlreadyAttached = fmt.Errorf("another transaction is already attached: %w", domain.ErrConflict)

	// ErrAlreadyConfirmed резерв уже подтверждён
	ErrAlreadyConfirmed = fmt.Errorf("reservation is already confirmed: %w", domain.ErrConflict)

	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("service: internal error")
)

var (
	// ErrTransactionRefInUse транзакция уже привязана к другому резерву
	ErrTransactionRefInUse = fmt.Errorf("transaction reference belongs to another reservation: %w", domain.ErrConflict)
)
