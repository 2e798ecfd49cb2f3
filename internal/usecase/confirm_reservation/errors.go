package confirm_reservation

import (
	"errors"
	"fmt"

	"github.com/yaduk2001/selling-sub001/internal/domain"
)

var (
	// ErrReservationNotFound ни транзакция, ни ID резерва не найдены
	ErrReservationNotFound = fmt.Errorf("confirm_reservation: reservation not found: %w", domain.ErrNotFound)

	// ErrReservationExpired резерв истёк, а интервал уже занят
	ErrReservationExpired = fmt.Errorf("confirm_reservation: reservation expired and slot was taken: %w", domain.ErrExpired)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_reservation: internal error")

	// errLostRace параллельное подтверждение того же резерва успело раньше
	errLostRace = errors.New("confirm_reservation: booking already created concurrently")
)
