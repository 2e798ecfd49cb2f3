package reserve_slot

import (
	"errors"
	"fmt"

	"github.com/yaduk2001/selling-sub001/internal/domain"
)

var (
	// ErrInvalidDate возвращается для даты в прошлом
	ErrInvalidDate = errors.New("reserve_slot: date is in the past")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("reserve_slot: date is too far in the future")

	// ErrBusinessClosed возвращается, когда день недели нерабочий
	ErrBusinessClosed = errors.New("reserve_slot: business is closed on this date")

	// ErrInvalidTimeSlot возвращается, когда время не совпадает с сеткой слотов или выходит за рабочие часы
	ErrInvalidTimeSlot = errors.New("reserve_slot: invalid time slot")

	// ErrTooLateToBook возвращается, когда слот начинается раньше now + minNotice
	ErrTooLateToBook = errors.New("reserve_slot: too late to book this slot")

	// ErrSlotNotAvailable возвращается, когда интервал пересекается с занятым
	ErrSlotNotAvailable = fmt.Errorf("reserve_slot: slot is not available: %w", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reserve_slot: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reserve_slot: internal error")
)
