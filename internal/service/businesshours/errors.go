package businesshours

import (
	"errors"
	"fmt"

	"github.com/yaduk2001/selling-sub001/internal/domain"
)

var (
	// ErrHoursNotFound для дня недели нет расписания
	ErrHoursNotFound = fmt.Errorf("business hours not found: %w", domain.ErrNotFound)

	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("service: internal error")
)
