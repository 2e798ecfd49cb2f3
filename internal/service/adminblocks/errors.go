package adminblocks

import (
	"errors"
	"fmt"

	"github.com/yaduk2001/selling-sub001/internal/domain"
)

var (
	// ErrBlockNotFound блокировка не найдена
	ErrBlockNotFound = fmt.Errorf("admin block not found: %w", domain.ErrNotFound)

	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("service: internal error")
)
