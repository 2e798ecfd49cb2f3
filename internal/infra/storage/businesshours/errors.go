package businesshours

import (
	"errors"
	"fmt"

	"github.com/yaduk2001/selling-sub001/internal/domain"
)

var (
	// ErrHoursNotFound для дня недели нет строки расписания
	ErrHoursNotFound = fmt.Errorf("businesshours.repository: business hours not found: %w", domain.ErrNotFound)

	// ErrMalformedBreaks перерывы в БД не разбираются как JSON
	ErrMalformedBreaks = fmt.Errorf("businesshours.repository: malformed breaks: %w", domain.ErrConfiguration)

	ErrBuildQuery = errors.New("businesshours.repository: failed to build query")
	ErrExecQuery  = errors.New("businesshours.repository: failed to execute query")
	ErrScanRow    = errors.New("businesshours.repository: failed to scan row")
)
