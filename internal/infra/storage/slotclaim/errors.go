package slotclaim

import (
	"errors"
	"fmt"

	"github.com/yaduk2001/selling-sub001/internal/domain"
)

var (
	// ErrSlotTaken хотя бы одна минута интервала уже захвачена
	ErrSlotTaken = fmt.Errorf("slotclaim.repository: slot already claimed: %w", domain.ErrConflict)

	ErrBuildQuery = errors.New("slotclaim.repository: failed to build query")
	ErrExecQuery  = errors.New("slotclaim.repository: failed to execute query")
)
