package domain

import (
	"fmt"
	"time"
)

// AdminBlock is a manually blocked UTC time range ("away", vacation, personal time)
type AdminBlock struct {
	ID        int64
	StartAt   time.Time
	EndAt     time.Time
	Label     string
	Away      bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks that the range is non-empty
func (b *AdminBlock) Validate() error {
	if b.StartAt.IsZero() || b.EndAt.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidAdminBlock)
	}
	if !b.StartAt.Before(b.EndAt) {
		return fmt.Errorf("%w: start must be before end", ErrInvalidAdminBlock)
	}
	if len(b.Label) > MaxBlockLabelLength {
		return fmt.Errorf("%w: label longer than %d characters", ErrInvalidAdminBlock, MaxBlockLabelLength)
	}
	return nil
}

// Normalize converts both ends to UTC, truncated to whole seconds
func (b *AdminBlock) Normalize() {
	b.StartAt = b.StartAt.UTC().Truncate(time.Second)
	b.EndAt = b.EndAt.UTC().Truncate(time.Second)
}
