package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by every layer. Package sentinels wrap one of these,
// so callers can test the category with errors.Is.
var (
	// ErrConfiguration business hours or timezone data is missing or malformed
	ErrConfiguration = errors.New("configuration error")

	// ErrConflict the requested interval overlaps an occupied one
	ErrConflict = errors.New("conflict")

	// ErrNotFound the reservation or booking does not exist
	ErrNotFound = errors.New("not found")

	// ErrExpired the operation targets a lapsed reservation
	ErrExpired = errors.New("expired")
)

var (
	// ErrInvalidBusinessHours schedule violates its invariants
	ErrInvalidBusinessHours = fmt.Errorf("domain: invalid business hours: %w", ErrConfiguration)

	// ErrInvalidAdminBlock block range is malformed
	ErrInvalidAdminBlock = errors.New("domain: invalid admin block")
)
