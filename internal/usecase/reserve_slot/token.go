package reserve_slot

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"

	"github.com/yaduk2001/selling-sub001/internal/domain"
)

// newReservationID случайный UUIDv4
func newReservationID() string {
	return uuid.NewString()
}

// newSecurityToken 256 бит из crypto/rand в hex; с ID резерва не связан
func newSecurityToken() (string, error) {
	buf := make([]byte, domain.SecurityTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("%w: generate security token: %v", ErrInternal, err)
	}
	return hex.EncodeToString(buf), nil
}
