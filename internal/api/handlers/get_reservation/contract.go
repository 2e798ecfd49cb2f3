package get_reservation

import (
	"context"

	"github.com/yaduk2001/selling-sub001/internal/service/reservations/models"
)

type ReservationService interface {
	Get(ctx context.Context, id, token string) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
