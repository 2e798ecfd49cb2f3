package attach_transaction

import (
	"context"

	"github.com/yaduk2001/selling-sub001/internal/service/reservations/models"
)

type ReservationService interface {
	AttachTransaction(ctx context.Context, id, token string, req *models.AttachTransactionRequest) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
