package get_customer_bookings

import (
	"context"

	"github.com/yaduk2001/selling-sub001/internal/service/bookings/models"
)

type BookingService interface {
	ListByCustomer(ctx context.Context, email string) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
