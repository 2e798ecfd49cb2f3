package get_business_hours

import (
	"context"

	"github.com/yaduk2001/selling-sub001/internal/service/businesshours/models"
)

type BusinessHoursService interface {
	List(ctx context.Context) (*models.HoursListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
