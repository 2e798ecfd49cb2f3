package update_business_hours

import (
	"context"
	"time"

	"github.com/yaduk2001/selling-sub001/internal/service/businesshours/models"
)

type BusinessHoursService interface {
	Update(ctx context.Context, weekday time.Weekday, req *models.UpdateHoursRequest) (*models.HoursResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
