package admin_blocks

import (
	"context"
	"time"

	"github.com/yaduk2001/selling-sub001/internal/service/adminblocks/models"
)

type BlockService interface {
	Create(ctx context.Context, req *models.BlockRequest) (*models.BlockResponse, error)
	GetByID(ctx context.Context, id int64) (*models.BlockResponse, error)
	List(ctx context.Context, from, to time.Time) (*models.BlockListResponse, error)
	Update(ctx context.Context, id int64, req *models.BlockRequest) (*models.BlockResponse, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
