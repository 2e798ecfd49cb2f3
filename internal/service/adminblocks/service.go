package adminblocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	blockRepo "github.com/yaduk2001/selling-sub001/internal/infra/storage/adminblock"
	"github.com/yaduk2001/selling-sub001/internal/service/adminblocks/models"
)

// Service административные блокировки календаря
type Service struct {
	repo         BlockRepository
	logger       Logger
	timeProvider TimeProvider
}

func NewService(repo BlockRepository, logger Logger) *Service {
	return &Service{repo: repo, logger: logger, timeProvider: &RealTimeProvider{}}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Create создаёт блокировку
func (s *Service) Create(ctx context.Context, req *models.BlockRequest) (*models.BlockResponse, error) {
	block := req.ToDomain()
	if err := block.Validate(); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	block.CreatedAt = s.timeProvider.Now()

	created, err := s.repo.Create(ctx, block)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created admin block id=%d %s - %s away=%t", created.ID,
		created.StartAt.Format(time.RFC3339), created.EndAt.Format(time.RFC3339), created.Away)
	return models.FromDomainBlock(created), nil
}

// GetByID получает блокировку
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BlockResponse, error) {
	block, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapError("GetByID", id, err)
	}
	return models.FromDomainBlock(block), nil
}

// List блокировки, пересекающие [from, to)
func (s *Service) List(ctx context.Context, from, to time.Time) (*models.BlockListResponse, error) {
	if !from.Before(to) {
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	blocks, err := s.repo.ListOverlapping(ctx, from, to)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainBlockList(blocks), nil
}

// Update перезаписывает блокировку
func (s *Service) Update(ctx context.Context, id int64, req *models.BlockRequest) (*models.BlockResponse, error) {
	block := req.ToDomain()
	if err := block.Validate(); err != nil {
		s.logger.Warn("Update: validation failed for block id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	block.ID = id

	if err := s.repo.Update(ctx, block, s.timeProvider.Now()); err != nil {
		return nil, s.mapError("Update", id, err)
	}

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapError("Update", id, err)
	}

	s.logger.Info("Update: updated admin block id=%d", id)
	return models.FromDomainBlock(updated), nil
}

// Delete удаляет блокировку
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapError("Delete", id, err)
	}
	s.logger.Info("Delete: deleted admin block id=%d", id)
	return nil
}

func (s *Service) mapError(op string, id int64, err error) error {
	if errors.Is(err, blockRepo.ErrBlockNotFound) {
		s.logger.Warn("%s: admin block id=%d not found", op, id)
		return ErrBlockNotFound
	}
	s.logger.Error("%s: repository error for admin block id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
