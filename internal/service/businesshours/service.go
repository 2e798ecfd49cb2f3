package businesshours

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yaduk2001/selling-sub001/internal/domain"
	hoursRepo "github.com/yaduk2001/selling-sub001/internal/infra/storage/businesshours"
	"github.com/yaduk2001/selling-sub001/internal/service/businesshours/models"
)

// Service сервис недельного расписания
type Service struct {
	repo            HoursRepository
	cache           HoursCache
	metrics         Metrics
	logger          Logger
	timeProvider    TimeProvider
	defaultTimezone string
}

// NewService создает сервис расписания. cache может быть nil (Redis выключен).
func NewService(
	repo HoursRepository,
	cache HoursCache,
	metrics Metrics,
	logger Logger,
	defaultTimezone string,
) *Service {
	return &Service{
		repo:            repo,
		cache:           cache,
		metrics:         metrics,
		logger:          logger,
		timeProvider:    &RealTimeProvider{},
		defaultTimezone: defaultTimezone,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Get читает расписание дня недели через кэш
func (s *Service) Get(ctx context.Context, weekday time.Weekday) (*domain.BusinessHours, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, weekday)
		switch {
		case err != nil:
			s.metrics.IncHoursCacheLookup("error")
			s.logger.Warn("Get: cache unavailable for weekday=%d: %v", weekday, err)
		case cached != nil:
			s.metrics.IncHoursCacheLookup("hit")
			return cached, nil
		default:
			s.metrics.IncHoursCacheLookup("miss")
		}
	}

	hours, err := s.repo.GetByWeekday(ctx, weekday)
	if err != nil {
		if errors.Is(err, hoursRepo.ErrHoursNotFound) {
			return nil, ErrHoursNotFound
		}
		return nil, fmt.Errorf("%w: Get - repository error: %w", ErrInternal, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, hours); err != nil {
			s.logger.Warn("Get: failed to cache weekday=%d: %v", weekday, err)
		}
	}

	return hours, nil
}

// Resolve возвращает расписание для расчёта слотов. Если расписание не читается,
// отсутствует или нарушает инварианты, применяется domain.FallbackBusinessHours
// (пн-пт 09:00-17:00, выходные закрыты): ConfigurationError логируется, но не возвращается.
func (s *Service) Resolve(ctx context.Context, weekday time.Weekday) (hours *domain.BusinessHours, fallback bool) {
	hours, err := s.Get(ctx, weekday)
	if err == nil {
		err = hours.Validate()
	}
	if err == nil {
		return hours, false
	}

	cfgErr := fmt.Errorf("%w: weekday %d: %v", domain.ErrConfiguration, weekday, err)
	s.logger.Warn("Resolve: using fallback business hours: %v", cfgErr)
	s.metrics.IncHoursFallback()

	return domain.FallbackBusinessHours(weekday, s.defaultTimezone), true
}

// List возвращает всё недельное расписание
func (s *Service) List(ctx context.Context) (*models.HoursListResponse, error) {
	s.logger.Info("List: fetching business hours")

	list, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainHoursList(list), nil
}

// Update перезаписывает расписание дня недели и сбрасывает кэш
func (s *Service) Update(ctx context.Context, weekday time.Weekday, req *models.UpdateHoursRequest) (*models.HoursResponse, error) {
	s.logger.Info("Update: updating business hours for weekday=%d", weekday)

	hours := req.ToDomain(weekday)
	if err := hours.Validate(); err != nil {
		s.logger.Warn("Update: validation failed for weekday=%d: %v", weekday, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	hours.UpdatedAt = s.timeProvider.Now()

	if err := s.repo.Upsert(ctx, hours); err != nil {
		s.logger.Error("Update: repository error for weekday=%d: %v", weekday, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, weekday); err != nil {
			s.logger.Warn("Update: failed to invalidate cache for weekday=%d: %v", weekday, err)
		}
	}

	s.logger.Info("Update: successfully updated business hours for weekday=%d", weekday)
	return models.FromDomainHours(hours), nil
}
