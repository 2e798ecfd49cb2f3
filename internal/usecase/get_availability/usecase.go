package get_availability

import (
	"context"
	"fmt"

	"github.com/yaduk2001/selling-sub001/internal/domain"
	"github.com/yaduk2001/selling-sub001/internal/service/calendar"
)

// UseCase use case для получения свободных слотов на дату
type UseCase struct {
	hours        HoursResolver
	loader       DayLoader
	settings     Settings
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(hours HoursResolver, loader DayLoader, settings Settings, logger Logger) *UseCase {
	return &UseCase{
		hours:        hours,
		loader:       loader,
		settings:     settings,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case. Только чтение; гонки закрывает reserve_slot.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: product=%s, date=%s, duration=%d, timezone=%q",
		req.ProductID, req.Date.Format(domain.DateFormat), req.DurationMinutes, req.Timezone)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Расписание на день недели (с политикой по умолчанию)
	hours, fallback := uc.hours.Resolve(ctx, req.Date.Weekday())

	// 3. Таймзона покупателя нужна только для представления слотов
	viewer, err := viewerLocation(req.Timezone)
	if err != nil {
		uc.logger.Warn("GetAvailability: unknown timezone %q: %v", req.Timezone, err)
		return nil, err
	}

	// 3.1. Блокировки, "сегодня" и минимальный запас считаются в таймзоне бизнеса
	loc, err := calendar.ResolveLocation(hours, uc.settings.DefaultTimezone)
	if err != nil {
		uc.logger.Error("GetAvailability: business timezone: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if viewer == nil {
		viewer = loc
	}

	// 4. Дата сравнивается с сегодняшней датой бизнеса
	localNow := now.In(loc)
	today := localNow.Format(domain.DateFormat)
	if err := validateDate(req.Date, today, uc.settings.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailability: date validation failed: %v", err)
		return nil, err
	}

	resp := &Response{
		Date:            req.Date,
		ProductID:       req.ProductID,
		DurationMinutes: req.DurationMinutes,
		Timezone:        loc.String(),
		ViewerTimezone:  viewer.String(),
		IsWorkingDay:    hours.IsWorkingDay,
		DefaultHours:    fallback,
		Slots:           []Slot{},
	}

	// 5. Нерабочий день пуст независимо от записей в хранилище
	if !hours.IsWorkingDay {
		uc.logger.Info("GetAvailability: %s is not a working day", req.Date.Format(domain.DateFormat))
		return resp, nil
	}

	// 6. Занятость: бронирования, живые резервы, блокировки, перерывы
	state, err := uc.loader.LoadDay(ctx, req.Date, loc, hours, now)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to load occupancy: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 7. Генерация и фильтрация
	free, err := state.Available(req.DurationMinutes, now)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to compute slots: %v", err)
		return nil, fmt.Errorf("%w: failed to compute slots: %v", ErrInternal, err)
	}

	if req.Date.Format(domain.DateFormat) == today {
		free = filterByNotice(free, localNow, uc.settings.MinNoticeMinutes)
	}

	resp.Slots, err = toSlots(req.Date, free, loc, viewer)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailability: %d free slots for product=%s, date=%s",
		len(resp.Slots), req.ProductID, req.Date.Format(domain.DateFormat))
	return resp, nil
}
