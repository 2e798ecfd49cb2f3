package reserve_slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yaduk2001/selling-sub001/internal/domain"
	"github.com/yaduk2001/selling-sub001/internal/infra/storage/slotclaim"
	"github.com/yaduk2001/selling-sub001/internal/service/calendar"
	"github.com/yaduk2001/selling-sub001/pkg/txmanager"
)

// UseCase use case для резервирования слота на время оплаты
type UseCase struct {
	hours           HoursResolver
	loader          DayLoader
	reservationRepo ReservationRepository
	claimRepo       ClaimRepository
	txManager       TransactionManager
	metrics         Metrics
	settings        Settings
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	hours HoursResolver,
	loader DayLoader,
	reservationRepo ReservationRepository,
	claimRepo ClaimRepository,
	txManager TransactionManager,
	metrics Metrics,
	settings Settings,
	logger Logger,
) *UseCase {
	if settings.HoldDuration <= 0 {
		settings.HoldDuration = domain.ReservationHoldDuration
	}
	return &UseCase{
		hours:           hours,
		loader:          loader,
		reservationRepo: reservationRepo,
		claimRepo:       claimRepo,
		txManager:       txManager,
		metrics:         metrics,
		settings:        settings,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case резервирования.
// Проверка конфликта и запись выполняются в одной сериализуемой транзакции,
// захват ячеек slot_claims отсекает второго писателя на уровне хранилища.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReserveSlot: product=%s, date=%s, time=%s, duration=%d",
		req.ProductID, req.Date.Format(domain.DateFormat), req.StartTime, req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ReserveSlot: validation failed: %v", err)
		uc.metrics.IncReservation("rejected")
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Расписание и таймзона бизнеса
	hours, _ := uc.hours.Resolve(ctx, req.Date.Weekday())
	loc, err := calendar.ResolveLocation(hours, uc.settings.DefaultTimezone)
	if err != nil {
		uc.logger.Error("ReserveSlot: business timezone: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 3. Дата, рабочий день, сетка слотов, минимальное время до начала
	if err := uc.validateSchedule(req, hours, now.In(loc)); err != nil {
		uc.logger.Warn("ReserveSlot: schedule validation failed: %v", err)
		uc.metrics.IncReservation("rejected")
		return nil, err
	}

	token, err := newSecurityToken()
	if err != nil {
		uc.logger.Error("ReserveSlot: %v", err)
		return nil, err
	}

	candidate := domain.OccupiedInterval{
		StartMinute:     req.StartTime.Minutes(),
		DurationMinutes: req.DurationMinutes,
		Source:          domain.SourceReservation,
	}
	buckets := slotclaim.Buckets(candidate.StartMinute, candidate.DurationMinutes)

	var result *domain.Reservation

	// 4. Проверка и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// повтор транзакции начинается с чистого состояния
		result = nil

		state, err := uc.loader.LoadDay(txCtx, req.Date, loc, hours, now)
		if err != nil {
			return fmt.Errorf("%w: load occupancy: %w", ErrInternal, err)
		}

		// 4.1. Конфликт с бронированиями, живыми резервами, блокировками и перерывами
		if free, blocking := state.IsFree(candidate, now); !free {
			return fmt.Errorf("%w: overlaps %s at minute %d", ErrSlotNotAvailable, blocking.Source, blocking.StartMinute)
		}

		// 4.2. Ячейки просроченных резервов освобождаются до захвата
		if _, err := uc.claimRepo.DeleteExpiredIn(txCtx, req.Date, buckets, now); err != nil {
			return fmt.Errorf("%w: release expired claims: %w", ErrInternal, err)
		}

		reservation := &domain.Reservation{
			ID:              newReservationID(),
			ProductID:       req.ProductID,
			BusinessDate:    req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: req.DurationMinutes,
			Status:          domain.ReservationPending,
			ExpiresAt:       now.Add(uc.settings.HoldDuration).UTC().Truncate(time.Second),
			SecurityToken:   token,
			CustomerEmail:   req.CustomerEmail,
			CreatedAt:       now,
		}

		// 4.3. Захват ячеек: уникальный ключ (дата, ячейка)
		if err := uc.claimRepo.Claim(txCtx, req.Date, buckets, slotclaim.OwnerReservation, reservation.ID, &reservation.ExpiresAt); err != nil {
			return err
		}

		// 4.4. Сохраняем резерв
		if err := uc.reservationRepo.Create(txCtx, reservation); err != nil {
			return fmt.Errorf("%w: create reservation: %w", ErrInternal, err)
		}

		result = reservation
		return nil
	})

	if err != nil {
		return nil, uc.mapTxError(req, err)
	}

	uc.metrics.IncReservation("created")
	uc.logger.Info("ReserveSlot: created reservation id=%s, expires at %s",
		result.ID, result.ExpiresAt.Format(time.RFC3339))

	end, err := result.StartTime.AddMinutes(result.DurationMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return &Response{
		ReservationID:   result.ID,
		SecurityToken:   result.SecurityToken,
		ProductID:       result.ProductID,
		Date:            result.BusinessDate,
		StartTime:       result.StartTime,
		EndTime:         end,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ExpiresAt:       result.ExpiresAt,
	}, nil
}

func (uc *UseCase) validateSchedule(req *Request, hours *domain.BusinessHours, localNow time.Time) error {
	today := localNow.Format(domain.DateFormat)
	if err := validateDate(req.Date, today, uc.settings.AdvanceBookingDays); err != nil {
		return err
	}

	if !hours.IsWorkingDay {
		return fmt.Errorf("%w: %s", ErrBusinessClosed, req.Date.Weekday())
	}

	if err := validateSlot(hours, req.StartTime, req.DurationMinutes); err != nil {
		return err
	}

	if req.Date.Format(domain.DateFormat) == today {
		return validateNotice(req.StartTime, localNow, uc.settings.MinNoticeMinutes)
	}
	return nil
}

// mapTxError сводит гонки к ErrSlotNotAvailable: проверка внутри транзакции,
// уникальный ключ захвата и исчерпанные повторы сериализации означают одно и то же
func (uc *UseCase) mapTxError(req *Request, err error) error {
	switch {
	case errors.Is(err, ErrSlotNotAvailable):
		uc.logger.Warn("ReserveSlot: %v", err)
	case errors.Is(err, slotclaim.ErrSlotTaken):
		uc.logger.Warn("ReserveSlot: claim lost for %s %s: %v", req.Date.Format(domain.DateFormat), req.StartTime, err)
		err = fmt.Errorf("%w: claimed concurrently", ErrSlotNotAvailable)
	case errors.Is(err, txmanager.ErrSerializationFailure):
		uc.logger.Warn("ReserveSlot: serialization retries exhausted for %s %s: %v", req.Date.Format(domain.DateFormat), req.StartTime, err)
		err = fmt.Errorf("%w: concurrent reservation", ErrSlotNotAvailable)
	default:
		uc.logger.Error("ReserveSlot: transaction failed: %v", err)
		if !errors.Is(err, ErrInternal) {
			err = fmt.Errorf("%w: %v", ErrInternal, err)
		}
		return err
	}

	uc.metrics.IncReservation("conflict")
	return err
}
