package confirm_reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yaduk2001/selling-sub001/internal/domain"
	bookingRepo "github.com/yaduk2001/selling-sub001/internal/infra/storage/booking"
	reservationRepo "github.com/yaduk2001/selling-sub001/internal/infra/storage/reservation"
	"github.com/yaduk2001/selling-sub001/internal/infra/storage/slotclaim"
	"github.com/yaduk2001/selling-sub001/internal/service/calendar"
	"github.com/yaduk2001/selling-sub001/pkg/ptr"
	"github.com/yaduk2001/selling-sub001/pkg/txmanager"
)

// UseCase use case подтверждения резерва после оплаты. Повторная доставка
// платёжного события возвращает уже созданное бронирование.
type UseCase struct {
	reservationRepo ReservationRepository
	bookingRepo     BookingRepository
	claimRepo       ClaimRepository
	hours           HoursResolver
	loader          DayLoader
	notifier        Notifier
	txManager       TransactionManager
	metrics         Metrics
	settings        Settings
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case. notifier может быть nil.
func NewUseCase(
	reservationRepo ReservationRepository,
	bookingRepo BookingRepository,
	claimRepo ClaimRepository,
	hours HoursResolver,
	loader DayLoader,
	notifier Notifier,
	txManager TransactionManager,
	metrics Metrics,
	settings Settings,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		bookingRepo:     bookingRepo,
		claimRepo:       claimRepo,
		hours:           hours,
		loader:          loader,
		notifier:        notifier,
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

// Execute выполняет use case подтверждения
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	key := strings.TrimSpace(req.CorrelationKey)
	sessionRef := strings.TrimSpace(req.TransactionRef)
	uc.logger.Info("ConfirmReservation: correlation key=%s, transaction=%s", key, sessionRef)

	// 1. Валидация входных данных
	if key == "" || len(key) > domain.MaxTransactionRefLength {
		uc.logger.Warn("ConfirmReservation: invalid correlation key")
		return nil, fmt.Errorf("%w: correlationKey must be 1..%d characters", ErrInvalidInput, domain.MaxTransactionRefLength)
	}
	if len(sessionRef) > domain.MaxTransactionRefLength {
		uc.logger.Warn("ConfirmReservation: invalid transaction reference")
		return nil, fmt.Errorf("%w: transactionRef longer than %d characters", ErrInvalidInput, domain.MaxTransactionRefLength)
	}

	// 2. Резерв по ключу транзакции, затем по ID
	reservation, err := uc.findReservation(ctx, key)
	if err != nil {
		return nil, err
	}

	// 3. Повторное событие: бронирование уже есть
	if existing, err := uc.existingBooking(ctx, reservation.ID); err != nil || existing != nil {
		if err != nil {
			return nil, err
		}
		return uc.duplicate(existing), nil
	}

	var created, found *domain.Booking

	// 4. Создание бронирования в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		created, found = nil, nil

		r, err := uc.reservationRepo.GetByID(txCtx, reservation.ID)
		if err != nil {
			return fmt.Errorf("%w: reload reservation: %w", ErrInternal, err)
		}

		if found, err = uc.existingBooking(txCtx, r.ID); err != nil || found != nil {
			return err
		}

		created, err = uc.promote(txCtx, r, key, sessionRef)
		return err
	})

	switch {
	case err == nil:
	case errors.Is(err, errLostRace), errors.Is(err, txmanager.ErrSerializationFailure):
		// параллельное подтверждение того же резерва
		uc.logger.Warn("ConfirmReservation: concurrent promotion of reservation %s: %v", reservation.ID, err)
		winner, readErr := uc.existingBooking(ctx, reservation.ID)
		if readErr != nil {
			return nil, readErr
		}
		if winner == nil {
			uc.logger.Error("ConfirmReservation: no booking after conflict for reservation %s: %v", reservation.ID, err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		return uc.duplicate(winner), nil
	case errors.Is(err, ErrReservationExpired):
		uc.logger.Warn("ConfirmReservation: reservation %s expired and its slot is taken", reservation.ID)
		uc.metrics.IncConfirmation("expired")
		return nil, err
	default:
		uc.logger.Error("ConfirmReservation: transaction failed for reservation %s: %v", reservation.ID, err)
		if !errors.Is(err, ErrInternal) {
			err = fmt.Errorf("%w: %v", ErrInternal, err)
		}
		return nil, err
	}

	if found != nil {
		return uc.duplicate(found), nil
	}

	uc.metrics.IncConfirmation("created")
	uc.logger.Info("ConfirmReservation: created booking id=%d for reservation %s", created.ID, reservation.ID)

	// 5. Письмо отправляется после коммита; ошибка не отменяет бронирование
	uc.notify(ctx, created)

	return toResponse(created, false), nil
}

// promote создаёт бронирование из резерва. Живой резерв передаёт свои ячейки бронированию;
// истёкший захватывает их заново, если интервал всё ещё свободен (оплата уже прошла).
// Ссылка на транзакцию: из события оплаты, затем привязанная к резерву, затем ключ поиска.
func (uc *UseCase) promote(ctx context.Context, r *domain.Reservation, key, sessionRef string) (*domain.Booking, error) {
	now := uc.timeProvider.Now()
	buckets := slotclaim.Buckets(r.StartTime.Minutes(), r.DurationMinutes)

	transactionRef := ptr.Deref(r.TransactionRef, key)
	if sessionRef != "" {
		transactionRef = sessionRef
	}

	booking := &domain.Booking{
		ProductID:       r.ProductID,
		ReservationID:   r.ID,
		TransactionRef:  transactionRef,
		CustomerEmail:   r.CustomerEmail,
		BusinessDate:    r.BusinessDate,
		StartTime:       r.StartTime,
		DurationMinutes: r.DurationMinutes,
		Status:          domain.StatusConfirmed,
		CreatedAt:       now,
	}

	live := r.IsLive(now)
	if !live {
		if err := uc.checkStillFree(ctx, r, now); err != nil {
			return nil, err
		}
		if _, err := uc.claimRepo.ReleaseByOwner(ctx, slotclaim.OwnerReservation, r.ID); err != nil {
			return nil, fmt.Errorf("%w: release stale claims: %w", ErrInternal, err)
		}
		if _, err := uc.claimRepo.DeleteExpiredIn(ctx, r.BusinessDate, buckets, now); err != nil {
			return nil, fmt.Errorf("%w: release expired claims: %w", ErrInternal, err)
		}
		uc.logger.Warn("ConfirmReservation: reservation %s lapsed at %s, re-claiming its slot",
			r.ID, r.ExpiresAt.Format("15:04:05"))
	}

	created, err := uc.bookingRepo.Create(ctx, booking)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingExists) {
			return nil, fmt.Errorf("%w: %w", errLostRace, err)
		}
		return nil, fmt.Errorf("%w: create booking: %w", ErrInternal, err)
	}
	ownerID := slotclaim.BookingOwnerID(created.ID)

	moved := int64(0)
	if live {
		if moved, err = uc.claimRepo.TransferToBooking(ctx, r.ID, ownerID); err != nil {
			return nil, fmt.Errorf("%w: transfer claims: %w", ErrInternal, err)
		}
	}
	if moved == 0 {
		if err := uc.claimRepo.Claim(ctx, r.BusinessDate, buckets, slotclaim.OwnerBooking, ownerID, nil); err != nil {
			if errors.Is(err, slotclaim.ErrSlotTaken) {
				return nil, fmt.Errorf("%w: %v", ErrReservationExpired, err)
			}
			return nil, fmt.Errorf("%w: claim slot: %w", ErrInternal, err)
		}
	}

	if err := uc.reservationRepo.MarkConfirmed(ctx, r.ID, now); err != nil && !errors.Is(err, reservationRepo.ErrNotPending) {
		return nil, fmt.Errorf("%w: mark confirmed: %w", ErrInternal, err)
	}

	return created, nil
}

// checkStillFree повторяет проверку конфликтов для истёкшего резерва
func (uc *UseCase) checkStillFree(ctx context.Context, r *domain.Reservation, now time.Time) error {
	hours, _ := uc.hours.Resolve(ctx, r.BusinessDate.Weekday())
	loc, err := calendar.ResolveLocation(hours, uc.settings.DefaultTimezone)
	if err != nil {
		return fmt.Errorf("%w: resolve timezone: %v", ErrInternal, err)
	}

	state, err := uc.loader.LoadDay(ctx, r.BusinessDate, loc, hours, now)
	if err != nil {
		return fmt.Errorf("%w: load occupancy: %w", ErrInternal, err)
	}

	if free, blocking := state.IsFree(r.Interval(), now); !free {
		return fmt.Errorf("%w: overlaps %s at minute %d", ErrReservationExpired, blocking.Source, blocking.StartMinute)
	}
	return nil
}

func (uc *UseCase) findReservation(ctx context.Context, key string) (*domain.Reservation, error) {
	reservation, err := uc.reservationRepo.GetByTransactionRef(ctx, key)
	if errors.Is(err, reservationRepo.ErrReservationNotFound) {
		reservation, err = uc.reservationRepo.GetByID(ctx, key)
	}
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("ConfirmReservation: no reservation for key %s", key)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("ConfirmReservation: failed to find reservation for key %s: %v", key, err)
		return nil, fmt.Errorf("%w: find reservation: %v", ErrInternal, err)
	}
	return reservation, nil
}

// existingBooking возвращает nil, nil, если бронирования для резерва ещё нет
func (uc *UseCase) existingBooking(ctx context.Context, reservationID string) (*domain.Booking, error) {
	booking, err := uc.bookingRepo.GetByReservationID(ctx, reservationID)
	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		return nil, nil
	}
	if err != nil {
		uc.logger.Error("ConfirmReservation: failed to read booking for reservation %s: %v", reservationID, err)
		return nil, fmt.Errorf("%w: read booking: %w", ErrInternal, err)
	}
	return booking, nil
}

func (uc *UseCase) duplicate(booking *domain.Booking) *Response {
	uc.metrics.IncConfirmation("duplicate")
	uc.logger.Info("ConfirmReservation: reservation %s already promoted to booking id=%d", booking.ReservationID, booking.ID)
	return toResponse(booking, true)
}

func (uc *UseCase) notify(ctx context.Context, booking *domain.Booking) {
	if uc.notifier == nil || booking.CustomerEmail == nil {
		return
	}
	if err := uc.notifier.SendBookingConfirmation(ctx, booking); err != nil {
		uc.logger.Warn("ConfirmReservation: confirmation email for booking id=%d failed: %v", booking.ID, err)
	}
}

func toResponse(b *domain.Booking, duplicate bool) *Response {
	end, err := b.StartTime.AddMinutes(b.DurationMinutes)
	if err != nil {
		end = b.StartTime
	}
	return &Response{
		BookingID:       b.ID,
		ReservationID:   b.ReservationID,
		ProductID:       b.ProductID,
		TransactionRef:  b.TransactionRef,
		CustomerEmail:   b.CustomerEmail,
		Date:            b.BusinessDate,
		StartTime:       b.StartTime,
		EndTime:         end,
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		CreatedAt:       b.CreatedAt,
		Duplicate:       duplicate,
	}
}
