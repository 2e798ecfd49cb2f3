package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yaduk2001/selling-sub001/internal/domain"
	bookingRepo "github.com/yaduk2001/selling-sub001/internal/infra/storage/booking"
	"github.com/yaduk2001/selling-sub001/internal/infra/storage/slotclaim"
	"github.com/yaduk2001/selling-sub001/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями (административные операции)
type Service struct {
	bookingRepo  BookingRepository
	claimRepo    ClaimRepository
	txManager    TransactionManager
	logger       Logger
	timeProvider TimeProvider
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	claimRepo ClaimRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		claimRepo:    claimRepo,
		txManager:    txManager,
		logger:       logger,
		timeProvider: &RealTimeProvider{},
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// List получает бронирования по периоду дат бизнеса, статусу и email покупателя
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	logMsg := "List: fetching bookings"
	if filter.StartDate != nil {
		logMsg += fmt.Sprintf(", from=%s", filter.StartDate.Format(domain.DateFormat))
	}
	if filter.EndDate != nil {
		logMsg += fmt.Sprintf(", to=%s", filter.EndDate.Format(domain.DateFormat))
	}
	if filter.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *filter.Status)
	}
	if filter.IncludeCancelled {
		logMsg += ", includeCancelled=true"
	}
	s.logger.Info(logMsg)

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// ListByCustomer все бронирования покупателя, включая отменённые
func (s *Service) ListByCustomer(ctx context.Context, email string) (*models.BookingListResponse, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: customer email is required", ErrInvalidInput)
	}

	return s.List(ctx, &models.ListBookingsRequest{CustomerEmail: &email, IncludeCancelled: true})
}

// UpdateStatus меняет статус бронирования (confirmed -> cancelled | completed | no_show).
// При отмене ячейки бронирования освобождаются в той же транзакции.
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s", id, req.Status)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, id)
		return nil, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}

	var updated *domain.Booking
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.get(txCtx, "UpdateStatus", id)
		if err != nil {
			return err
		}

		if !booking.CanTransitionTo(newStatus) {
			s.logger.Warn("UpdateStatus: booking id=%d cannot move from %s to %s", id, booking.Status, newStatus)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, newStatus)
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, id, newStatus, s.timeProvider.Now()); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		if newStatus == domain.StatusCancelled {
			released, err := s.claimRepo.ReleaseByOwner(txCtx, slotclaim.OwnerBooking, slotclaim.BookingOwnerID(id))
			if err != nil {
				return fmt.Errorf("%w: UpdateStatus - release claims: %v", ErrInternal, err)
			}
			s.logger.Info("UpdateStatus: released %d claimed minutes of booking id=%d", released, id)
		}

		updated, err = s.get(txCtx, "UpdateStatus", id)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("UpdateStatus: failed for booking id=%d: %v", id, err)
		}
		return nil, err
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", id, newStatus)
	return models.FromDomainBooking(updated), nil
}

// Delete физически удаляет бронирование и освобождает его ячейки
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting booking id=%d", id)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.bookingRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}

		if _, err := s.claimRepo.ReleaseByOwner(txCtx, slotclaim.OwnerBooking, slotclaim.BookingOwnerID(id)); err != nil {
			return fmt.Errorf("%w: Delete - release claims: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%d not found", id)
		} else {
			s.logger.Error("Delete: failed for booking id=%d: %v", id, err)
		}
		return err
	}

	s.logger.Info("Delete: successfully deleted booking id=%d", id)
	return nil
}

func (s *Service) get(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}
