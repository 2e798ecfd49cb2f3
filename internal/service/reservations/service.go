package reservations

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yaduk2001/selling-sub001/internal/domain"
	reservationRepo "github.com/yaduk2001/selling-sub001/internal/infra/storage/reservation"
	"github.com/yaduk2001/selling-sub001/internal/service/reservations/models"
)

// Service чтение резервов по токену, привязка транзакции и фоновая очистка
type Service struct {
	reservationRepo ReservationRepository
	claimRepo       ClaimRepository
	txManager       TransactionManager
	metrics         Metrics
	logger          Logger
	timeProvider    TimeProvider
	retention       time.Duration
}

func NewService(
	reservationRepo ReservationRepository,
	claimRepo ClaimRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
	retention time.Duration,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		claimRepo:       claimRepo,
		txManager:       txManager,
		metrics:         metrics,
		logger:          logger,
		timeProvider:    &RealTimeProvider{},
		retention:       retention,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// TokenMatches сравнивает токены за постоянное время
func TokenMatches(expected, given string) bool {
	if expected == "" || given == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(given)) == 1
}

// Get возвращает резерв с эффективным статусом. Неверный токен неотличим от отсутствующего резерва.
func (s *Service) Get(ctx context.Context, id, token string) (*models.ReservationResponse, error) {
	reservation, err := s.authorize(ctx, "Get", id, token)
	if err != nil {
		return nil, err
	}
	return models.FromDomainReservation(reservation, s.timeProvider.Now()), nil
}

// AttachTransaction сохраняет ключ платёжной сессии на живом резерве. Повтор с тем же ключом успешен.
func (s *Service) AttachTransaction(ctx context.Context, id, token string, req *models.AttachTransactionRequest) (*models.ReservationResponse, error) {
	ref := strings.TrimSpace(req.TransactionRef)
	if ref == "" || len(ref) > domain.MaxTransactionRefLength {
		return nil, fmt.Errorf("%w: transactionRef must be 1..%d characters", ErrInvalidInput, domain.MaxTransactionRefLength)
	}

	reservation, err := s.authorize(ctx, "AttachTransaction", id, token)
	if err != nil {
		return nil, err
	}

	now := s.timeProvider.Now()
	sameRef := reservation.TransactionRef != nil && *reservation.TransactionRef == ref

	switch {
	case reservation.Status == domain.ReservationConfirmed:
		if sameRef {
			return models.FromDomainReservation(reservation, now), nil
		}
		s.logger.Warn("AttachTransaction: reservation %s is already confirmed", id)
		return nil, ErrAlreadyConfirmed
	case reservation.IsLapsed(now):
		s.logger.Warn("AttachTransaction: reservation %s expired at %s", id, reservation.ExpiresAt.Format(time.RFC3339))
		return nil, ErrReservationExpired
	case sameRef:
		return models.FromDomainReservation(reservation, now), nil
	case reservation.TransactionRef != nil:
		s.logger.Warn("AttachTransaction: reservation %s already has transaction %s", id, *reservation.TransactionRef)
		return nil, ErrTransactionAlreadyAttached
	}

	if err := s.reservationRepo.AttachTransaction(ctx, id, ref, now); err != nil {
		switch {
		case errors.Is(err, reservationRepo.ErrTransactionRefTaken):
			s.logger.Warn("AttachTransaction: transaction %s already used by another reservation", ref)
			return nil, ErrTransactionRefInUse
		case errors.Is(err, reservationRepo.ErrNotPending):
			return nil, ErrReservationExpired
		default:
			s.logger.Error("AttachTransaction: repository error for reservation %s: %v", id, err)
			return nil, fmt.Errorf("%w: AttachTransaction - repository error: %v", ErrInternal, err)
		}
	}

	reservation.TransactionRef = &ref
	s.logger.Info("AttachTransaction: attached transaction %s to reservation %s", ref, id)
	return models.FromDomainReservation(reservation, now), nil
}

// Sweep помечает истёкшие резервы, снимает их захваты и удаляет старые записи.
// Корректность доступности от очистки не зависит.
func (s *Service) Sweep(ctx context.Context) (*models.SweepResult, error) {
	now := s.timeProvider.Now()
	result := &models.SweepResult{}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		if result.Expired, err = s.reservationRepo.MarkExpired(txCtx, now); err != nil {
			return err
		}
		if result.ClaimsDeleted, err = s.claimRepo.DeleteExpired(txCtx, now); err != nil {
			return err
		}
		if s.retention > 0 {
			if result.Purged, err = s.reservationRepo.DeleteExpiredBefore(txCtx, now.Add(-s.retention)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Sweep: failed: %v", err)
		return nil, fmt.Errorf("%w: Sweep - %v", ErrInternal, err)
	}

	s.metrics.AddSwept(result.Expired)
	if result.Expired > 0 || result.Purged > 0 {
		s.logger.Info("Sweep: expired=%d claims_deleted=%d purged=%d", result.Expired, result.ClaimsDeleted, result.Purged)
	}
	return result, nil
}

func (s *Service) authorize(ctx context.Context, op, id, token string) (*domain.Reservation, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: reservation id is required", ErrInvalidInput)
	}

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation %s not found", op, id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation %s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if !TokenMatches(reservation.SecurityToken, token) {
		s.logger.Warn("%s: security token mismatch for reservation %s", op, id)
		return nil, ErrReservationNotFound
	}
	return reservation, nil
}
