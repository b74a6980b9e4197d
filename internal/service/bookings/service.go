package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ClinicScheduler/internal/integrations/auditservice"
	"github.com/m04kA/SMC-ClinicScheduler/internal/service/bookings/models"
)

// Результаты смены статуса для метрик
const (
	transitionApplied  = "applied"
	transitionNoop     = "noop"
	transitionRejected = "rejected"
)

// Service сервис для работы с записями на приём
type Service struct {
	bookingRepo BookingRepository
	auditClient AuditClient
	txManager   TransactionManager
	metrics     Metrics
	logger      Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	bookingRepo BookingRepository,
	auditClient AuditClient,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		auditClient: auditClient,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrStoreUnavailable, err)
	}

	return models.FromDomainBooking(booking), nil
}

// List получает записи за период
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListBookings: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListBookings: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrStoreUnavailable, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus меняет статус записи по таблице переходов
//
// Запись читается с блокировкой строки, переход проверяется и применяется в той же транзакции.
// Переход в текущий статус ничего не меняет. Запрещённый переход возвращает
// *domain.InvalidTransitionError (errors.Is(err, domain.ErrInvalidTransition)).
func (s *Service) UpdateStatus(ctx context.Context, req *models.UpdateStatusRequest) (*models.UpdateStatusResponse, error) {
	target, err := domain.ParseStatus(req.Action)
	if err != nil {
		s.logger.Warn("UpdateStatus: booking id=%d, unknown action %q", req.BookingID, req.Action)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var (
		updated  *domain.Booking
		previous domain.BookingStatus
		changed  bool
	)

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrStoreUnavailable, err)
		}

		previous = booking.Status

		if err := domain.ValidateTransition(booking.Status, target); err != nil {
			return err
		}

		if booking.Status == target {
			updated = booking
			return nil
		}

		updated, err = s.bookingRepo.UpdateStatus(txCtx, booking.ID, target)
		if err != nil {
			return fmt.Errorf("%w: failed to update status: %v", ErrStoreUnavailable, err)
		}
		changed = true
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			s.logger.Warn("UpdateStatus: booking id=%d not found", req.BookingID)
		case errors.Is(err, domain.ErrInvalidTransition):
			s.logger.Warn("UpdateStatus: booking id=%d: %v", req.BookingID, err)
			s.metrics.ObserveTransition(string(previous), string(target), transitionRejected)
		default:
			s.logger.Error("UpdateStatus: booking id=%d: %v", req.BookingID, err)
			if !errors.Is(err, ErrStoreUnavailable) {
				err = fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
			}
		}
		return nil, err
	}

	if !changed {
		s.metrics.ObserveTransition(string(previous), string(target), transitionNoop)
		s.logger.Info("UpdateStatus: booking id=%d already %s", updated.ID, updated.Status)
	} else {
		s.metrics.ObserveTransition(string(previous), string(target), transitionApplied)
		s.logger.Info("UpdateStatus: booking id=%d %s -> %s", updated.ID, previous, updated.Status)
		s.sendAudit(ctx, updated, previous)
	}

	return &models.UpdateStatusResponse{
		Booking:        models.FromDomainBooking(updated),
		PreviousStatus: string(previous),
		Changed:        changed,
	}, nil
}

func (s *Service) sendAudit(ctx context.Context, b *domain.Booking, previous domain.BookingStatus) {
	err := s.auditClient.Send(ctx, auditservice.Event{
		Type:      domain.AuditBookingStatusChanged,
		BookingID: b.ID,
		ClientID:  b.ClientID,
		Payload: map[string]any{
			"from":      string(previous),
			"to":        string(b.Status),
			"changedAt": b.UpdatedAt.UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		s.logger.Error("UpdateStatus: failed to deliver audit event for booking id=%d: %v", b.ID, err)
		s.metrics.ObserveAuditFailure()
	}
}
