package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/booking"
	clientRepo "github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/client"
	"github.com/m04kA/SMC-ClinicScheduler/internal/integrations/auditservice"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/metrics"
)

// UseCase use case допуска новой записи на приём
type UseCase struct {
	bookingRepo BookingRepository
	clientRepo  ClientRepository
	timeOffRepo TimeOffRepository
	auditClient AuditClient
	txManager   TransactionManager
	metrics     Metrics
	loc         *time.Location
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	clientRepo ClientRepository,
	timeOffRepo TimeOffRepository,
	auditClient AuditClient,
	txManager TransactionManager,
	metrics Metrics,
	loc *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		clientRepo:  clientRepo,
		timeOffRepo: timeOffRepo,
		auditClient: auditClient,
		txManager:   txManager,
		metrics:     metrics,
		loc:         loc,
		logger:      logger,
	}
}

// Execute выполняет use case создания записи
//
// Проверка пересечений и вставка выполняются в одной транзакции под advisory-блокировками
// всех календарных дней интервала: две пересекающиеся заявки всегда делят хотя бы один день,
// поэтому выполняются строго по очереди даже в разных процессах.
// Exclusion constraint на таблице bookings страхует вставку на уровне БД.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%d, start=%s, end=%s",
		req.ClientID, req.Start.Format(time.RFC3339), req.End.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.metrics.ObserveAdmission(metrics.OutcomeInvalid)
		return nil, err
	}

	// 2. Проверяем существование клиента
	if _, err := uc.clientRepo.GetByID(ctx, req.ClientID); err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			uc.logger.Warn("CreateBooking: client id=%d not found", req.ClientID)
			uc.metrics.ObserveAdmission(metrics.OutcomeNotFound)
			return nil, ErrClientNotFound
		}
		uc.logger.Error("CreateBooking: failed to get client id=%d: %v", req.ClientID, err)
		uc.metrics.ObserveAdmission(metrics.OutcomeStoreFailure)
		return nil, fmt.Errorf("%w: failed to get client: %v", ErrStoreUnavailable, err)
	}

	interval := domain.Interval{Start: req.Start, End: req.End}

	var created *domain.Booking

	// 3. Проверка и вставка в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Блокируем все дни, которые задевает интервал
		if err := uc.bookingRepo.LockDays(txCtx, domain.DaysTouched(interval, uc.loc)); err != nil {
			return fmt.Errorf("%w: failed to lock days: %v", ErrStoreUnavailable, err)
		}

		// 3.2. Ищем пересечения с неотменёнными записями
		existing, err := uc.bookingRepo.ListOverlapping(txCtx, interval)
		if err != nil {
			return fmt.Errorf("%w: failed to get bookings: %v", ErrStoreUnavailable, err)
		}
		if conflict := findConflict(interval, existing); conflict != nil {
			return fmt.Errorf("%w: booking id=%d [%s, %s)", ErrConflict, conflict.ID,
				conflict.Start.Format(time.RFC3339), conflict.End.Format(time.RFC3339))
		}

		// 3.3. Блокировки времени тоже закрывают запись
		timeOff, err := uc.timeOffRepo.ListTimeOff(txCtx, &interval)
		if err != nil {
			return fmt.Errorf("%w: failed to get time off: %v", ErrStoreUnavailable, err)
		}
		if len(timeOff) > 0 {
			return fmt.Errorf("%w: time off id=%d", ErrConflict, timeOff[0].ID)
		}

		// 3.4. Сохраняем запись
		created, err = uc.bookingRepo.Create(txCtx, &domain.Booking{
			ClientID: req.ClientID,
			Start:    req.Start,
			End:      req.End,
			Status:   domain.StatusBooked,
		})
		if err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrOverlap):
				return fmt.Errorf("%w: rejected by storage constraint", ErrConflict)
			case errors.Is(err, bookingRepo.ErrClientNotFound):
				return ErrClientNotFound
			default:
				return fmt.Errorf("%w: failed to create booking: %v", ErrStoreUnavailable, err)
			}
		}

		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrConflict):
			uc.logger.Warn("CreateBooking: conflict for client=%d: %v", req.ClientID, err)
			uc.metrics.ObserveAdmission(metrics.OutcomeConflict)
			return nil, err
		case errors.Is(err, ErrClientNotFound):
			uc.logger.Warn("CreateBooking: client id=%d disappeared before insert", req.ClientID)
			uc.metrics.ObserveAdmission(metrics.OutcomeNotFound)
			return nil, err
		case errors.Is(err, ErrStoreUnavailable):
			uc.logger.Error("CreateBooking: %v", err)
			uc.metrics.ObserveAdmission(metrics.OutcomeStoreFailure)
			return nil, err
		default:
			uc.logger.Error("CreateBooking: transaction failed: %v", err)
			uc.metrics.ObserveAdmission(metrics.OutcomeStoreFailure)
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}

	uc.metrics.ObserveAdmission(metrics.OutcomeAdmitted)
	uc.logger.Info("CreateBooking: created booking id=%d for client=%d", created.ID, created.ClientID)

	// 4. Аудит после фиксации транзакции; ошибка доставки не отменяет запись
	uc.sendAudit(ctx, created)

	return fromDomain(created), nil
}

func (uc *UseCase) sendAudit(ctx context.Context, b *domain.Booking) {
	err := uc.auditClient.Send(ctx, auditservice.Event{
		Type:      domain.AuditBookingCreated,
		BookingID: b.ID,
		ClientID:  b.ClientID,
		Payload: map[string]any{
			"start":  b.Start.UTC().Format(time.RFC3339),
			"end":    b.End.UTC().Format(time.RFC3339),
			"status": string(b.Status),
		},
	})
	if err != nil {
		uc.logger.Error("CreateBooking: failed to deliver audit event for booking id=%d: %v", b.ID, err)
		uc.metrics.ObserveAuditFailure()
	}
}
