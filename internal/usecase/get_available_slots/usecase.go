package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/internal/slotgen"
)

// UseCase use case получения свободных слотов на день
type UseCase struct {
	bookingRepo  BookingRepository
	calendarRepo CalendarRepository
	policies     PolicyProvider
	generator    *slotgen.Generator
	txManager    TransactionManager
	metrics      Metrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	calendarRepo CalendarRepository,
	policies PolicyProvider,
	generator *slotgen.Generator,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		calendarRepo: calendarRepo,
		policies:     policies,
		generator:    generator,
		txManager:    txManager,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute возвращает свободные слоты на дату
// Политика определяется один раз за вызов: параметры запроса, затем переданная политика
// или сохранённые настройки, затем значения по умолчанию.
// Правила, блокировки и записи читаются одним согласованным снимком.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	policy, err := uc.resolvePolicy(ctx, req)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get scheduling policy: %v", err)
		return nil, fmt.Errorf("%w: failed to get scheduling policy: %v", ErrStoreUnavailable, err)
	}

	day := domain.DayRange(req.Date, uc.generator.Location())

	var snapshot slotgen.DaySnapshot
	err = uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		snapshot, err = uc.loadSnapshot(txCtx, day)
		return err
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load calendar for %s: %v", day.Start.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	slots := uc.generator.Generate(day.Start, snapshot, policy)
	uc.metrics.ObserveSlots(len(slots))

	uc.logger.Info("GetAvailableSlots: date=%s, slotLength=%d, buffer=%d, rules=%d, bookings=%d, slots=%d",
		day.Start.Format(domain.DateFormat), policy.SlotLengthMinutes, policy.BufferMinutes,
		len(snapshot.Rules), len(snapshot.Bookings), len(slots))

	return &Response{
		Date:   day.Start,
		Policy: policy,
		Slots:  slots,
	}, nil
}

// resolvePolicy берёт политику из запроса или из настроек и применяет переопределения вызова
func (uc *UseCase) resolvePolicy(ctx context.Context, req *Request) (domain.SchedulingPolicy, error) {
	if req.Policy != nil {
		return req.Policy.WithOverrides(req.SlotLengthMinutes, req.BufferMinutes), nil
	}

	policy, err := uc.policies.Effective(ctx)
	if err != nil {
		return domain.SchedulingPolicy{}, err
	}
	return policy.WithOverrides(req.SlotLengthMinutes, req.BufferMinutes), nil
}

// loadSnapshot читает из хранилища всё, что нужно генератору для одного дня
func (uc *UseCase) loadSnapshot(ctx context.Context, day domain.Interval) (slotgen.DaySnapshot, error) {
	weekday := day.Start.Weekday()

	rules, err := uc.calendarRepo.ListRules(ctx, &weekday)
	if err != nil {
		return slotgen.DaySnapshot{}, fmt.Errorf("failed to get working hours: %w", err)
	}

	timeOff, err := uc.calendarRepo.ListTimeOff(ctx, &day)
	if err != nil {
		return slotgen.DaySnapshot{}, fmt.Errorf("failed to get time off: %w", err)
	}

	bookings, err := uc.bookingRepo.ListOverlapping(ctx, day)
	if err != nil {
		return slotgen.DaySnapshot{}, fmt.Errorf("failed to get bookings: %w", err)
	}

	return slotgen.DaySnapshot{Rules: rules, TimeOff: timeOff, Bookings: bookings}, nil
}
