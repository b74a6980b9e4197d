package find_next_slot

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/internal/usecase/get_available_slots"
)

// UseCase поиск ближайшего свободного слота
type UseCase struct {
	slots        SlotsProvider
	policies     PolicyProvider
	horizonDays  int
	loc          *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slots SlotsProvider, policies PolicyProvider, loc *time.Location, logger Logger) *UseCase {
	return &UseCase{
		slots:        slots,
		policies:     policies,
		horizonDays:  domain.NextSlotHorizonDays,
		loc:          loc,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute просматривает дни от сегодняшнего (в поясе клиники) на horizonDays вперёд
// и возвращает первый слот, начинающийся строго после now.
// Политика читается один раз и действует для всех дней поиска.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	now := uc.timeProvider.Now()
	if req != nil && req.Now != nil {
		now = *req.Now
	}

	policy, err := uc.policies.Effective(ctx)
	if err != nil {
		uc.logger.Error("FindNextSlot: failed to get scheduling policy: %v", err)
		return nil, fmt.Errorf("%w: failed to get scheduling policy: %v", ErrStoreUnavailable, err)
	}

	today := domain.StartOfDay(now.In(uc.loc), uc.loc)
	resp := &Response{SearchedFrom: now}

	for i := 0; i < uc.horizonDays; i++ {
		date := today.AddDate(0, 0, i)
		resp.DaysScanned = i + 1

		day, err := uc.slots.Execute(ctx, &get_available_slots.Request{Date: date, Policy: &policy})
		if err != nil {
			uc.logger.Error("FindNextSlot: failed to get slots for %s: %v", date.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, date.Format(domain.DateFormat), err)
		}

		for _, slot := range day.Slots {
			if slot.Start.After(now) {
				found := slot
				resp.Slot = &found
				uc.logger.Info("FindNextSlot: now=%s, found %s after %d day(s)",
					now.Format(time.RFC3339), slot.Start.Format(time.RFC3339), resp.DaysScanned)
				return resp, nil
			}
		}
	}

	uc.logger.Info("FindNextSlot: now=%s, no slots within %d days", now.Format(time.RFC3339), uc.horizonDays)
	return resp, nil
}
