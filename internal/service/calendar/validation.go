package calendar

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/internal/service/calendar/models"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/types"
)

var validate = validator.New()

// toDomainRule проверяет запрос и строит правило рабочих часов
func toDomainRule(req *models.CreateRuleRequest) (*domain.WorkingHoursRule, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	start, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}
	end, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: endTime: %v", ErrInvalidInput, err)
	}
	if !start.IsBefore(end) {
		return nil, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	from, err := parseDate(req.EffectiveFrom)
	if err != nil {
		return nil, fmt.Errorf("%w: effectiveFrom: %v", ErrInvalidInput, err)
	}
	to, err := parseDate(req.EffectiveTo)
	if err != nil {
		return nil, fmt.Errorf("%w: effectiveTo: %v", ErrInvalidInput, err)
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, fmt.Errorf("%w: effectiveFrom must not be after effectiveTo", ErrInvalidInput)
	}

	return &domain.WorkingHoursRule{
		Weekday:   time.Weekday(*req.Weekday),
		StartTime: start,
		EndTime:   end,
		Effective: domain.NewEffectivity(from, to),
	}, nil
}

// toDomainTimeOff проверяет запрос и строит блокировку времени
func toDomainTimeOff(req *models.CreateTimeOffRequest) (*domain.TimeOff, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return &domain.TimeOff{
		Start:  req.Start,
		End:    req.End,
		Reason: req.Reason,
	}, nil
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(domain.DateFormat, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
