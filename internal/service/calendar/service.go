package calendar

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	calendarRepo "github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/calendar"
	"github.com/m04kA/SMC-ClinicScheduler/internal/service/calendar/models"
)

// Service сервис управления рабочими часами и блокировками времени
type Service struct {
	repo   CalendarRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса календаря
func NewService(repo CalendarRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListRules возвращает все правила рабочих часов
func (s *Service) ListRules(ctx context.Context) (*models.RuleListResponse, error) {
	rules, err := s.repo.ListRules(ctx, nil)
	if err != nil {
		s.logger.Error("ListRules: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListRules - repository error: %v", ErrStoreUnavailable, err)
	}
	return models.FromDomainRuleList(rules), nil
}

// CreateRule создает правило рабочих часов
func (s *Service) CreateRule(ctx context.Context, req *models.CreateRuleRequest) (*models.RuleResponse, error) {
	rule, err := toDomainRule(req)
	if err != nil {
		s.logger.Warn("CreateRule: validation failed: %v", err)
		return nil, err
	}

	created, err := s.repo.CreateRule(ctx, rule)
	if err != nil {
		s.logger.Error("CreateRule: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateRule - repository error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("CreateRule: created rule id=%d, weekday=%s, %s-%s",
		created.ID, created.Weekday, created.StartTime, created.EndTime)
	return models.FromDomainRule(created), nil
}

// DeleteRule удаляет правило рабочих часов
func (s *Service) DeleteRule(ctx context.Context, id int64) error {
	if err := s.repo.DeleteRule(ctx, id); err != nil {
		if errors.Is(err, calendarRepo.ErrRuleNotFound) {
			s.logger.Warn("DeleteRule: rule id=%d not found", id)
			return ErrRuleNotFound
		}
		s.logger.Error("DeleteRule: repository error: %v", err)
		return fmt.Errorf("%w: DeleteRule - repository error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("DeleteRule: deleted rule id=%d", id)
	return nil
}

// ListTimeOff возвращает блокировки времени, опционально пересекающие период
func (s *Service) ListTimeOff(ctx context.Context, req *models.ListTimeOffRequest) (*models.TimeOffListResponse, error) {
	var interval *domain.Interval
	if req != nil && req.From != nil && req.To != nil {
		interval = &domain.Interval{Start: *req.From, End: *req.To}
		if !interval.IsValid() {
			return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
		}
	}

	items, err := s.repo.ListTimeOff(ctx, interval)
	if err != nil {
		s.logger.Error("ListTimeOff: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListTimeOff - repository error: %v", ErrStoreUnavailable, err)
	}
	return models.FromDomainTimeOffList(items), nil
}

// CreateTimeOff создает блокировку времени
// Существующие записи не отменяются: блокировка закрывает только новые слоты и записи
func (s *Service) CreateTimeOff(ctx context.Context, req *models.CreateTimeOffRequest) (*models.TimeOffResponse, error) {
	off, err := toDomainTimeOff(req)
	if err != nil {
		s.logger.Warn("CreateTimeOff: validation failed: %v", err)
		return nil, err
	}

	created, err := s.repo.CreateTimeOff(ctx, off)
	if err != nil {
		s.logger.Error("CreateTimeOff: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateTimeOff - repository error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("CreateTimeOff: created time off id=%d [%s, %s)",
		created.ID, created.Start.Format("2006-01-02T15:04Z07:00"), created.End.Format("2006-01-02T15:04Z07:00"))
	return models.FromDomainTimeOff(created), nil
}

// DeleteTimeOff удаляет блокировку времени
func (s *Service) DeleteTimeOff(ctx context.Context, id int64) error {
	if err := s.repo.DeleteTimeOff(ctx, id); err != nil {
		if errors.Is(err, calendarRepo.ErrTimeOffNotFound) {
			s.logger.Warn("DeleteTimeOff: time off id=%d not found", id)
			return ErrTimeOffNotFound
		}
		s.logger.Error("DeleteTimeOff: repository error: %v", err)
		return fmt.Errorf("%w: DeleteTimeOff - repository error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("DeleteTimeOff: deleted time off id=%d", id)
	return nil
}
