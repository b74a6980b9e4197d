package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	settingsRepo "github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/settings"
	"github.com/m04kA/SMC-ClinicScheduler/internal/service/settings/models"
)

// Service сервис политики расписания
// Если строка настроек не создана, действует fallback из конфигурации сервиса
type Service struct {
	repo     SettingsRepository
	fallback domain.SchedulingPolicy
	logger   Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(repo SettingsRepository, fallback domain.SchedulingPolicy, logger Logger) *Service {
	return &Service{
		repo:     repo,
		fallback: fallback,
		logger:   logger,
	}
}

// Effective возвращает действующую политику: сохранённую или fallback
func (s *Service) Effective(ctx context.Context) (domain.SchedulingPolicy, error) {
	policy, _, err := s.load(ctx)
	return policy, err
}

// Get возвращает действующую политику с указанием источника
func (s *Service) Get(ctx context.Context) (*models.PolicyResponse, error) {
	policy, source, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return models.FromDomainPolicy(policy, source), nil
}

// Update частично обновляет политику и сохраняет её
func (s *Service) Update(ctx context.Context, req *models.UpdatePolicyRequest) (*models.PolicyResponse, error) {
	current, _, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	req.ApplyToPolicy(&current)

	if err := current.Validate(); err != nil {
		s.logger.Warn("UpdateSettings: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	saved, err := s.repo.Upsert(ctx, &current)
	if err != nil {
		s.logger.Error("UpdateSettings: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("UpdateSettings: slotLength=%d, buffer=%d, blockHolidays=%t",
		saved.SlotLengthMinutes, saved.BufferMinutes, saved.BlockPublicHolidays)
	return models.FromDomainPolicy(*saved, models.SourceStored), nil
}

func (s *Service) load(ctx context.Context) (domain.SchedulingPolicy, string, error) {
	stored, err := s.repo.Get(ctx)
	if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
		return s.fallback, models.SourceDefault, nil
	}
	if err != nil {
		s.logger.Error("GetSettings: repository error: %v", err)
		return domain.SchedulingPolicy{}, "", fmt.Errorf("%w: Get - repository error: %v", ErrStoreUnavailable, err)
	}
	return *stored, models.SourceStored, nil
}
