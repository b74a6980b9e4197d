package settings

import (
	"context"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
)

// SettingsRepository интерфейс репозитория политики расписания
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.SchedulingPolicy, error)
	Upsert(ctx context.Context, policy *domain.SchedulingPolicy) (*domain.SchedulingPolicy, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
