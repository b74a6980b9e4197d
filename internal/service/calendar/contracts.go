package calendar

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
)

// CalendarRepository интерфейс хранилища правил рабочих часов и блокировок времени
type CalendarRepository interface {
	ListRules(ctx context.Context, weekday *time.Weekday) ([]*domain.WorkingHoursRule, error)
	CreateRule(ctx context.Context, rule *domain.WorkingHoursRule) (*domain.WorkingHoursRule, error)
	DeleteRule(ctx context.Context, id int64) error
	ListTimeOff(ctx context.Context, interval *domain.Interval) ([]*domain.TimeOff, error)
	CreateTimeOff(ctx context.Context, off *domain.TimeOff) (*domain.TimeOff, error)
	DeleteTimeOff(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
