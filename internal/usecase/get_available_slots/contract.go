package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
)

// BookingRepository интерфейс репозитория записей
type BookingRepository interface {
	// ListOverlapping возвращает неотменённые записи, пересекающие интервал
	ListOverlapping(ctx context.Context, interval domain.Interval) ([]*domain.Booking, error)
}

// CalendarRepository интерфейс хранилища правил и блокировок
type CalendarRepository interface {
	ListRules(ctx context.Context, weekday *time.Weekday) ([]*domain.WorkingHoursRule, error)
	ListTimeOff(ctx context.Context, interval *domain.Interval) ([]*domain.TimeOff, error)
}

// PolicyProvider источник действующей политики расписания
type PolicyProvider interface {
	Effective(ctx context.Context) (domain.SchedulingPolicy, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics метрики генерации слотов
type Metrics interface {
	ObserveSlots(count int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
