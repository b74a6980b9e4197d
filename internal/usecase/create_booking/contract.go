package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/internal/integrations/auditservice"
)

// BookingRepository интерфейс репозитория записей
type BookingRepository interface {
	LockDays(ctx context.Context, days []time.Time) error
	ListOverlapping(ctx context.Context, interval domain.Interval) ([]*domain.Booking, error)
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// ClientRepository интерфейс справочника клиентов
type ClientRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
}

// TimeOffRepository интерфейс хранилища блокировок времени
type TimeOffRepository interface {
	ListTimeOff(ctx context.Context, interval *domain.Interval) ([]*domain.TimeOff, error)
}

// AuditClient интерфейс клиента журнала аудита
type AuditClient interface {
	Send(ctx context.Context, event auditservice.Event) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics метрики допуска записей
type Metrics interface {
	ObserveAdmission(outcome string)
	ObserveAuditFailure()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
