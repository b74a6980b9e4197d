package time_off

import (
	"context"

	"github.com/m04kA/SMC-ClinicScheduler/internal/service/calendar/models"
)

type CalendarService interface {
	ListTimeOff(ctx context.Context, req *models.ListTimeOffRequest) (*models.TimeOffListResponse, error)
	CreateTimeOff(ctx context.Context, req *models.CreateTimeOffRequest) (*models.TimeOffResponse, error)
	DeleteTimeOff(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
