package working_hours

import (
	"context"

	"github.com/m04kA/SMC-ClinicScheduler/internal/service/calendar/models"
)

type CalendarService interface {
	ListRules(ctx context.Context) (*models.RuleListResponse, error)
	CreateRule(ctx context.Context, req *models.CreateRuleRequest) (*models.RuleResponse, error)
	DeleteRule(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
