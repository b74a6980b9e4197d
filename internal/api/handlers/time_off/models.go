package time_off

import (
	"fmt"
	"net/url"
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/service/calendar/models"
)

// ToListRequest формирует фильтр из query параметров from, to (RFC3339, оба или ни одного)
func ToListRequest(query url.Values) (*models.ListTimeOffRequest, error) {
	fromStr, toStr := query.Get("from"), query.Get("to")
	if fromStr == "" && toStr == "" {
		return &models.ListTimeOffRequest{}, nil
	}
	if fromStr == "" || toStr == "" {
		return nil, fmt.Errorf("from and to must be set together")
	}

	from, err := time.Parse(time.RFC3339, fromStr)
	if err != nil {
		return nil, fmt.Errorf("invalid from: %w", err)
	}
	to, err := time.Parse(time.RFC3339, toStr)
	if err != nil {
		return nil, fmt.Errorf("invalid to: %w", err)
	}

	return &models.ListTimeOffRequest{From: &from, To: &to}, nil
}
