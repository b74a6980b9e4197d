package list_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// from, to - RFC3339; clientId; status; includeCancelled (все опциональны)
func ToServiceRequest(query url.Values) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{}

	if s := query.Get("from"); s != "" {
		from, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, fmt.Errorf("invalid from: %w", err)
		}
		req.From = &from
	}

	if s := query.Get("to"); s != "" {
		to, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, fmt.Errorf("invalid to: %w", err)
		}
		req.To = &to
	}

	if s := query.Get("clientId"); s != "" {
		clientID, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid clientId: %w", err)
		}
		req.ClientID = &clientID
	}

	if s := query.Get("status"); s != "" {
		req.Status = &s
	}

	// По умолчанию отменённые записи не возвращаются
	if s := query.Get("includeCancelled"); s != "" {
		includeCancelled, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("invalid includeCancelled value: %w", err)
		}
		req.IncludeCancelled = includeCancelled
	}

	return req, nil
}
