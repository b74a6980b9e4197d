package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
)

// maxBookingLength ограничение длительности одной записи
const maxBookingLength = 24 * time.Hour

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientId must be positive", ErrInvalidInterval)
	}

	if req.Start.IsZero() || req.End.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInterval)
	}

	if !req.Start.Before(req.End) {
		return fmt.Errorf("%w: start must be before end", ErrInvalidInterval)
	}

	if req.End.Sub(req.Start) > maxBookingLength {
		return fmt.Errorf("%w: booking cannot be longer than %s", ErrInvalidInterval, maxBookingLength)
	}

	return nil
}

// findConflict возвращает первую неотменённую запись, пересекающую интервал
func findConflict(interval domain.Interval, existing []*domain.Booking) *domain.Booking {
	for _, b := range existing {
		if !b.OccupiesTime() {
			continue
		}
		if interval.OverlapCases(b.Interval()) {
			return b
		}
	}
	return nil
}
