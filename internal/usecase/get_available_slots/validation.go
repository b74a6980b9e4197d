package get_available_slots

import (
	"fmt"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.SlotLengthMinutes != nil &&
		(*req.SlotLengthMinutes < domain.MinSlotLengthMinutes || *req.SlotLengthMinutes > domain.MaxSlotLengthMinutes) {
		return fmt.Errorf("%w: slotLengthMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotLengthMinutes, domain.MaxSlotLengthMinutes)
	}

	if req.BufferMinutes != nil &&
		(*req.BufferMinutes < domain.MinBufferMinutes || *req.BufferMinutes > domain.MaxBufferMinutes) {
		return fmt.Errorf("%w: bufferMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinBufferMinutes, domain.MaxBufferMinutes)
	}

	if req.Policy != nil {
		if err := req.Policy.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	return nil
}
