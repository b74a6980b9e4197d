package get_next_slot

import (
	"time"

	findNextSlot "github.com/m04kA/SMC-ClinicScheduler/internal/usecase/find_next_slot"
)

// NextSlotResponse HTTP response model
type NextSlotResponse struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// FromUseCaseResponse конвертирует найденный слот в HTTP response
func FromUseCaseResponse(resp *findNextSlot.Response) *NextSlotResponse {
	if resp == nil || resp.Slot == nil {
		return nil
	}
	return &NextSlotResponse{
		Start: resp.Slot.Start,
		End:   resp.Slot.End,
	}
}

// ToUseCaseRequest создает запрос use case из query параметра now (RFC3339, опционально)
func ToUseCaseRequest(nowStr string) (*findNextSlot.Request, error) {
	if nowStr == "" {
		return &findNextSlot.Request{}, nil
	}

	now, err := time.Parse(time.RFC3339, nowStr)
	if err != nil {
		return nil, err
	}
	return &findNextSlot.Request{Now: &now}, nil
}
