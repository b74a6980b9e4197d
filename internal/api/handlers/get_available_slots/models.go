package get_available_slots

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-ClinicScheduler/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date              string          `json:"date"`
	SlotLengthMinutes int             `json:"slotLengthMinutes"`
	BufferMinutes     int             `json:"bufferMinutes"`
	Slots             []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			Start: slot.Start,
			End:   slot.End,
		}
	}

	return &AvailableSlotsResponse{
		Date:              resp.Date.Format(domain.DateFormat),
		SlotLengthMinutes: resp.Policy.SlotLengthMinutes,
		BufferMinutes:     resp.Policy.BufferMinutes,
		Slots:             slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(dateStr, slotLengthStr, bufferStr string) (*getAvailableSlots.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	req := &getAvailableSlots.Request{Date: date}

	if slotLengthStr != "" {
		v, err := strconv.Atoi(slotLengthStr)
		if err != nil {
			return nil, err
		}
		req.SlotLengthMinutes = &v
	}

	if bufferStr != "" {
		v, err := strconv.Atoi(bufferStr)
		if err != nil {
			return nil, err
		}
		req.BufferMinutes = &v
	}

	return req, nil
}
