package create_booking

import (
	"time"

	createBooking "github.com/m04kA/SMC-ClinicScheduler/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ClientID int64     `json:"clientId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID        int64     `json:"id"`
	ClientID  int64     `json:"clientId"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() *createBooking.Request {
	return &createBooking.Request{
		ClientID: r.ClientID,
		Start:    r.Start,
		End:      r.End,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:        resp.ID,
		ClientID:  resp.ClientID,
		Start:     resp.Start,
		End:       resp.End,
		Status:    string(resp.Status),
		CreatedAt: resp.CreatedAt,
	}
}
