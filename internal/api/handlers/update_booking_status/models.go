package update_booking_status

import (
	"github.com/m04kA/SMC-ClinicScheduler/internal/service/bookings/models"
)

// UpdateStatusRequest HTTP request model
// Action - целевой статус: booked, arrived, completed, cancelled, no_show
type UpdateStatusRequest struct {
	Action string `json:"action"`
}

// InvalidTransitionResponse тело ответа 409 при запрещённой смене статуса
type InvalidTransitionResponse struct {
	Error string `json:"error"`
	From  string `json:"from"`
	To    string `json:"to"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest(bookingID int64) *models.UpdateStatusRequest {
	return &models.UpdateStatusRequest{
		BookingID: bookingID,
		Action:    r.Action,
	}
}
