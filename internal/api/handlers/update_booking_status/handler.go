package update_booking_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/internal/service/bookings"
)

const (
	msgInvalidBookingID   = "некорректный ID записи"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingAction      = "действие обязательно"
	msgUnknownAction      = "неизвестное действие, ожидается booked, arrived, completed, cancelled или no_show"
	msgNotFound           = "запись не найдена"
	msgInvalidTransition  = "недопустимая смена статуса"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем bookingId из URL
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/status - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	// Декодируем body
	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.Action == "" {
		h.logger.Warn("POST /bookings/{id}/status - Missing action: booking_id=%d", bookingID)
		handlers.RespondBadRequest(w, msgMissingAction)
		return
	}

	result, err := h.service.UpdateStatus(r.Context(), req.ToServiceRequest(bookingID))
	if err != nil {
		var transitionErr *domain.InvalidTransitionError

		switch {
		case errors.As(err, &transitionErr):
			h.logger.Warn("POST /bookings/{id}/status - Invalid transition: booking_id=%d, %s -> %s",
				bookingID, transitionErr.From, transitionErr.To)
			handlers.RespondJSON(w, http.StatusConflict, InvalidTransitionResponse{
				Error: msgInvalidTransition,
				From:  string(transitionErr.From),
				To:    string(transitionErr.To),
			})

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/status - Unknown action: booking_id=%d, action=%q", bookingID, req.Action)
			handlers.RespondBadRequest(w, msgUnknownAction)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/status - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrStoreUnavailable):
			h.logger.Error("POST /bookings/{id}/status - Store unavailable: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /bookings/{id}/status - Failed to update status: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/status - Status updated: booking_id=%d, %s -> %s, changed=%t",
		bookingID, result.PreviousStatus, result.Booking.Status, result.Changed)
	handlers.RespondJSON(w, http.StatusOK, result)
}
