package time_off

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicScheduler/internal/service/calendar"
	"github.com/m04kA/SMC-ClinicScheduler/internal/service/calendar/models"
)

const (
	msgInvalidTimeOffID   = "некорректный ID блокировки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidParams      = "некорректные параметры запроса, ожидается from и to в формате RFC3339"
	msgInvalidTimeOff     = "некорректная блокировка: начало должно быть раньше конца"
	msgNotFound           = "блокировка времени не найдена"
)

// Handler управление блокировками времени
type Handler struct {
	service CalendarService
	logger  Logger
}

func NewHandler(service CalendarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/time-off
// Query params: from, to (опционально, RFC3339)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req, err := ToListRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /time-off - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.ListTimeOff(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, calendar.ErrInvalidInput):
			h.logger.Warn("GET /time-off - Invalid range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /time-off - Failed to list time off: %v", err)
			handlers.RespondServiceUnavailable(w)
		}
		return
	}

	h.logger.Info("GET /time-off - Time off retrieved: count=%d", len(result.TimeOff))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/time-off
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTimeOffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /time-off - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateTimeOff(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, calendar.ErrInvalidInput):
			h.logger.Warn("POST /time-off - Invalid time off: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTimeOff)

		default:
			h.logger.Error("POST /time-off - Failed to create time off: %v", err)
			handlers.RespondServiceUnavailable(w)
		}
		return
	}

	h.logger.Info("POST /time-off - Time off created: time_off_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Delete DELETE /api/v1/time-off/{timeOffId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	timeOffID, err := strconv.ParseInt(mux.Vars(r)["timeOffId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /time-off/{id} - Invalid time off ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimeOffID)
		return
	}

	if err := h.service.DeleteTimeOff(r.Context(), timeOffID); err != nil {
		switch {
		case errors.Is(err, calendar.ErrTimeOffNotFound):
			h.logger.Warn("DELETE /time-off/{id} - Time off not found: time_off_id=%d", timeOffID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /time-off/{id} - Failed to delete time off: time_off_id=%d, error=%v", timeOffID, err)
			handlers.RespondServiceUnavailable(w)
		}
		return
	}

	h.logger.Info("DELETE /time-off/{id} - Time off deleted: time_off_id=%d", timeOffID)
	handlers.RespondNoContent(w)
}
