package working_hours

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
	msgInvalidRuleID      = "некорректный ID правила"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRule        = "некорректное правило: weekday 0-6, время HH:MM, начало раньше конца"
	msgNotFound           = "правило рабочих часов не найдено"
)

// Handler управление правилами рабочих часов
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

// List GET /api/v1/working-hours
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListRules(r.Context())
	if err != nil {
		h.logger.Error("GET /working-hours - Failed to list rules: %v", err)
		handlers.RespondServiceUnavailable(w)
		return
	}

	h.logger.Info("GET /working-hours - Rules retrieved: count=%d", len(result.Rules))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/working-hours
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /working-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateRule(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, calendar.ErrInvalidInput):
			h.logger.Warn("POST /working-hours - Invalid rule: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRule)

		default:
			h.logger.Error("POST /working-hours - Failed to create rule: %v", err)
			handlers.RespondServiceUnavailable(w)
		}
		return
	}

	h.logger.Info("POST /working-hours - Rule created: rule_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Delete DELETE /api/v1/working-hours/{ruleId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ruleID, err := strconv.ParseInt(mux.Vars(r)["ruleId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /working-hours/{id} - Invalid rule ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRuleID)
		return
	}

	if err := h.service.DeleteRule(r.Context(), ruleID); err != nil {
		switch {
		case errors.Is(err, calendar.ErrRuleNotFound):
			h.logger.Warn("DELETE /working-hours/{id} - Rule not found: rule_id=%d", ruleID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /working-hours/{id} - Failed to delete rule: rule_id=%d, error=%v", ruleID, err)
			handlers.RespondServiceUnavailable(w)
		}
		return
	}

	h.logger.Info("DELETE /working-hours/{id} - Rule deleted: rule_id=%d", ruleID)
	handlers.RespondNoContent(w)
}
