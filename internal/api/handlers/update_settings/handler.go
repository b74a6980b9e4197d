package update_settings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicScheduler/internal/service/settings"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgEmptyUpdate        = "не передано ни одного поля для обновления"
	msgInvalidData        = "некорректные параметры расписания"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/settings/scheduling
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /settings/scheduling - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.IsEmpty() {
		h.logger.Warn("PUT /settings/scheduling - Empty update")
		handlers.RespondBadRequest(w, msgEmptyUpdate)
		return
	}

	result, err := h.service.Update(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrInvalidInput):
			h.logger.Warn("PUT /settings/scheduling - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, settings.ErrStoreUnavailable):
			h.logger.Error("PUT /settings/scheduling - Store unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("PUT /settings/scheduling - Failed to update policy: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /settings/scheduling - Policy updated: slot=%d, buffer=%d, block_holidays=%t",
		result.SlotLengthMinutes, result.BufferMinutes, result.BlockPublicHolidays)
	handlers.RespondJSON(w, http.StatusOK, result)
}
