package get_settings

import (
	"net/http"

	"github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers"
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

// Handle GET /api/v1/settings/scheduling
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	policy, err := h.service.Get(r.Context())
	if err != nil {
		h.logger.Error("GET /settings/scheduling - Failed to get policy: %v", err)
		handlers.RespondServiceUnavailable(w)
		return
	}

	h.logger.Info("GET /settings/scheduling - Policy retrieved: source=%s", policy.Source)
	handlers.RespondJSON(w, http.StatusOK, policy)
}
