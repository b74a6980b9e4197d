package get_next_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers"
	findNextSlot "github.com/m04kA/SMC-ClinicScheduler/internal/usecase/find_next_slot"
)

const (
	msgInvalidNow = "некорректный параметр now, ожидается RFC3339"
	msgNoSlot     = "свободных слотов в ближайшие 30 дней нет"
)

type Handler struct {
	useCase FindNextSlotUseCase
	logger  Logger
}

func NewHandler(useCase FindNextSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots/next
// Query params: now (опционально, RFC3339)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	useCaseReq, err := ToUseCaseRequest(r.URL.Query().Get("now"))
	if err != nil {
		h.logger.Warn("GET /slots/next - Invalid now: %v", err)
		handlers.RespondBadRequest(w, msgInvalidNow)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, findNextSlot.ErrStoreUnavailable):
			h.logger.Error("GET /slots/next - Store unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /slots/next - Failed to find slot: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if result.Slot == nil {
		h.logger.Info("GET /slots/next - No slot found: searched_from=%s, days_scanned=%d",
			result.SearchedFrom.Format("2006-01-02"), result.DaysScanned)
		handlers.RespondNotFound(w, msgNoSlot)
		return
	}

	h.logger.Info("GET /slots/next - Slot found: start=%s", result.Slot.Start.Format("2006-01-02T15:04Z07:00"))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
