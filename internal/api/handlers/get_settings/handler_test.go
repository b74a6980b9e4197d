package get_settings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/memstore"
	"github.com/m04kA/SMC-ClinicScheduler/internal/service/settings"
	"github.com/m04kA/SMC-ClinicScheduler/internal/service/settings/models"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/logger"
)

func TestHandle_DefaultPolicy(t *testing.T) {
	svc := settings.NewService(memstore.New().SettingsRepo(), domain.DefaultSchedulingPolicy(), logger.NewNop())
	h := NewHandler(svc, logger.NewNop())
	w := httptest.NewRecorder()

	h.Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/settings/scheduling", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body models.PolicyResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, domain.DefaultSlotLengthMinutes, body.SlotLengthMinutes)
	assert.Equal(t, models.SourceDefault, body.Source)
}

type failingService struct{}

func (failingService) Get(context.Context) (*models.PolicyResponse, error) {
	return nil, settings.ErrStoreUnavailable
}

func TestHandle_StoreUnavailable(t *testing.T) {
	h := NewHandler(failingService{}, logger.NewNop())
	w := httptest.NewRecorder()

	h.Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/settings/scheduling", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
