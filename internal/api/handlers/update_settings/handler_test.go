package update_settings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ClinicScheduler/internal/service/settings"
	"github.com/m04kA/SMC-ClinicScheduler/internal/service/settings/models"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/logger"
)

type fakeService struct {
	err error
}

func (f *fakeService) Update(_ context.Context, req *models.UpdatePolicyRequest) (*models.PolicyResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	resp := &models.PolicyResponse{SlotLengthMinutes: 30, Source: models.SourceStored}
	if req.BufferMinutes != nil {
		resp.BufferMinutes = *req.BufferMinutes
	}
	return resp, nil
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{"частичное обновление", `{"bufferMinutes":10}`, nil, http.StatusOK},
		{"пустое обновление", `{}`, nil, http.StatusBadRequest},
		{"неизвестное поле", `{"slotLength":10}`, nil, http.StatusBadRequest},
		{"значение вне границ", `{"slotLengthMinutes":1}`, settings.ErrInvalidInput, http.StatusBadRequest},
		{"хранилище недоступно", `{"bufferMinutes":10}`, settings.ErrStoreUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeService{err: tt.err}, logger.NewNop())
			w := httptest.NewRecorder()

			h.Handle(w, httptest.NewRequest(http.MethodPut, "/api/v1/settings/scheduling", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
