package list_bookings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicScheduler/internal/service/bookings"
	"github.com/m04kA/SMC-ClinicScheduler/internal/service/bookings/models"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/logger"
)

type fakeService struct {
	got *models.ListBookingsRequest
	err error
}

func (f *fakeService) List(_ context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingListResponse{Bookings: []models.BookingResponse{}}, nil
}

func TestHandle_ParsesFilter(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, logger.NewNop())
	w := httptest.NewRecorder()

	h.Handle(w, httptest.NewRequest(http.MethodGet,
		"/api/v1/bookings?from=2025-03-03T00:00:00Z&to=2025-03-04T00:00:00Z&clientId=3&status=arrived&includeCancelled=true", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.got.From)
	assert.True(t, svc.got.From.Equal(time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, int64(3), *svc.got.ClientID)
	assert.Equal(t, "arrived", *svc.got.Status)
	assert.True(t, svc.got.IncludeCancelled)
	assert.JSONEq(t, `{"bookings":[]}`, w.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		err        error
		wantStatus int
	}{
		{"некорректный from", "?from=yesterday", nil, http.StatusBadRequest},
		{"некорректный clientId", "?clientId=x", nil, http.StatusBadRequest},
		{"некорректный includeCancelled", "?includeCancelled=maybe", nil, http.StatusBadRequest},
		{"неизвестный статус", "?status=lost", bookings.ErrInvalidInput, http.StatusBadRequest},
		{"хранилище недоступно", "", bookings.ErrStoreUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeService{err: tt.err}, logger.NewNop())
			w := httptest.NewRecorder()

			h.Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/bookings"+tt.query, nil))

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
