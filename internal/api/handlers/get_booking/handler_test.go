package get_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ClinicScheduler/internal/service/bookings"
	"github.com/m04kA/SMC-ClinicScheduler/internal/service/bookings/models"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/logger"
)

type fakeService struct {
	err error
}

func (f *fakeService) GetByID(_ context.Context, id int64) (*models.BookingResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{ID: id, Status: "BOOKED"}, nil
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		err        error
		wantStatus int
	}{
		{"успех", "5", nil, http.StatusOK},
		{"некорректный ID", "abc", nil, http.StatusBadRequest},
		{"не найдена", "5", bookings.ErrBookingNotFound, http.StatusNotFound},
		{"хранилище недоступно", "5", bookings.ErrStoreUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeService{err: tt.err}, logger.NewNop())
			r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/v1/bookings/"+tt.id, nil),
				map[string]string{"bookingId": tt.id})
			w := httptest.NewRecorder()

			h.Handle(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
