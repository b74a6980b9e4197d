package create_booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	createBooking "github.com/m04kA/SMC-ClinicScheduler/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/logger"
)

type fakeUseCase struct {
	got *createBooking.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &createBooking.Response{
		ID:       7,
		ClientID: req.ClientID,
		Start:    req.Start,
		End:      req.End,
		Status:   domain.StatusBooked,
	}, nil
}

const validBody = `{"clientId":3,"start":"2025-03-03T09:00:00Z","end":"2025-03-03T09:30:00Z"}`

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{}
	h := NewHandler(uc, logger.NewNop())
	w := httptest.NewRecorder()

	h.Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(validBody)))

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(3), uc.got.ClientID)
	assert.True(t, uc.got.Start.Equal(time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)))

	var body BookingResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, int64(7), body.ID)
	assert.Equal(t, "BOOKED", body.Status)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{"некорректный JSON", `{"clientId":"x"}`, nil, http.StatusBadRequest},
		{"некорректный интервал", validBody, fmt.Errorf("%w: start >= end", createBooking.ErrInvalidInterval), http.StatusBadRequest},
		{"клиент не найден", validBody, createBooking.ErrClientNotFound, http.StatusNotFound},
		{"конфликт", validBody, createBooking.ErrConflict, http.StatusConflict},
		{"хранилище недоступно", validBody, fmt.Errorf("%w: db", createBooking.ErrStoreUnavailable), http.StatusServiceUnavailable},
		{"неизвестная ошибка", validBody, errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, logger.NewNop())
			w := httptest.NewRecorder()

			h.Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
