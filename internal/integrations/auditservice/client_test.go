package auditservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicScheduler/pkg/logger"
)

func TestClient_Send(t *testing.T) {
	var received Event
	var idempotencyKey string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/internal/audit/events", r.URL.Path)
		idempotencyKey = r.Header.Get("Idempotency-Key")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, logger.NewNop())
	err := client.Send(context.Background(), Event{Type: "booking.created", BookingID: 7, ClientID: 3})

	require.NoError(t, err)
	assert.Equal(t, "booking.created", received.Type)
	assert.Equal(t, int64(7), received.BookingID)
	assert.Equal(t, received.ID, idempotencyKey)
	_, err = uuid.Parse(received.ID)
	assert.NoError(t, err)
	assert.False(t, received.OccurredAt.IsZero())
}

func TestClient_Send_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(ErrorResponse{Code: 500, Message: "journal is down"})
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, logger.NewNop())
	err := client.Send(context.Background(), Event{Type: "booking.created"})

	assert.ErrorIs(t, err, ErrInvalidResponse)
	assert.Contains(t, err.Error(), "journal is down")
}

func TestClient_Send_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(url, time.Second, logger.NewNop())
	assert.ErrorIs(t, client.Send(context.Background(), Event{Type: "booking.created"}), ErrInternal)
}

func TestClient_Send_DisabledSink(t *testing.T) {
	client := NewClient("", time.Second, logger.NewNop())
	assert.NoError(t, client.Send(context.Background(), Event{Type: "booking.created"}))
}
