package auditservice

import "time"

// Event событие аудита, отправляемое во внешний журнал
type Event struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	BookingID  int64          `json:"booking_id"`
	ClientID   int64          `json:"client_id"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload,omitempty"`
}

// ErrorResponse модель ошибки от сервиса аудита
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
