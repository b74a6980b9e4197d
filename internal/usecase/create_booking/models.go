package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
)

// Request модель запроса на создание записи
type Request struct {
	ClientID int64     // ID клиента
	Start    time.Time // Начало приёма
	End      time.Time // Конец приёма (не включительно)
}

// Response модель ответа с созданной записью
type Response struct {
	ID        int64
	ClientID  int64
	Start     time.Time
	End       time.Time
	Status    domain.BookingStatus
	CreatedAt time.Time
}

func fromDomain(b *domain.Booking) *Response {
	return &Response{
		ID:        b.ID,
		ClientID:  b.ClientID,
		Start:     b.Start,
		End:       b.End,
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
	}
}
