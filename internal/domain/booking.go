package domain

import "time"

// BookingStatus статус записи на приём
type BookingStatus string

const (
	StatusBooked    BookingStatus = "BOOKED"
	StatusArrived   BookingStatus = "ARRIVED"
	StatusCompleted BookingStatus = "COMPLETED"
	StatusCancelled BookingStatus = "CANCELLED"
	StatusNoShow    BookingStatus = "NO_SHOW"
)

// Booking запись клиента на приём
type Booking struct {
	ID        int64
	ClientID  int64
	Start     time.Time
	End       time.Time
	Status    BookingStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OccupiesTime возвращает true, если запись занимает время в расписании
// Только отменённые записи освобождают время
func (b *Booking) OccupiesTime() bool {
	return b.Status != StatusCancelled
}

// IsTerminal возвращает true, если статус записи больше не может меняться
func (b *Booking) IsTerminal() bool {
	return b.Status.IsTerminal()
}

// Interval возвращает интервал записи [Start, End)
func (b *Booking) Interval() Interval {
	return Interval{Start: b.Start, End: b.End}
}

// BookingsFilter фильтр для выборки записей
type BookingsFilter struct {
	From             *time.Time     // Записи, заканчивающиеся после From
	To               *time.Time     // Записи, начинающиеся до To
	ClientID         *int64         // Фильтр по клиенту (опционально)
	Status           *BookingStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool           // Включать ли отменённые записи
}
