package models

import (
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
)

// Request модели

// UpdateStatusRequest запрос на смену статуса записи
// Action - целевой статус (booked, arrived, completed, cancelled, no_show), регистр не важен
type UpdateStatusRequest struct {
	BookingID int64  `json:"-"`
	Action    string `json:"action"`
}

// ListBookingsRequest запрос на получение записей за период
type ListBookingsRequest struct {
	From             *time.Time `json:"from,omitempty"`
	To               *time.Time `json:"to,omitempty"`
	ClientID         *int64     `json:"clientId,omitempty"`
	Status           *string    `json:"status,omitempty"`
	IncludeCancelled bool       `json:"includeCancelled,omitempty"`
}

// Response модели

// BookingResponse ответ с данными записи
type BookingResponse struct {
	ID              int64     `json:"id"`
	ClientID        int64     `json:"clientId"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком записей
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// UpdateStatusResponse результат смены статуса
type UpdateStatusResponse struct {
	Booking        *BookingResponse `json:"booking"`
	PreviousStatus string           `json:"previousStatus"`
	Changed        bool             `json:"changed"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:              b.ID,
		ClientID:        b.ClientID,
		Start:           b.Start,
		End:             b.End,
		DurationMinutes: int(b.End.Sub(b.Start).Minutes()),
		Status:          string(b.Status),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, b := range bookings {
		if item := FromDomainBooking(b); item != nil {
			resp.Bookings = append(resp.Bookings, *item)
		}
	}

	return resp
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		From:             r.From,
		To:               r.To,
		ClientID:         r.ClientID,
		IncludeCancelled: r.IncludeCancelled,
	}

	if r.Status != nil {
		status, err := domain.ParseStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}
