package memstore

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
)

// BookingRepo представление Store с контрактом booking.Repository
type BookingRepo struct{ s *Store }

// BookingRepo возвращает репозиторий записей поверх хранилища
func (s *Store) BookingRepo() *BookingRepo { return &BookingRepo{s: s} }

func (r *BookingRepo) LockDays(ctx context.Context, days []time.Time) error {
	return r.s.LockDays(ctx, days)
}

func (r *BookingRepo) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	return r.s.Create(ctx, b)
}

func (r *BookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.s.GetBooking(ctx, id)
}

func (r *BookingRepo) ListOverlapping(ctx context.Context, interval domain.Interval) ([]*domain.Booking, error) {
	return r.s.ListOverlapping(ctx, interval)
}

func (r *BookingRepo) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	return r.s.List(ctx, filter)
}

func (r *BookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	return r.s.UpdateStatus(ctx, id, status)
}

// ClientRepo представление Store с контрактом client.Repository
type ClientRepo struct{ s *Store }

// ClientRepo возвращает справочник клиентов поверх хранилища
func (s *Store) ClientRepo() *ClientRepo { return &ClientRepo{s: s} }

func (r *ClientRepo) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	return r.s.GetClient(ctx, id)
}

// SettingsRepo представление Store с контрактом settings.Repository
type SettingsRepo struct{ s *Store }

// SettingsRepo возвращает репозиторий настроек поверх хранилища
func (s *Store) SettingsRepo() *SettingsRepo { return &SettingsRepo{s: s} }

func (r *SettingsRepo) Get(ctx context.Context) (*domain.SchedulingPolicy, error) {
	return r.s.GetPolicy(ctx)
}

func (r *SettingsRepo) Upsert(ctx context.Context, p *domain.SchedulingPolicy) (*domain.SchedulingPolicy, error) {
	return r.s.UpsertPolicy(ctx, p)
}
