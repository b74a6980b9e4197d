// Package memstore хранилище в памяти с тем же контрактом, что и репозитории Postgres.
// Только для тестов use case, сервисов и обработчиков: cmd его не подключает.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/booking"
	calendarRepo "github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/calendar"
	clientRepo "github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/client"
	settingsRepo "github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/settings"
)

// Store хранилище записей, клиентов, правил, блокировок и настроек
type Store struct {
	mu sync.Mutex

	// SkipOverlapConstraint отключает проверку пересечений при вставке
	// (аналог exclusion constraint в Postgres), чтобы тестировать дисциплину блокировок use case
	SkipOverlapConstraint bool

	// Err, если задан, возвращается всеми операциями
	Err error

	nextID   int64
	bookings map[int64]*domain.Booking
	clients  map[int64]*domain.Client
	rules    map[int64]*domain.WorkingHoursRule
	timeOff  map[int64]*domain.TimeOff
	policy   *domain.SchedulingPolicy

	lockedDays []time.Time
	dayLocks   map[string]*sync.Mutex
}

// New создает пустое хранилище
func New() *Store {
	return &Store{
		bookings: make(map[int64]*domain.Booking),
		clients:  make(map[int64]*domain.Client),
		rules:    make(map[int64]*domain.WorkingHoursRule),
		timeOff:  make(map[int64]*domain.TimeOff),
		dayLocks: make(map[string]*sync.Mutex),
	}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

// AddClient добавляет клиента
func (s *Store) AddClient(fullName string) *domain.Client {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := &domain.Client{ID: s.id(), FullName: fullName}
	s.clients[c.ID] = c
	return c
}

// LockedDays возвращает дни, переданные в LockDays (в порядке вызовов)
func (s *Store) LockedDays() []time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Time(nil), s.lockedDays...)
}

// Bookings возвращает все записи, включая отменённые
func (s *Store) Bookings() []*domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*domain.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		copied := *b
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// Клиенты

// GetClient получает клиента по ID
func (s *Store) GetClient(_ context.Context, id int64) (*domain.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	c, ok := s.clients[id]
	if !ok {
		return nil, clientRepo.ErrClientNotFound
	}
	copied := *c
	return &copied, nil
}

// Записи

// LockDays берёт блокировки дней до конца транзакции, по возрастанию даты
// Вне транзакции TxManager возвращается ErrLock, как в репозитории Postgres.
func (s *Store) LockDays(ctx context.Context, days []time.Time) error {
	scope, ok := scopeFromContext(ctx)
	if !ok {
		return fmt.Errorf("%w: LockDays - transaction required", bookingRepo.ErrLock)
	}

	s.mu.Lock()
	if s.Err != nil {
		s.mu.Unlock()
		return s.Err
	}
	s.lockedDays = append(s.lockedDays, days...)

	keys := make([]string, 0, len(days))
	for _, day := range days {
		keys = append(keys, day.Format(domain.DateFormat))
	}
	sort.Strings(keys)

	locks := make([]*sync.Mutex, len(keys))
	for i, key := range keys {
		lock, ok := s.dayLocks[key]
		if !ok {
			lock = &sync.Mutex{}
			s.dayLocks[key] = lock
		}
		locks[i] = lock
	}
	s.mu.Unlock()

	for i, key := range keys {
		if scope.hold(key, locks[i]) {
			locks[i].Lock()
		}
	}
	return nil
}

// Create сохраняет запись
func (s *Store) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	if _, ok := s.clients[booking.ClientID]; !ok {
		return nil, bookingRepo.ErrClientNotFound
	}
	if !s.SkipOverlapConstraint && booking.OccupiesTime() {
		for _, existing := range s.bookings {
			if existing.OccupiesTime() && existing.Interval().Overlaps(booking.Interval()) {
				return nil, bookingRepo.ErrOverlap
			}
		}
	}

	stored := *booking
	stored.ID = s.id()
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	s.bookings[stored.ID] = &stored

	result := stored
	return &result, nil
}

// GetBooking получает запись по ID
func (s *Store) GetBooking(_ context.Context, id int64) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	b, ok := s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

// ListOverlapping возвращает неотменённые записи, пересекающие интервал
func (s *Store) ListOverlapping(ctx context.Context, interval domain.Interval) ([]*domain.Booking, error) {
	return s.List(ctx, domain.BookingsFilter{From: &interval.Start, To: &interval.End})
}

// List получает записи по фильтру
func (s *Store) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	result := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if filter.To != nil && !b.Start.Before(*filter.To) {
			continue
		}
		if filter.From != nil && !b.End.After(*filter.From) {
			continue
		}
		if filter.ClientID != nil && b.ClientID != *filter.ClientID {
			continue
		}
		if filter.Status != nil {
			if b.Status != *filter.Status {
				continue
			}
		} else if !filter.IncludeCancelled && !b.OccupiesTime() {
			continue
		}
		copied := *b
		result = append(result, &copied)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Start.Equal(result[j].Start) {
			return result[i].ID < result[j].ID
		}
		return result[i].Start.Before(result[j].Start)
	})
	return result, nil
}

// UpdateStatus обновляет статус записи
func (s *Store) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	b, ok := s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	b.UpdatedAt = time.Now()

	copied := *b
	return &copied, nil
}

// Правила рабочих часов

// ListRules возвращает правила, опционально по дню недели
func (s *Store) ListRules(_ context.Context, weekday *time.Weekday) ([]*domain.WorkingHoursRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	result := make([]*domain.WorkingHoursRule, 0)
	for _, r := range s.rules {
		if weekday != nil && r.Weekday != *weekday {
			continue
		}
		copied := *r
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// CreateRule сохраняет правило
func (s *Store) CreateRule(_ context.Context, rule *domain.WorkingHoursRule) (*domain.WorkingHoursRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	stored := *rule
	if stored.Effective == nil {
		stored.Effective = domain.Standing{}
	}
	stored.ID = s.id()
	s.rules[stored.ID] = &stored

	result := stored
	return &result, nil
}

// DeleteRule удаляет правило
func (s *Store) DeleteRule(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.rules[id]; !ok {
		return calendarRepo.ErrRuleNotFound
	}
	delete(s.rules, id)
	return nil
}

// Блокировки времени

// ListTimeOff возвращает блокировки, опционально пересекающие интервал
func (s *Store) ListTimeOff(_ context.Context, interval *domain.Interval) ([]*domain.TimeOff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	result := make([]*domain.TimeOff, 0)
	for _, off := range s.timeOff {
		if interval != nil && !off.Interval().Overlaps(*interval) {
			continue
		}
		copied := *off
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Start.Before(result[j].Start) })
	return result, nil
}

// CreateTimeOff сохраняет блокировку
func (s *Store) CreateTimeOff(_ context.Context, off *domain.TimeOff) (*domain.TimeOff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	stored := *off
	stored.ID = s.id()
	stored.CreatedAt = time.Now()
	s.timeOff[stored.ID] = &stored

	result := stored
	return &result, nil
}

// DeleteTimeOff удаляет блокировку
func (s *Store) DeleteTimeOff(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.timeOff[id]; !ok {
		return calendarRepo.ErrTimeOffNotFound
	}
	delete(s.timeOff, id)
	return nil
}

// Настройки

// GetPolicy возвращает сохранённую политику
func (s *Store) GetPolicy(_ context.Context) (*domain.SchedulingPolicy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	if s.policy == nil {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	copied := *s.policy
	return &copied, nil
}

// UpsertPolicy сохраняет политику
func (s *Store) UpsertPolicy(_ context.Context, policy *domain.SchedulingPolicy) (*domain.SchedulingPolicy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	stored := *policy
	stored.UpdatedAt = time.Now()
	s.policy = &stored

	result := stored
	return &result, nil
}
