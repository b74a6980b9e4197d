package create_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/memstore"
	"github.com/m04kA/SMC-ClinicScheduler/internal/integrations/auditservice"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/logger"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/metrics"
)

type fakeAudit struct {
	mu     sync.Mutex
	events []auditservice.Event
	err    error
}

func (a *fakeAudit) Send(_ context.Context, event auditservice.Event) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, event)
	return a.err
}

type fixture struct {
	store   *memstore.Store
	tx      *memstore.TxManager
	audit   *fakeAudit
	metrics *metrics.Metrics
	uc      *UseCase
	client  *domain.Client
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memstore.New()
	tx := memstore.NewTxManager()
	audit := &fakeAudit{}
	m := metrics.New("test", prometheus.NewRegistry())

	f := &fixture{store: store, tx: tx, audit: audit, metrics: m}
	f.uc = NewUseCase(store.BookingRepo(), store.ClientRepo(), store, audit, tx, m, time.UTC, logger.NewNop())
	f.client = store.AddClient("Jón Jónsson")
	return f
}

func (f *fixture) admissions(outcome string) float64 {
	return testutil.ToFloat64(f.metrics.BookingAdmissions.WithLabelValues(outcome))
}

func at(hour, minute int) time.Time {
	return time.Date(2025, time.March, 3, hour, minute, 0, 0, time.UTC)
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), &Request{ClientID: f.client.ID, Start: at(10, 0), End: at(10, 30)})

	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	assert.Equal(t, domain.StatusBooked, resp.Status)
	assert.Equal(t, at(10, 0), resp.Start)

	require.Len(t, f.audit.events, 1)
	assert.Equal(t, domain.AuditBookingCreated, f.audit.events[0].Type)
	assert.Equal(t, resp.ID, f.audit.events[0].BookingID)

	assert.Equal(t, []time.Time{at(0, 0)}, f.store.LockedDays())
	assert.Equal(t, float64(1), f.admissions(metrics.OutcomeAdmitted))
}

func TestExecute_InvalidInterval(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
	}{
		{"start равен end", &Request{ClientID: 1, Start: at(10, 0), End: at(10, 0)}},
		{"start позже end", &Request{ClientID: 1, Start: at(11, 0), End: at(10, 0)}},
		{"нет времени", &Request{ClientID: 1}},
		{"нет клиента", &Request{Start: at(10, 0), End: at(11, 0)}},
		{"больше суток", &Request{ClientID: 1, Start: at(10, 0), End: at(10, 1).AddDate(0, 0, 1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.uc.Execute(context.Background(), tt.req)

			assert.ErrorIs(t, err, ErrInvalidInterval)
			assert.Empty(t, f.store.Bookings())
			assert.Zero(t, f.tx.Calls())
		})
	}
}

func TestExecute_ClientNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), &Request{ClientID: 999, Start: at(10, 0), End: at(11, 0)})

	assert.ErrorIs(t, err, ErrClientNotFound)
	assert.Equal(t, float64(1), f.admissions(metrics.OutcomeNotFound))
}

func TestExecute_Conflicts(t *testing.T) {
	tests := []struct {
		name       string
		start, end time.Time
		conflict   bool
	}{
		{"начинается внутри существующей", at(10, 15), at(10, 45), true},
		{"заканчивается внутри существующей", at(9, 45), at(10, 15), true},
		{"полностью содержит существующую", at(9, 0), at(11, 0), true},
		{"внутри существующей", at(10, 10), at(10, 20), true},
		{"совпадает", at(10, 0), at(10, 30), true},
		{"вплотную после", at(10, 30), at(11, 0), false},
		{"вплотную до", at(9, 30), at(10, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.uc.Execute(context.Background(), &Request{ClientID: f.client.ID, Start: at(10, 0), End: at(10, 30)})
			require.NoError(t, err)

			_, err = f.uc.Execute(context.Background(), &Request{ClientID: f.client.ID, Start: tt.start, End: tt.end})

			if tt.conflict {
				assert.ErrorIs(t, err, ErrConflict)
				assert.Len(t, f.store.Bookings(), 1)
				assert.Equal(t, float64(1), f.admissions(metrics.OutcomeConflict))
			} else {
				assert.NoError(t, err)
				assert.Len(t, f.store.Bookings(), 2)
			}
		})
	}
}

func TestExecute_CancelledBookingFreesTime(t *testing.T) {
	f := newFixture(t)
	first, err := f.uc.Execute(context.Background(), &Request{ClientID: f.client.ID, Start: at(10, 0), End: at(10, 30)})
	require.NoError(t, err)

	_, err = f.store.UpdateStatus(context.Background(), first.ID, domain.StatusCancelled)
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), &Request{ClientID: f.client.ID, Start: at(10, 0), End: at(10, 30)})
	assert.NoError(t, err)
}

func TestExecute_TimeOffConflict(t *testing.T) {
	f := newFixture(t)
	_, err := f.store.CreateTimeOff(context.Background(), &domain.TimeOff{Start: at(12, 0), End: at(14, 0), Reason: "ráðstefna"})
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), &Request{ClientID: f.client.ID, Start: at(13, 30), End: at(14, 30)})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = f.uc.Execute(context.Background(), &Request{ClientID: f.client.ID, Start: at(14, 0), End: at(14, 30)})
	assert.NoError(t, err)
}

// blindRepo не видит существующих записей, имитируя гонку, которую ловит только ограничение хранилища
type blindRepo struct {
	*memstore.BookingRepo
}

func (blindRepo) ListOverlapping(context.Context, domain.Interval) ([]*domain.Booking, error) {
	return nil, nil
}

func TestExecute_StorageConstraintMapsToConflict(t *testing.T) {
	f := newFixture(t)
	uc := NewUseCase(blindRepo{f.store.BookingRepo()}, f.store.ClientRepo(), f.store, f.audit, f.tx, f.metrics, time.UTC, logger.NewNop())

	_, err := uc.Execute(context.Background(), &Request{ClientID: f.client.ID, Start: at(10, 0), End: at(10, 30)})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), &Request{ClientID: f.client.ID, Start: at(10, 0), End: at(10, 30)})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestExecute_StoreUnavailable(t *testing.T) {
	f := newFixture(t)
	f.store.Err = errors.New("connection refused")

	_, err := f.uc.Execute(context.Background(), &Request{ClientID: f.client.ID, Start: at(10, 0), End: at(10, 30)})

	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.Equal(t, float64(1), f.admissions(metrics.OutcomeStoreFailure))
}

func TestExecute_AuditFailureKeepsBooking(t *testing.T) {
	f := newFixture(t)
	f.audit.err = errors.New("audit journal is down")

	resp, err := f.uc.Execute(context.Background(), &Request{ClientID: f.client.ID, Start: at(10, 0), End: at(10, 30)})

	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	assert.Len(t, f.store.Bookings(), 1)
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.AuditDeliveryFails))
}

func TestExecute_LocksEveryTouchedDay(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), &Request{ClientID: f.client.ID, Start: at(23, 0), End: at(1, 0).AddDate(0, 0, 1)})

	require.NoError(t, err)
	assert.Equal(t, []time.Time{at(0, 0), at(0, 0).AddDate(0, 0, 1)}, f.store.LockedDays())
}

// slowBookingRepo расширяет окно между чтением пересечений и вставкой
type slowBookingRepo struct {
	*memstore.BookingRepo
	skipLocks bool
}

func (r *slowBookingRepo) LockDays(ctx context.Context, days []time.Time) error {
	if r.skipLocks {
		return nil
	}
	return r.BookingRepo.LockDays(ctx, days)
}

func (r *slowBookingRepo) ListOverlapping(ctx context.Context, interval domain.Interval) ([]*domain.Booking, error) {
	bookings, err := r.BookingRepo.ListOverlapping(ctx, interval)
	time.Sleep(20 * time.Millisecond)
	return bookings, err
}

// runConcurrentAdmissions запускает одновременные записи на один и тот же слот
// при отключённом ограничении хранилища; транзакции memstore идут параллельно
func runConcurrentAdmissions(t *testing.T, skipLocks bool) (admitted, conflicts, stored int) {
	t.Helper()
	const attempts = 16

	f := newFixture(t)
	f.store.SkipOverlapConstraint = true
	repo := &slowBookingRepo{BookingRepo: f.store.BookingRepo(), skipLocks: skipLocks}
	uc := NewUseCase(repo, f.store.ClientRepo(), f.store, f.audit, f.tx, f.metrics, time.UTC, logger.NewNop())

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	start := make(chan struct{})

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = uc.Execute(context.Background(), &Request{ClientID: f.client.ID, Start: at(10, 0), End: at(10, 30)})
		}(i)
	}
	close(start)
	wg.Wait()

	for _, err := range errs {
		switch {
		case err == nil:
			admitted++
		case errors.Is(err, ErrConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	return admitted, conflicts, len(f.store.Bookings())
}

// От двойной записи защищает только блокировка дня, взятая до проверки пересечений
func TestExecute_ConcurrentAdmissions(t *testing.T) {
	admitted, conflicts, stored := runConcurrentAdmissions(t, false)

	assert.Equal(t, 1, admitted)
	assert.Equal(t, 15, conflicts)
	assert.Equal(t, 1, stored)
}

// Без блокировки дня параллельные проверки видят пустой слот и пропускают дубли
func TestExecute_ConcurrentAdmissionsWithoutDayLocks(t *testing.T) {
	admitted, _, stored := runConcurrentAdmissions(t, true)

	assert.Greater(t, admitted, 1)
	assert.Equal(t, admitted, stored)
}

func TestExecute_LockDaysOutsideTransaction(t *testing.T) {
	store := memstore.New()

	err := store.BookingRepo().LockDays(context.Background(), []time.Time{at(0, 0)})

	assert.ErrorIs(t, err, bookingRepo.ErrLock)
}
