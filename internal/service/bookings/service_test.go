package bookings

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/memstore"
	"github.com/m04kA/SMC-ClinicScheduler/internal/integrations/auditservice"
	"github.com/m04kA/SMC-ClinicScheduler/internal/service/bookings/models"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/logger"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/metrics"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/ptr"
)

type fakeAudit struct {
	mu     sync.Mutex
	events []auditservice.Event
}

func (a *fakeAudit) Send(_ context.Context, event auditservice.Event) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, event)
	return nil
}

type fixture struct {
	store   *memstore.Store
	audit   *fakeAudit
	metrics *metrics.Metrics
	svc     *Service
}

func newFixture() *fixture {
	store := memstore.New()
	audit := &fakeAudit{}
	m := metrics.New("test", prometheus.NewRegistry())
	svc := NewService(store.BookingRepo(), audit, memstore.NewTxManager(), m, logger.NewNop())
	return &fixture{store: store, audit: audit, metrics: m, svc: svc}
}

func (f *fixture) booking(t *testing.T, status domain.BookingStatus) *domain.Booking {
	t.Helper()

	client := f.store.AddClient("Ólafur")
	start := time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC).Add(time.Duration(client.ID) * time.Hour)
	b, err := f.store.Create(context.Background(), &domain.Booking{
		ClientID: client.ID, Start: start, End: start.Add(30 * time.Minute), Status: domain.StatusBooked,
	})
	require.NoError(t, err)

	if status != domain.StatusBooked {
		b, err = f.store.UpdateStatus(context.Background(), b.ID, status)
		require.NoError(t, err)
	}
	return b
}

func TestUpdateStatus_TransitionTable(t *testing.T) {
	allowed := map[domain.BookingStatus][]domain.BookingStatus{
		domain.StatusBooked:  {domain.StatusArrived, domain.StatusNoShow, domain.StatusCancelled},
		domain.StatusArrived: {domain.StatusCompleted, domain.StatusNoShow},
	}
	isAllowed := func(from, to domain.BookingStatus) bool {
		for _, s := range allowed[from] {
			if s == to {
				return true
			}
		}
		return false
	}

	for _, from := range domain.AllStatuses {
		for _, to := range domain.AllStatuses {
			from, to := from, to
			t.Run(string(from)+"->"+string(to), func(t *testing.T) {
				f := newFixture()
				b := f.booking(t, from)

				resp, err := f.svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
					BookingID: b.ID,
					Action:    strings.ToLower(string(to)),
				})

				stored, getErr := f.store.GetBooking(context.Background(), b.ID)
				require.NoError(t, getErr)

				switch {
				case from == to:
					require.NoError(t, err)
					assert.False(t, resp.Changed)
					assert.Equal(t, string(from), resp.Booking.Status)
					assert.Empty(t, f.audit.events, "no-op must not be audited")
				case isAllowed(from, to):
					require.NoError(t, err)
					assert.True(t, resp.Changed)
					assert.Equal(t, string(from), resp.PreviousStatus)
					assert.Equal(t, to, stored.Status)
					require.Len(t, f.audit.events, 1)
					assert.Equal(t, domain.AuditBookingStatusChanged, f.audit.events[0].Type)
				default:
					require.Error(t, err)
					assert.ErrorIs(t, err, domain.ErrInvalidTransition)
					var transitionErr *domain.InvalidTransitionError
					require.True(t, errors.As(err, &transitionErr))
					assert.Equal(t, from, transitionErr.From)
					assert.Equal(t, to, transitionErr.To)
					assert.Equal(t, from, stored.Status, "status must stay unchanged")
					assert.Equal(t, float64(1), testutil.ToFloat64(
						f.metrics.StatusTransitions.WithLabelValues(string(from), string(to), transitionRejected)))
				}
			})
		}
	}
}

func TestUpdateStatus_NotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{BookingID: 42, Action: "arrived"})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestUpdateStatus_UnknownAction(t *testing.T) {
	f := newFixture()
	b := f.booking(t, domain.StatusBooked)

	_, err := f.svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{BookingID: b.ID, Action: "teleport"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus_StoreUnavailable(t *testing.T) {
	f := newFixture()
	b := f.booking(t, domain.StatusBooked)
	f.store.Err = errors.New("connection reset")

	_, err := f.svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{BookingID: b.ID, Action: "arrived"})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestGetByID(t *testing.T) {
	f := newFixture()
	b := f.booking(t, domain.StatusArrived)

	resp, err := f.svc.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, resp.ID)
	assert.Equal(t, "ARRIVED", resp.Status)
	assert.Equal(t, 30, resp.DurationMinutes)

	_, err = f.svc.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestList(t *testing.T) {
	f := newFixture()
	active := f.booking(t, domain.StatusBooked)
	cancelled := f.booking(t, domain.StatusCancelled)

	resp, err := f.svc.List(context.Background(), &models.ListBookingsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, active.ID, resp.Bookings[0].ID)

	resp, err = f.svc.List(context.Background(), &models.ListBookingsRequest{IncludeCancelled: true})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)

	resp, err = f.svc.List(context.Background(), &models.ListBookingsRequest{Status: ptr.Ptr("cancelled")})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, cancelled.ID, resp.Bookings[0].ID)

	_, err = f.svc.List(context.Background(), &models.ListBookingsRequest{Status: ptr.Ptr("lost")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	from := time.Date(2025, time.March, 4, 0, 0, 0, 0, time.UTC)
	_, err = f.svc.List(context.Background(), &models.ListBookingsRequest{From: &from, To: &from})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
