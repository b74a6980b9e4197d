package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicScheduler/pkg/metrics"
)

type recordingLogger struct {
	infos, warns, errors []string
}

func (l *recordingLogger) Info(format string, _ ...interface{})  { l.infos = append(l.infos, format) }
func (l *recordingLogger) Warn(format string, _ ...interface{})  { l.warns = append(l.warns, format) }
func (l *recordingLogger) Error(format string, _ ...interface{}) { l.errors = append(l.errors, format) }

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetRequestID(r.Context())
	}))

	t.Run("генерируется, если заголовка нет", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		require.NotEmpty(t, seen)
		assert.Equal(t, seen, w.Header().Get(HeaderRequestID))
	})

	t.Run("берётся из заголовка", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set(HeaderRequestID, "abc-123")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		assert.Equal(t, "abc-123", seen)
		assert.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))
	})

	t.Run("слишком длинный заменяется", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set(HeaderRequestID, strings.Repeat("x", requestIDMaxLen+1))
		h.ServeHTTP(httptest.NewRecorder(), r)

		assert.Len(t, seen, 36)
	})
}

func TestLogging_LevelByStatus(t *testing.T) {
	tests := []struct {
		status              int
		infos, warns, fails int
	}{
		{http.StatusOK, 1, 0, 0},
		{http.StatusConflict, 0, 1, 0},
		{http.StatusServiceUnavailable, 0, 0, 1},
	}

	for _, tt := range tests {
		log := &recordingLogger{}
		h := Logging(log)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(tt.status)
		}))

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Len(t, log.infos, tt.infos, "status %d", tt.status)
		assert.Len(t, log.warns, tt.warns, "status %d", tt.status)
		assert.Len(t, log.errors, tt.fails, "status %d", tt.status)
	}
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := metrics.New("test", prometheus.NewRegistry())

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/bookings/{bookingId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/bookings/1", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/bookings/2", nil))

	count := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/bookings/{bookingId}", "404"))
	assert.Equal(t, float64(2), count)
}
