package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Исходы допуска бронирования
const (
	OutcomeAdmitted     = "admitted"
	OutcomeConflict     = "conflict"
	OutcomeInvalid      = "invalid"
	OutcomeNotFound     = "not_found"
	OutcomeStoreFailure = "store_failure"
)

// Metrics коллектор метрик сервиса
// Методы Observe* безопасны для nil-получателя
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  prometheus.Gauge
	DBInUseConnections prometheus.Gauge
	DBIdleConnections  prometheus.Gauge
	DBWaitCount        prometheus.Gauge

	BookingAdmissions  *prometheus.CounterVec
	StatusTransitions  *prometheus.CounterVec
	SlotsGenerated     prometheus.Histogram
	AuditDeliveryFails prometheus.Counter
}

// New создает и регистрирует метрики в reg
// Если метрики выключены, передаётся prometheus.NewRegistry(), который нигде не публикуется
func New(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		DBOpenConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}),
		DBInUseConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}),
		DBIdleConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}),
		DBWaitCount: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}),

		BookingAdmissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_admissions_total",
			Help:        "Booking admission attempts by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),

		StatusTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_status_transitions_total",
			Help:        "Booking status change attempts",
			ConstLabels: constLabels,
		}, []string{"from", "to", "result"}),

		SlotsGenerated: factory.NewHistogram(prometheus.HistogramOpts{
			Name:        "slots_generated_per_day",
			Help:        "Number of bookable slots returned for a single day",
			ConstLabels: constLabels,
			Buckets:     []float64{0, 1, 2, 4, 8, 16, 32, 64},
		}),

		AuditDeliveryFails: factory.NewCounter(prometheus.CounterOpts{
			Name:        "audit_delivery_failures_total",
			Help:        "Audit events that could not be delivered",
			ConstLabels: constLabels,
		}),
	}
}

// ObserveAdmission учитывает исход допуска бронирования
func (m *Metrics) ObserveAdmission(outcome string) {
	if m == nil {
		return
	}
	m.BookingAdmissions.WithLabelValues(outcome).Inc()
}

// ObserveTransition учитывает попытку смены статуса
func (m *Metrics) ObserveTransition(from, to, result string) {
	if m == nil {
		return
	}
	m.StatusTransitions.WithLabelValues(from, to, result).Inc()
}

// ObserveSlots учитывает количество сгенерированных слотов
func (m *Metrics) ObserveSlots(count int) {
	if m == nil {
		return
	}
	m.SlotsGenerated.Observe(float64(count))
}

// ObserveAuditFailure учитывает недоставленное событие аудита
func (m *Metrics) ObserveAuditFailure() {
	if m == nil {
		return
	}
	m.AuditDeliveryFails.Inc()
}
