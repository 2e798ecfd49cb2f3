package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec
	DBOpenConns     prometheus.Gauge
	DBInUseConns    prometheus.Gauge
	DBWaitCount     prometheus.Gauge

	ReservationsTotal     *prometheus.CounterVec
	ConfirmationsTotal    *prometheus.CounterVec
	HoursFallbackTotal    prometheus.Counter
	SweptReservations     prometheus.Counter
	NotificationsTotal    *prometheus.CounterVec
	HoursCacheLookupTotal *prometheus.CounterVec
}

// New создаёт и регистрирует метрики в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создаёт метрики в указанном реестре (тесты используют prometheus.NewRegistry())
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency by operation",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Database query errors by operation",
			ConstLabels: labels,
		}, []string{"operation"}),
		DBOpenConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Open database connections",
			ConstLabels: labels,
		}),
		DBInUseConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Database connections currently in use",
			ConstLabels: labels,
		}),
		DBWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: labels,
		}),

		ReservationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "reservations_total",
			Help:        "Reservation attempts by outcome (created, conflict, rejected)",
			ConstLabels: labels,
		}, []string{"outcome"}),
		ConfirmationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "reservation_confirmations_total",
			Help:        "Reservation promotions by outcome (created, duplicate, expired)",
			ConstLabels: labels,
		}, []string{"outcome"}),
		HoursFallbackTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "business_hours_fallback_total",
			Help:        "Times the default business hours policy was used",
			ConstLabels: labels,
		}),
		SweptReservations: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "reservations_swept_total",
			Help:        "Expired holds marked by the background sweep",
			ConstLabels: labels,
		}),
		NotificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "notifications_total",
			Help:        "Confirmation emails by result",
			ConstLabels: labels,
		}, []string{"result"}),
		HoursCacheLookupTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "business_hours_cache_lookups_total",
			Help:        "Business hours cache lookups by result (hit, miss, error)",
			ConstLabels: labels,
		}, []string{"result"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBOpenConns,
		m.DBInUseConns,
		m.DBWaitCount,
		m.ReservationsTotal,
		m.ConfirmationsTotal,
		m.HoursFallbackTotal,
		m.SweptReservations,
		m.NotificationsTotal,
		m.HoursCacheLookupTotal,
	)

	return m
}

// Методы ниже безопасно вызывать на nil *Metrics (метрики выключены).

// ObserveHTTPRequest фиксирует HTTP-запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveDBQuery реализует dbmetrics.Observer
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil && err != sql.ErrNoRows {
		m.DBQueryErrors.WithLabelValues(operation).Inc()
	}
}

// SetDBPoolStats реализует dbmetrics.Observer
func (m *Metrics) SetDBPoolStats(stats sql.DBStats) {
	if m == nil {
		return
	}
	m.DBOpenConns.Set(float64(stats.OpenConnections))
	m.DBInUseConns.Set(float64(stats.InUse))
	m.DBWaitCount.Set(float64(stats.WaitCount))
}

// IncReservation фиксирует исход попытки резервирования
func (m *Metrics) IncReservation(outcome string) {
	if m == nil {
		return
	}
	m.ReservationsTotal.WithLabelValues(outcome).Inc()
}

// IncConfirmation фиксирует исход подтверждения резерва
func (m *Metrics) IncConfirmation(outcome string) {
	if m == nil {
		return
	}
	m.ConfirmationsTotal.WithLabelValues(outcome).Inc()
}

// IncHoursFallback фиксирует использование расписания по умолчанию
func (m *Metrics) IncHoursFallback() {
	if m == nil {
		return
	}
	m.HoursFallbackTotal.Inc()
}

// AddSwept фиксирует количество просроченных резервов, помеченных фоновой очисткой
func (m *Metrics) AddSwept(n int64) {
	if m == nil {
		return
	}
	m.SweptReservations.Add(float64(n))
}

// IncNotification фиксирует результат отправки письма
func (m *Metrics) IncNotification(result string) {
	if m == nil {
		return
	}
	m.NotificationsTotal.WithLabelValues(result).Inc()
}

// IncHoursCacheLookup фиксирует результат обращения к кэшу расписания
func (m *Metrics) IncHoursCacheLookup(result string) {
	if m == nil {
		return
	}
	m.HoursCacheLookupTotal.WithLabelValues(result).Inc()
}
