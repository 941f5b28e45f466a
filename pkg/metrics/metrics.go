package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор prometheus метрик сервиса
// Все методы безопасны для nil receiver - метрики можно выключить в конфиге
type Metrics struct {
	registry *prometheus.Registry
	service  string

	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBQueriesTotal    *prometheus.CounterVec
	DBQueryDuration   *prometheus.HistogramVec
	DBConnectionsOpen *prometheus.GaugeVec

	// Доменные метрики
	ValidationVerdicts     *prometheus.CounterVec
	ReconciliationDuration *prometheus.HistogramVec
	AvailabilityCache      *prometheus.CounterVec
	NotificationsTotal     *prometheus.CounterVec
	LifecycleTransitions   *prometheus.CounterVec
}

// New создает и регистрирует метрики в собственном реестре
func New(serviceName string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		service:  serviceName,

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		DBQueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "db_queries_total",
			Help: "Total number of database queries",
		}, []string{"service", "operation", "status"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),

		DBConnectionsOpen: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections",
			Help: "Database connection pool state",
		}, []string{"service", "state"}),

		ValidationVerdicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "schedule_validation_verdicts_total",
			Help: "Session validation verdicts by result",
		}, []string{"service", "result"}),

		ReconciliationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "schedule_reconciliation_duration_seconds",
			Help:    "Availability reconciliation latency",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
		}, []string{"service", "scope"}),

		AvailabilityCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "schedule_availability_cache_total",
			Help: "Reconciled availability cache lookups by result",
		}, []string{"service", "result"}),

		NotificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "schedule_notifications_total",
			Help: "Notification events by kind and delivery status",
		}, []string{"service", "kind", "status"}),

		LifecycleTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "schedule_lifecycle_transitions_total",
			Help: "Session and request state transitions",
		}, []string{"service", "operation", "result"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueriesTotal,
		m.DBQueryDuration,
		m.DBConnectionsOpen,
		m.ValidationVerdicts,
		m.ReconciliationDuration,
		m.AvailabilityCache,
		m.NotificationsTotal,
		m.LifecycleTransitions,
	)

	return m
}

// Handler HTTP handler для /metrics
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry возвращает реестр (для тестов)
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(m.service, method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.service, method, path).Observe(duration.Seconds())
}

func (m *Metrics) ObserveDBQuery(operation string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.DBQueriesTotal.WithLabelValues(m.service, operation, status).Inc()
	m.DBQueryDuration.WithLabelValues(m.service, operation).Observe(duration.Seconds())
}

func (m *Metrics) SetDBConnections(state string, value int) {
	if m == nil {
		return
	}
	m.DBConnectionsOpen.WithLabelValues(m.service, state).Set(float64(value))
}

// ObserveVerdict считает вердикты валидатора (valid / invalid)
func (m *Metrics) ObserveVerdict(isValid bool) {
	if m == nil {
		return
	}
	result := "invalid"
	if isValid {
		result = "valid"
	}
	m.ValidationVerdicts.WithLabelValues(m.service, result).Inc()
}

// ObserveReconciliation scope: day (по дню недели) или date (по конкретной дате)
func (m *Metrics) ObserveReconciliation(scope string, duration time.Duration) {
	if m == nil {
		return
	}
	m.ReconciliationDuration.WithLabelValues(m.service, scope).Observe(duration.Seconds())
}

// ObserveCache result: hit, miss, error
func (m *Metrics) ObserveCache(result string) {
	if m == nil {
		return
	}
	m.AvailabilityCache.WithLabelValues(m.service, result).Inc()
}

func (m *Metrics) ObserveNotification(kind string, err error) {
	if m == nil {
		return
	}
	status := "sent"
	if err != nil {
		status = "failed"
	}
	m.NotificationsTotal.WithLabelValues(m.service, kind, status).Inc()
}

func (m *Metrics) ObserveTransition(operation string, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "rejected"
	}
	m.LifecycleTransitions.WithLabelValues(m.service, operation, result).Inc()
}
