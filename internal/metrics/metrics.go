package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Business Metrics
	TransactionsCreated  *prometheus.CounterVec
	TransactionErrors    *prometheus.CounterVec
	PointsMoved          *prometheus.CounterVec
	SuspiciousToggles    *prometheus.CounterVec
	RedemptionsProcessed prometheus.Counter
	RaffleEntries        prometheus.Counter
	RaffleDraws          prometheus.Counter

	// Database Metrics
	DBConnectionsInUse prometheus.Gauge
	DBConnectionsIdle  prometheus.Gauge
	DBQueryDuration    *prometheus.HistogramVec
	DBQueriesTotal     *prometheus.CounterVec
	DBConnectionErrors prometheus.Counter

	// System Metrics
	ServiceUptime    prometheus.Gauge
	Goroutines       prometheus.Gauge
	MemoryUsageBytes *prometheus.GaugeVec

	// Validation Metrics
	ValidationErrors   *prometheus.CounterVec
	ValidationDuration *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loyalty_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "loyalty_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "loyalty_http_requests_in_flight",
				Help: "Number of HTTP requests currently being served",
			},
		),

		TransactionsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loyalty_transactions_created_total",
				Help: "Total number of ledger transactions created",
			},
			[]string{"tx_type"},
		),
		TransactionErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loyalty_transaction_errors_total",
				Help: "Total number of rejected or failed ledger operations",
			},
			[]string{"tx_type", "error_type"},
		),
		PointsMoved: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loyalty_points_moved_total",
				Help: "Total points moved through the ledger",
			},
			[]string{"tx_type"},
		),
		SuspiciousToggles: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loyalty_suspicious_toggles_total",
				Help: "Total number of suspicious flag transitions",
			},
			[]string{"direction"},
		),
		RedemptionsProcessed: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "loyalty_redemptions_processed_total",
				Help: "Total number of redemptions settled by a cashier",
			},
		),
		RaffleEntries: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "loyalty_raffle_entries_total",
				Help: "Total number of raffle entries",
			},
		),
		RaffleDraws: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "loyalty_raffle_draws_total",
				Help: "Total number of raffles drawn",
			},
		),

		DBConnectionsInUse: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "loyalty_db_connections_in_use",
				Help: "Number of database connections currently in use",
			},
		),
		DBConnectionsIdle: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "loyalty_db_connections_idle",
				Help: "Number of idle database connections",
			},
		),
		DBQueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "loyalty_db_query_duration_seconds",
				Help:    "Duration of database queries in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
			},
			[]string{"operation", "table"},
		),
		DBQueriesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loyalty_db_queries_total",
				Help: "Total number of database queries",
			},
			[]string{"operation", "table", "status"},
		),
		DBConnectionErrors: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "loyalty_db_connection_errors_total",
				Help: "Total number of database connection errors",
			},
		),

		ServiceUptime: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "loyalty_service_uptime_seconds",
				Help: "Service uptime in seconds",
			},
		),
		Goroutines: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "loyalty_goroutines",
				Help: "Number of goroutines currently running",
			},
		),
		MemoryUsageBytes: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "loyalty_memory_usage_bytes",
				Help: "Memory usage in bytes",
			},
			[]string{"type"},
		),

		ValidationErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loyalty_validation_errors_total",
				Help: "Total number of request validation errors",
			},
			[]string{"field", "tag"},
		),
		ValidationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "loyalty_validation_duration_seconds",
				Help:    "Duration of validation operations in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
			},
			[]string{"endpoint"},
		),
	}
}

// --- Recording Methods ---

func (m *Metrics) RecordHTTPRequest(method, path, statusCode string, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration.Seconds())
}

func (m *Metrics) RecordTransactionCreated(txType string) {
	if m == nil {
		return
	}
	m.TransactionsCreated.WithLabelValues(txType).Inc()
}

func (m *Metrics) RecordTransactionError(txType, errorType string) {
	if m == nil {
		return
	}
	m.TransactionErrors.WithLabelValues(txType, errorType).Inc()
}

func (m *Metrics) RecordPointsMoved(txType string, amount int64) {
	if m == nil {
		return
	}
	m.PointsMoved.WithLabelValues(txType).Add(float64(amount))
}

func (m *Metrics) RecordSuspiciousToggle(flagged bool) {
	if m == nil {
		return
	}
	direction := "cleared"
	if flagged {
		direction = "flagged"
	}
	m.SuspiciousToggles.WithLabelValues(direction).Inc()
}

func (m *Metrics) RecordRedemptionProcessed() {
	if m == nil {
		return
	}
	m.RedemptionsProcessed.Inc()
}

func (m *Metrics) RecordRaffleEntry() {
	if m == nil {
		return
	}
	m.RaffleEntries.Inc()
}

func (m *Metrics) RecordRaffleDraw() {
	if m == nil {
		return
	}
	m.RaffleDraws.Inc()
}

func (m *Metrics) RecordDBQuery(operation, table, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.DBQueriesTotal.WithLabelValues(operation, table, status).Inc()
	m.DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

func (m *Metrics) RecordDBConnectionError() {
	if m == nil {
		return
	}
	m.DBConnectionErrors.Inc()
}

func (m *Metrics) RecordValidationError(field, tag string) {
	if m == nil {
		return
	}
	m.ValidationErrors.WithLabelValues(field, tag).Inc()
}

func (m *Metrics) RecordValidationDuration(endpoint string, duration time.Duration) {
	if m == nil {
		return
	}
	m.ValidationDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// UpdateSystemMetrics updates system-level metrics (goroutines, uptime, memory).
func (m *Metrics) UpdateSystemMetrics(uptime time.Duration, memStats *runtime.MemStats) {
	if m == nil {
		return
	}
	m.ServiceUptime.Set(uptime.Seconds())
	m.Goroutines.Set(float64(runtime.NumGoroutine()))

	m.MemoryUsageBytes.WithLabelValues("alloc").Set(float64(memStats.Alloc))
	m.MemoryUsageBytes.WithLabelValues("sys").Set(float64(memStats.Sys))
	m.MemoryUsageBytes.WithLabelValues("heap_alloc").Set(float64(memStats.HeapAlloc))
	m.MemoryUsageBytes.WithLabelValues("heap_sys").Set(float64(memStats.HeapSys))
}
