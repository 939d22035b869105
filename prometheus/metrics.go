package prometheus

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

const namespace = "oak_ledger"

var (
	// HTTP request metrics
	HttpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	StatusCodeCategoryCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_status_category_total",
			Help:      "Total number of responses by status category (2xx, 4xx, 5xx)",
		},
		[]string{"category"},
	)

	// Remote record-keeping API metrics
	RemoteCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "remote_call_duration_seconds",
			Help:      "Duration of calls to the record-keeping API",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation", "outcome"},
	)

	// Record store metrics
	WriteFailuresCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_write_failures_total",
			Help:      "Mutations rejected or lost by the record-keeping API",
		},
		[]string{"collection"},
	)

	ReloadsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_reloads_total",
			Help:      "Collection reloads by outcome (applied, failed, stale)",
		},
		[]string{"outcome"},
	)

	// Session metrics
	AuthAttemptsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_attempts_total",
			Help:      "Login and account update attempts by outcome",
		},
		[]string{"action", "outcome"},
	)

	// Dashboard gauges, refreshed whenever the summary is computed
	TotalStockGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "inventory_total_stock",
		Help:      "Sum of stock across all inventory items",
	})

	LowStockGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "inventory_low_stock_items",
		Help:      "Number of items below the low stock threshold",
	})

	TodaySalesGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "today_sales",
		Help:      "Sales total for the current day",
	})

	TodayExpensesGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "today_expenses",
		Help:      "Expenses total for the current day",
	})
)

var registerOnce sync.Once

// Register adds every collector to reg. Later calls are no-ops.
func Register(reg prometheus.Registerer) {
	registerOnce.Do(func() {
		reg.MustRegister(
			HttpRequestsTotal,
			HttpRequestDuration,
			StatusCodeCategoryCounter,
			RemoteCallDuration,
			WriteFailuresCounter,
			ReloadsCounter,
			AuthAttemptsCounter,
			TotalStockGauge,
			LowStockGauge,
			TodaySalesGauge,
			TodayExpensesGauge,
		)
	})
}

// RecordHTTPRequest records one served request
func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	statusStr := strconv.Itoa(status)
	HttpRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	HttpRequestDuration.WithLabelValues(method, path, statusStr).Observe(duration.Seconds())

	switch {
	case status >= 200 && status < 300:
		StatusCodeCategoryCounter.WithLabelValues("2xx").Inc()
	case status >= 400 && status < 500:
		StatusCodeCategoryCounter.WithLabelValues("4xx").Inc()
	case status >= 500:
		StatusCodeCategoryCounter.WithLabelValues("5xx").Inc()
	}
}

// TrackRemoteCall returns a function that records the duration of a remote call
func TrackRemoteCall(operation string) func(err error) {
	start := time.Now()
	return func(err error) {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		RemoteCallDuration.WithLabelValues(operation, outcome).Observe(time.Since(start).Seconds())
	}
}

// RecordWriteFailure increments the failed mutation counter for a collection
func RecordWriteFailure(collection string) {
	WriteFailuresCounter.WithLabelValues(collection).Inc()
}

// RecordReload counts a reload outcome
func RecordReload(outcome string) {
	ReloadsCounter.WithLabelValues(outcome).Inc()
}

// RecordAuthAttempt counts a login or account update
func RecordAuthAttempt(action string, ok bool) {
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	AuthAttemptsCounter.WithLabelValues(action, outcome).Inc()
}

// UpdateDashboard publishes the day's headline figures
func UpdateDashboard(totalStock, lowStock int, sales, expenses decimal.Decimal) {
	TotalStockGauge.Set(float64(totalStock))
	LowStockGauge.Set(float64(lowStock))
	TodaySalesGauge.Set(sales.InexactFloat64())
	TodayExpensesGauge.Set(expenses.InexactFloat64())
}
