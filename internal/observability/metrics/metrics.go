package metrics

import (
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"

	"github.com/campushub/portal/internal/pkg/logger"
)

const meterName = "campushub-portal"

// AppMetrics holds the portal's metric instruments.
type AppMetrics struct {
	HTTPRequestsTotal      metric.Int64Counter
	HTTPRequestDuration    metric.Float64Histogram
	LoginAttemptsTotal     metric.Int64Counter
	ListFetchesTotal       metric.Int64Counter
	ListFetchErrorsTotal   metric.Int64Counter
	MutationsTotal         metric.Int64Counter
	SnapshotHitsTotal      metric.Int64Counter
	DBQueryDurationSeconds metric.Float64Histogram
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics builds the global instruments once, on the meter of the
// globally configured MeterProvider. It runs at boot, before any traffic.
func InitAppMetrics() {
	once.Do(func() {
		appMetrics = build(otel.GetMeterProvider().Meter(meterName))
		logger.Log.Info("Application metrics instruments initialized")
	})
}

// Get returns the global instruments. When InitAppMetrics never ran (unit
// tests, tooling) the instruments are no-op recorders, so callers record
// unconditionally.
func Get() *AppMetrics {
	once.Do(func() {
		appMetrics = build(noop.NewMeterProvider().Meter(meterName))
	})
	return appMetrics
}

func build(meter metric.Meter) *AppMetrics {
	m := &AppMetrics{}
	var err error

	m.HTTPRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests completed"),
		metric.WithUnit("{request}"),
	)
	mustInstrument("http_requests_total", err)

	m.HTTPRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("Duration of HTTP requests in seconds"),
		metric.WithUnit("s"),
	)
	mustInstrument("http_request_duration_seconds", err)

	m.LoginAttemptsTotal, err = meter.Int64Counter(
		"login_attempts_total",
		metric.WithDescription("Total number of login attempts"),
		metric.WithUnit("{request}"),
	)
	mustInstrument("login_attempts_total", err)

	m.ListFetchesTotal, err = meter.Int64Counter(
		"list_fetches_total",
		metric.WithDescription("Total number of list-page fetches against the data service"),
		metric.WithUnit("{fetch}"),
	)
	mustInstrument("list_fetches_total", err)

	m.ListFetchErrorsTotal, err = meter.Int64Counter(
		"list_fetch_errors_total",
		metric.WithDescription("Total number of failed list-page fetches"),
		metric.WithUnit("{error}"),
	)
	mustInstrument("list_fetch_errors_total", err)

	m.MutationsTotal, err = meter.Int64Counter(
		"mutations_total",
		metric.WithDescription("Total number of create/update/delete round-trips"),
		metric.WithUnit("{request}"),
	)
	mustInstrument("mutations_total", err)

	m.SnapshotHitsTotal, err = meter.Int64Counter(
		"snapshot_hits_total",
		metric.WithDescription("Total number of list renders served from the page snapshot"),
		metric.WithUnit("{hit}"),
	)
	mustInstrument("snapshot_hits_total", err)

	m.DBQueryDurationSeconds, err = meter.Float64Histogram(
		"db_query_duration_seconds",
		metric.WithDescription("Duration of database queries in seconds"),
		metric.WithUnit("s"),
	)
	mustInstrument("db_query_duration_seconds", err)

	return m
}

func mustInstrument(name string, err error) {
	if err != nil {
		logger.Log.Fatal("Failed to create metric instrument", zap.String("name", name), zap.Error(err))
	}
}
