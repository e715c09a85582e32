package fetch

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/campushub/portal/internal/observability/metrics"
)

var metricsReader = sdkmetric.NewManualReader()

// TestMain installs an in-memory meter provider before the instruments are
// built, so Load's recordings land somewhere collectible.
func TestMain(m *testing.M) {
	otel.SetMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(metricsReader)))
	metrics.InitAppMetrics()
	os.Exit(m.Run())
}

func counterValue(t *testing.T, name string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, metricsReader.Collect(context.Background(), &rm))
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			var total int64
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
			return total
		}
	}
	return 0
}

func TestLoadRecordsFetchSnapshotAndErrorCounters(t *testing.T) {
	snaps := NewSnapshots(time.Minute)
	fetches := counterValue(t, "list_fetches_total")
	hits := counterValue(t, "snapshot_hits_total")
	failures := counterValue(t, "list_fetch_errors_total")

	_, err := Load(context.Background(), snaps, "m:students", false, func(context.Context) ([]string, error) {
		return []string{"a"}, nil
	})
	require.NoError(t, err)

	// Served from the snapshot: a hit, not another fetch.
	_, err = Load(context.Background(), snaps, "m:students", false, func(context.Context) ([]string, error) {
		t.Fatal("list must not be called on a snapshot hit")
		return nil, nil
	})
	require.NoError(t, err)

	_, err = Load(context.Background(), snaps, "m:broken", false, func(context.Context) ([]string, error) {
		return nil, errors.New("network down")
	})
	require.Error(t, err)

	assert.Equal(t, fetches+2, counterValue(t, "list_fetches_total"))
	assert.Equal(t, hits+1, counterValue(t, "snapshot_hits_total"))
	assert.Equal(t, failures+1, counterValue(t, "list_fetch_errors_total"))
}
