package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collectSums(t *testing.T, reader *sdkmetric.ManualReader) map[string]int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]int64)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				out[m.Name] += dp.Value
			}
		}
	}
	return out
}

func TestFunnelMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	m, err := NewFunnelMetrics(provider.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	m.StageAdvanced(ctx, "entry", "needs")
	m.StageAdvanced(ctx, "needs", "prequalification")
	m.AgreementIssued(ctx)
	m.StoreDegraded(ctx, "redis")
	m.ValidationFailed(ctx, "submit_intake")

	sums := collectSums(t, reader)
	assert.Equal(t, int64(2), sums["origination_stage_transitions_total"])
	assert.Equal(t, int64(1), sums["origination_agreements_issued_total"])
	assert.Equal(t, int64(1), sums["origination_store_degradations_total"])
	assert.Equal(t, int64(1), sums["origination_validation_failures_total"])
}

func TestFunnelMetrics_NilAndNop(t *testing.T) {
	ctx := context.Background()

	var nilMetrics *FunnelMetrics
	assert.NotPanics(t, func() {
		nilMetrics.StageAdvanced(ctx, "a", "b")
		nilMetrics.AgreementIssued(ctx)
	})

	nop := NopFunnelMetrics()
	require.NotNil(t, nop)
	assert.NotPanics(t, func() { nop.StoreDegraded(ctx, "postgres") })
}

func TestInitMetrics(t *testing.T) {
	provider, handler, err := InitMetrics(MetricsConfig{ServiceName: "origination"})
	require.NoError(t, err)
	assert.NotNil(t, provider)
	assert.NotNil(t, handler)
	require.NoError(t, provider.Shutdown(context.Background()))
}
