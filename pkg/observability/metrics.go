package observability

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	ServiceName string
}

// InitMetrics initializes the Prometheus metrics exporter.
// Returns the MeterProvider and an HTTP handler for the /metrics endpoint.
func InitMetrics(_ MetricsConfig) (*sdkmetric.MeterProvider, http.Handler, error) {
	exporter, err := promexporter.New()
	if err != nil {
		return nil, nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)

	return provider, promhttp.Handler(), nil
}

// FunnelMetrics holds the counters recorded while applicants move through
// the origination funnel.
type FunnelMetrics struct {
	stageTransitions   metric.Int64Counter
	agreementsIssued   metric.Int64Counter
	storeDegradations  metric.Int64Counter
	validationFailures metric.Int64Counter
}

// NewFunnelMetrics registers the funnel instruments on meter.
func NewFunnelMetrics(meter metric.Meter) (*FunnelMetrics, error) {
	stage, err := meter.Int64Counter("origination_stage_transitions_total",
		metric.WithDescription("Funnel stage transitions"))
	if err != nil {
		return nil, fmt.Errorf("stage transitions counter: %w", err)
	}
	issued, err := meter.Int64Counter("origination_agreements_issued_total",
		metric.WithDescription("Loan agreements issued"))
	if err != nil {
		return nil, fmt.Errorf("agreements counter: %w", err)
	}
	degraded, err := meter.Int64Counter("origination_store_degradations_total",
		metric.WithDescription("Session stores that fell back to memory"))
	if err != nil {
		return nil, fmt.Errorf("degradations counter: %w", err)
	}
	invalid, err := meter.Int64Counter("origination_validation_failures_total",
		metric.WithDescription("Rejected funnel submissions"))
	if err != nil {
		return nil, fmt.Errorf("validation counter: %w", err)
	}

	return &FunnelMetrics{
		stageTransitions:   stage,
		agreementsIssued:   issued,
		storeDegradations:  degraded,
		validationFailures: invalid,
	}, nil
}

// NopFunnelMetrics returns instruments backed by a no-op meter.
func NopFunnelMetrics() *FunnelMetrics {
	m, _ := NewFunnelMetrics(noop.NewMeterProvider().Meter("noop"))
	return m
}

// StageAdvanced records a stage transition.
func (m *FunnelMetrics) StageAdvanced(ctx context.Context, from, to string) {
	if m == nil {
		return
	}
	m.stageTransitions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("from", from),
		attribute.String("to", to),
	))
}

// AgreementIssued records one issued agreement.
func (m *FunnelMetrics) AgreementIssued(ctx context.Context) {
	if m == nil {
		return
	}
	m.agreementsIssued.Add(ctx, 1)
}

// StoreDegraded records a session store falling back to memory.
func (m *FunnelMetrics) StoreDegraded(ctx context.Context, backend string) {
	if m == nil {
		return
	}
	m.storeDegradations.Add(ctx, 1, metric.WithAttributes(attribute.String("backend", backend)))
}

// ValidationFailed records a rejected submission for operation.
func (m *FunnelMetrics) ValidationFailed(ctx context.Context, operation string) {
	if m == nil {
		return
	}
	m.validationFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation)))
}
