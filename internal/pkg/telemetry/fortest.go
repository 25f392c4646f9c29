package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	metricsdk "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// ForTest records spans and metrics in memory.
type ForTest interface {
	Telemetry
	Spans() tracetest.SpanStubs
	SpanNames() []string
	Metrics(t *testing.T) []metricdata.Metrics
}

type forTest struct {
	Telemetry
	spans  *tracetest.SpanRecorder
	reader *metricsdk.ManualReader
}

func NewForTest(t *testing.T) ForTest {
	t.Helper()
	spans := tracetest.NewSpanRecorder()
	reader := metricsdk.NewManualReader()
	tracerProvider := tracesdk.NewTracerProvider(tracesdk.WithSpanProcessor(spans))
	meterProvider := metricsdk.NewMeterProvider(metricsdk.WithReader(reader))
	t.Cleanup(func() {
		require.NoError(t, tracerProvider.Shutdown(context.Background()))
		require.NoError(t, meterProvider.Shutdown(context.Background()))
	})
	return &forTest{Telemetry: New(tracerProvider, meterProvider), spans: spans, reader: reader}
}

func (v *forTest) Spans() tracetest.SpanStubs {
	return tracetest.SpanStubsFromReadOnlySpans(v.spans.Ended())
}

func (v *forTest) SpanNames() []string {
	var out []string
	for _, s := range v.spans.Ended() {
		out = append(out, s.Name())
	}
	return out
}

func (v *forTest) Metrics(t *testing.T) []metricdata.Metrics {
	t.Helper()
	all := &metricdata.ResourceMetrics{}
	require.NoError(t, v.reader.Collect(context.Background(), all))
	var out []metricdata.Metrics
	for _, scope := range all.ScopeMetrics {
		out = append(out, scope.Metrics...)
	}
	return out
}
