// Package telemetry provides access to the OpenTelemetry tracer and meter.
//
// The CLI uses no-op providers, tests use NewForTest to record spans and metrics in memory.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

const appName = "github.com/sfpd/picklist-dependency"

type Telemetry interface {
	TracerProvider() trace.TracerProvider
	MeterProvider() metric.MeterProvider
	Tracer() Tracer
	Meter() Meter
}

type Tracer interface {
	Start(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, Span)
}

type Meter interface {
	Counter(name, desc, unit string) metric.Int64Counter
	Histogram(name, desc, unit string) metric.Float64Histogram
}

type telemetry struct {
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
}

type tracer struct {
	tracer trace.Tracer
}

type meter struct {
	meter metric.Meter
}

func New(tracerProvider trace.TracerProvider, meterProvider metric.MeterProvider) Telemetry {
	if tracerProvider == nil {
		tracerProvider = tracenoop.NewTracerProvider()
	}
	if meterProvider == nil {
		meterProvider = metricnoop.NewMeterProvider()
	}
	return &telemetry{tracerProvider: tracerProvider, meterProvider: meterProvider}
}

func NewNop() Telemetry {
	return New(nil, nil)
}

func (t *telemetry) TracerProvider() trace.TracerProvider {
	return t.tracerProvider
}

func (t *telemetry) MeterProvider() metric.MeterProvider {
	return t.meterProvider
}

func (t *telemetry) Tracer() Tracer {
	return &tracer{tracer: t.tracerProvider.Tracer(appName)}
}

func (t *telemetry) Meter() Meter {
	return &meter{meter: t.meterProvider.Meter(appName)}
}

func (t *tracer) Start(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, Span) {
	ctx, s := t.tracer.Start(ctx, spanName, opts...)
	return ctx, &span{span: s}
}

func (m *meter) Counter(name, desc, unit string) metric.Int64Counter {
	return mustInstrument(m.meter.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit(unit)))
}

func (m *meter) Histogram(name, desc, unit string) metric.Float64Histogram {
	return mustInstrument(m.meter.Float64Histogram(name, metric.WithDescription(desc), metric.WithUnit(unit)))
}

func mustInstrument[T any](instrument T, err error) T {
	if err != nil {
		panic(err)
	}
	return instrument
}
