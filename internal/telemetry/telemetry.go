// Package telemetry provides OpenTelemetry integration for quill.
//
// Telemetry is disabled by default (zero runtime overhead when off).
//
// # Configuration
//
//	QUILL_OTEL_ENABLED=true    enable telemetry (default: off)
//	OTEL_SERVICE_NAME=quill    override service name
//
// When enabled, spans and metrics are pretty-printed to stderr. There is no
// collector export path: quill runs on one machine, and the stdout exporter
// is the inspection surface.
package telemetry

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

const instrumentationScope = "github.com/quillnotes/quill"

var shutdownFns []func(context.Context) error

// Enabled reports whether telemetry is active (QUILL_OTEL_ENABLED=true).
func Enabled() bool {
	return os.Getenv("QUILL_OTEL_ENABLED") == "true"
}

// Init configures OTel providers. When QUILL_OTEL_ENABLED is not "true" this
// installs no-op providers and returns immediately (zero overhead path).
func Init(ctx context.Context, serviceName, version string) error {
	if !Enabled() {
		otel.SetTracerProvider(tracenoop.NewTracerProvider())
		otel.SetMeterProvider(metricnoop.NewMeterProvider())
		return nil
	}

	if name := os.Getenv("OTEL_SERVICE_NAME"); name != "" {
		serviceName = name
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String(version),
		),
	)
	if err != nil {
		return fmt.Errorf("telemetry: resource: %w", err)
	}

	traceExp, err := stdouttrace.New(stdouttrace.WithPrettyPrint(), stdouttrace.WithWriter(os.Stderr))
	if err != nil {
		return fmt.Errorf("telemetry: trace exporter: %w", err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExp),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	shutdownFns = append(shutdownFns, tp.Shutdown)

	metricExp, err := stdoutmetric.New()
	if err != nil {
		return fmt.Errorf("telemetry: metric exporter: %w", err)
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExp)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)
	shutdownFns = append(shutdownFns, mp.Shutdown)

	return nil
}

// Shutdown flushes and stops every provider Init installed.
func Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var firstErr error
	for _, fn := range shutdownFns {
		if err := fn(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	shutdownFns = nil
	return firstErr
}

// Tracer returns the quill tracer.
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentationScope)
}

// Meter returns the quill meter.
func Meter() metric.Meter {
	return otel.Meter(instrumentationScope)
}

// CountOp increments the note-operation counter for one command
// (create, update, delete, search, ...). Errors are deliberately dropped:
// telemetry must never fail a user command.
func CountOp(ctx context.Context, op string) {
	counter, err := Meter().Int64Counter("quill.note.operations",
		metric.WithDescription("Count of note operations by kind"))
	if err != nil {
		return
	}
	counter.Add(ctx, 1, metric.WithAttributes(semconv.CodeFunction(op)))
}
