// Package mocks provides Otel implementations for tests: a no-op one and one
// that records finished spans in memory.
package mocks

import (
	"context"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"frontdesk/infras/otel"
)

type tracerOtel struct {
	tracer oteltrace.Tracer
}

func (o tracerOtel) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	ctx, span := o.tracer.Start(ctx, spanName)

	return ctx, otel.NewScope(span)
}

func (tracerOtel) Shutdown(context.Context) error { return nil }

func NewOtel() otel.Otel {
	return tracerOtel{tracer: noop.NewTracerProvider().Tracer("test")}
}

// NewRecordingOtel returns an Otel whose ended spans can be read from the recorder.
func NewRecordingOtel() (otel.Otel, *tracetest.SpanRecorder) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	return tracerOtel{tracer: provider.Tracer("test")}, recorder
}
