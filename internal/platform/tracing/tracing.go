package tracing

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var noopSpan = trace.SpanFromContext(context.Background())

// Scope opens child spans named prefix+operation. It never opens a root
// span: calls without a valid parent span context get a no-op span.
type Scope struct {
	tracer trace.Tracer
	prefix string
}

func NewScope(instrumentation, prefix string) Scope {
	return Scope{tracer: otel.Tracer(instrumentation), prefix: prefix}
}

func newScopeWithProvider(provider trace.TracerProvider, instrumentation, prefix string) Scope {
	return Scope{tracer: provider.Tracer(instrumentation), prefix: prefix}
}

func (s Scope) Start(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	operation = strings.TrimSpace(operation)
	if operation == "" || s.tracer == nil {
		return ctx, noopSpan
	}
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, noopSpan
	}
	return s.tracer.Start(ctx, s.prefix+operation, trace.WithAttributes(attrs...))
}

// RecordError marks span as failed. Nil errors are ignored.
func RecordError(span trace.Span, err error) {
	if err == nil || span == nil || !span.IsRecording() {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
