package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span names.
const (
	runSpanName        = "flow.plan.run"
	nodeSpanNamePrefix = "flow.node."
)

// SpanManager opens and closes the spans of a plan run.
// A run gets one span; each executed node gets a child span.
type SpanManager interface {
	StartRunSpan(ctx context.Context, planDescr, runID, mode string) (context.Context, trace.Span)
	StartNodeSpan(ctx context.Context, nodeID, kind string) (context.Context, trace.Span)

	// EndSpanWithError sets the span status from err and ends it.
	// A nil span is ignored.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the span in ctx, if it is recording.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

type tracerSpans struct {
	tracer trace.Tracer
}

// NewSpanManager returns a SpanManager on the global OTel tracer provider
// as it is set at the time of the call.
func NewSpanManager() SpanManager {
	return NewSpanManagerFrom(otel.GetTracerProvider())
}

// NewSpanManagerFrom returns a SpanManager on tp.
func NewSpanManagerFrom(tp trace.TracerProvider) SpanManager {
	return &tracerSpans{tracer: tp.Tracer(scopeName)}
}

func (s *tracerSpans) StartRunSpan(ctx context.Context, planDescr, runID, mode string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, runSpanName, trace.WithAttributes(
		attribute.String("plan.descr", planDescr),
		attribute.String("run.id", runID),
		attribute.String("run.mode", mode),
	))
}

func (s *tracerSpans) StartNodeSpan(ctx context.Context, nodeID, kind string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, nodeSpanNamePrefix+nodeID, trace.WithAttributes(
		attribute.String("node.id", nodeID),
		attribute.String("node.kind", kind),
	))
}

func (s *tracerSpans) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	defer span.End()

	if err == nil {
		span.SetStatus(codes.Ok, "")
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

func (s *tracerSpans) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.AddEvent(name, trace.WithAttributes(attrs...))
	}
}
