package oteladapters

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/shelfwise/circulation-go/eventlog"
)

// TracingCollector implements eventlog.TracingCollector using OpenTelemetry
// spans.
type TracingCollector struct {
	tracer trace.Tracer
}

// NewTracingCollector creates a tracing collector from an OpenTelemetry
// tracer.
func NewTracingCollector(tracer trace.Tracer) *TracingCollector {
	return &TracingCollector{tracer: tracer}
}

func (c *TracingCollector) StartSpan(ctx context.Context, name string) (context.Context, eventlog.SpanContext) {
	spanCtx, span := c.tracer.Start(ctx, name)

	return spanCtx, &OTelSpanContext{span: span}
}

var _ eventlog.TracingCollector = (*TracingCollector)(nil)

// OTelSpanContext wraps an OpenTelemetry span behind the eventlog.SpanContext
// interface.
type OTelSpanContext struct {
	span trace.Span
}

func (s *OTelSpanContext) SetAttribute(key, value string) {
	s.span.SetAttributes(attribute.String(key, value))
}

func (s *OTelSpanContext) SetStatus(status string) {
	switch status {
	case "ok":
		s.span.SetStatus(codes.Ok, "")
	case "error":
		s.span.SetStatus(codes.Error, "operation failed")
	default:
		s.span.SetStatus(codes.Unset, "")
	}
}

func (s *OTelSpanContext) End() {
	s.span.End()
}

var _ eventlog.SpanContext = (*OTelSpanContext)(nil)
