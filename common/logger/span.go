package logger

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "recap-server"

// Span pairs a started tracer span with the context carrying it.
type Span struct {
	ctx  context.Context
	span trace.Span
}

// StartSpan opens a span under whatever trace ctx already carries.
//
//	sc := logger.StartSpan(ctx, "summary.generate")
//	defer sc.End()
//	ctx = sc.Context()
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) *Span {
	ctx, span := otel.Tracer(tracerName).Start(ctx, name, opts...)
	return &Span{ctx: ctx, span: span}
}

// Context returns the context carrying the span.
func (s *Span) Context() context.Context { return s.ctx }

// End finishes the span.
func (s *Span) End() { s.span.End() }

// RecordError attaches err to the span; nil is ignored.
func (s *Span) RecordError(err error) {
	if err != nil {
		s.span.RecordError(err)
	}
}

// SetAttributes adds attributes to the span.
func (s *Span) SetAttributes(attrs ...attribute.KeyValue) {
	s.span.SetAttributes(attrs...)
}
