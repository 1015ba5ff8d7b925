package telemetry

import (
	"context"
	"fmt"
	"io"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// LogBridge implements sdktrace.SpanProcessor, writing span lifecycle events
// as plain text lines. It backs the --trace flag, which points it at the
// debug log under the workspace cache directory.
type LogBridge struct {
	mu sync.Mutex
	w  io.Writer
}

// NewLogBridge returns a new LogBridge writing to w.
func NewLogBridge(w io.Writer) *LogBridge {
	return &LogBridge{
		w: w,
	}
}

// OnStart is called when a span starts.
func (b *LogBridge) OnStart(parent context.Context, s sdktrace.ReadWriteSpan) {
	if b.w == nil {
		return
	}

	sc := s.SpanContext()
	if !sc.IsValid() {
		return
	}

	var parentID string
	if parentSpan := trace.SpanFromContext(parent); parentSpan.SpanContext().IsValid() {
		parentID = parentSpan.SpanContext().SpanID().String()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if parentID != "" {
		fmt.Fprintf(b.w, "span start name=%s id=%s parent=%s\n", s.Name(), sc.SpanID(), parentID)
		return
	}
	fmt.Fprintf(b.w, "span start name=%s id=%s\n", s.Name(), sc.SpanID())
}

// OnEnd is called when a span ends.
func (b *LogBridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.w == nil {
		return
	}

	sc := s.SpanContext()
	if !sc.IsValid() {
		return
	}

	duration := s.EndTime().Sub(s.StartTime())

	b.mu.Lock()
	defer b.mu.Unlock()
	if s.Status().Code == codes.Error {
		desc := s.Status().Description
		if desc == "" {
			desc = "failed"
		}
		fmt.Fprintf(b.w, "span end name=%s id=%s duration=%s error=%q\n", s.Name(), sc.SpanID(), duration, desc)
		return
	}
	fmt.Fprintf(b.w, "span end name=%s id=%s duration=%s\n", s.Name(), sc.SpanID(), duration)
}

// ForceFlush does nothing.
func (b *LogBridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *LogBridge) Shutdown(_ context.Context) error {
	return nil
}

// Install registers a global tracer provider that forwards span lifecycle
// events to w. The returned function shuts the provider down and restores
// the previous global provider.
func Install(w io.Writer) func(context.Context) error {
	bridge := NewLogBridge(w)
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(bridge))

	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)

	return func(ctx context.Context) error {
		otel.SetTracerProvider(prev)
		return tp.Shutdown(ctx)
	}
}
