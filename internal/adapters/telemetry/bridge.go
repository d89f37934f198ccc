package telemetry

import (
	"context"
	"errors"

	"github.com/interactive-instruments/etf-spi/internal/core/ports"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Bridge implements sdktrace.SpanProcessor and reports span starts and ends
// to a Renderer.
type Bridge struct {
	renderer ports.Renderer
}

// NewBridge returns a new Bridge. A nil renderer turns it into a no-op.
func NewBridge(renderer ports.Renderer) *Bridge {
	return &Bridge{renderer: renderer}
}

// OnStart is called when a span starts.
func (b *Bridge) OnStart(parent context.Context, s sdktrace.ReadWriteSpan) {
	if b.renderer == nil {
		return
	}
	sc := s.SpanContext()
	if !sc.IsValid() {
		return
	}

	var parentID string
	if p := trace.SpanFromContext(parent).SpanContext(); p.IsValid() {
		parentID = p.SpanID().String()
	}
	b.renderer.OnTaskStart(sc.SpanID().String(), parentID, s.Name(), s.StartTime())
}

// OnEnd is called when a span ends. A span with error status completes with
// its status description as the error.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.renderer == nil {
		return
	}
	sc := s.SpanContext()
	if !sc.IsValid() {
		return
	}

	var err error
	if st := s.Status(); st.Code == codes.Error {
		desc := st.Description
		if desc == "" {
			desc = "test task failed"
		}
		err = errors.New(desc)
	}
	b.renderer.OnTaskComplete(sc.SpanID().String(), s.EndTime(), err)
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(context.Context) error { return nil }

// Shutdown does nothing.
func (b *Bridge) Shutdown(context.Context) error { return nil }
