package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/interactive-instruments/etf-spi/internal/adapters/telemetry"
	"github.com/interactive-instruments/etf-spi/internal/core/ports"
	"github.com/interactive-instruments/etf-spi/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/mock/gomock"
)

func setupRecorder(t *testing.T) (*tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return sr, tp
}

func attributes(kvs []attribute.KeyValue) map[string]any {
	res := make(map[string]any, len(kvs))
	for _, a := range kvs {
		res[string(a.Key)] = a.Value.AsInterface()
	}
	return res
}

func TestOTelTracer_StartAttributes(t *testing.T) {
	sr, _ := setupRecorder(t)
	tracer := telemetry.NewOTelTracer("test")

	_, span := tracer.Start(context.Background(), "Tag-1",
		ports.WithAttribute("suite", "EID1"),
		ports.WithAttribute("size", 3),
	)
	span.SetAttribute("passed", true)
	span.SetAttribute("ratio", 0.5)
	span.SetAttribute("labels", []string{"a", "b"})
	span.SetAttribute("unknown", struct{}{})
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "Tag-1", spans[0].Name())

	attrs := attributes(spans[0].Attributes())
	assert.Equal(t, "EID1", attrs["suite"])
	assert.Equal(t, int64(3), attrs["size"])
	assert.Equal(t, true, attrs["passed"])
	assert.InEpsilon(t, 0.5, attrs["ratio"], 0.001)
	assert.Equal(t, []string{"a", "b"}, attrs["labels"])
	assert.Equal(t, "{}", attrs["unknown"])
}

func TestOTelTracer_EmitPlan(t *testing.T) {
	sr, tp := setupRecorder(t)
	tracer := telemetry.NewOTelTracer("test")

	// Without a recording span there is nothing to annotate.
	tracer.EmitPlan(context.Background(), "run", []string{"A"})
	assert.Empty(t, sr.Ended())

	ctx, root := tp.Tracer("test").Start(context.Background(), "root")
	tracer.EmitPlan(ctx, "run", []string{"A", "B"})
	root.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	events := spans[0].Events()
	require.Len(t, events, 1)
	assert.Equal(t, "plan_emitted", events[0].Name)
	attrs := attributes(events[0].Attributes)
	assert.Equal(t, "run", attrs["run"])
	assert.Equal(t, []string{"A", "B"}, attrs["tasks"])
}

func TestOTelSpan_WriteWithoutRenderer(t *testing.T) {
	sr, _ := setupRecorder(t)
	tracer := telemetry.NewOTelTracer("test")

	_, span := tracer.Start(context.Background(), "log")
	n, err := span.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	events := spans[0].Events()
	require.Len(t, events, 1)
	assert.Equal(t, "log", events[0].Name)
	assert.Equal(t, "hello", events[0].Attributes[0].Value.AsString())
}

func TestOTelSpan_RecordError(t *testing.T) {
	sr, _ := setupRecorder(t)
	tracer := telemetry.NewOTelTracer("test")

	_, span := tracer.Start(context.Background(), "failing")
	span.RecordError(nil)
	span.RecordError(errors.New("boom"))
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "boom", spans[0].Status().Description)
}

func TestOTelTracer_WithRenderer(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)

	tp := telemetry.NewTracerProvider(renderer)
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	tracer := telemetry.NewOTelTracer("test").WithRenderer(renderer)

	var spanID string
	gomock.InOrder(
		renderer.EXPECT().OnPlanEmit("run", []string{"A"}),
		renderer.EXPECT().OnTaskStart(gomock.Any(), "", "A", gomock.Any()).
			Do(func(id, _, _ string, _ any) { spanID = id }),
		renderer.EXPECT().OnTaskLog(gomock.Any(), []byte("Result: PASSED\n")).
			Do(func(id string, _ []byte) { assert.Equal(t, spanID, id) }),
		renderer.EXPECT().OnTaskComplete(gomock.Any(), gomock.Any(), nil).
			Do(func(id string, _, _ any) { assert.Equal(t, spanID, id) }),
	)

	tracer.EmitPlan(context.Background(), "run", []string{"A"})
	_, span := tracer.Start(context.Background(), "A")
	_, err := span.Write([]byte("Result: PASSED\n"))
	require.NoError(t, err)
	span.End()
}
