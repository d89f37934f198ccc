package telemetry_test

import (
	"context"
	"testing"

	"github.com/interactive-instruments/etf-spi/internal/adapters/telemetry"
	"github.com/interactive-instruments/etf-spi/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/mock/gomock"
)

func TestBridge_ParentAndChild(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(renderer)))
	tracer := tp.Tracer("test")

	var runID string
	renderer.EXPECT().OnTaskStart(gomock.Any(), "", "run", gomock.Any()).
		Do(func(id, _, _ string, _ any) { runID = id })
	renderer.EXPECT().OnTaskStart(gomock.Any(), gomock.Any(), "task", gomock.Any()).
		Do(func(_, parent, _ string, _ any) { assert.Equal(t, runID, parent) })
	renderer.EXPECT().OnTaskComplete(gomock.Any(), gomock.Any(), nil).Times(2)

	ctx, run := tracer.Start(context.Background(), "run")
	_, task := tracer.Start(ctx, "task")
	task.End()
	run.End()
}

func TestBridge_ErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		desc string
		want string
	}{
		{name: "with description", desc: "assertion failed", want: "assertion failed"},
		{name: "without description", desc: "", want: "test task failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			renderer := mocks.NewMockRenderer(ctrl)
			tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(renderer)))

			renderer.EXPECT().OnTaskStart(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any())
			renderer.EXPECT().OnTaskComplete(gomock.Any(), gomock.Any(), gomock.Any()).
				Do(func(_ string, _ any, err error) {
					require.Error(t, err)
					assert.Equal(t, tt.want, err.Error())
				})

			_, span := tp.Tracer("test").Start(context.Background(), "task")
			span.SetStatus(codes.Error, tt.desc)
			span.End()
		})
	}
}

func TestBridge_NilRenderer(t *testing.T) {
	bridge := telemetry.NewBridge(nil)
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(bridge))

	_, span := tp.Tracer("test").Start(context.Background(), "task")
	span.End()

	require.NoError(t, bridge.ForceFlush(context.Background()))
	require.NoError(t, bridge.Shutdown(context.Background()))
}
