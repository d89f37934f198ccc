package ports

import (
	"context"
	"time"
)

// Renderer is the abstraction for progress output.
// It decouples telemetry collection from presentation.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Start initializes the renderer.
	Start(ctx context.Context) error

	// Stop flushes buffered output.
	Stop() error

	// Wait blocks until the renderer has fully terminated.
	Wait() error

	// OnPlanEmit is called once per run with the task labels in execution order.
	OnPlanEmit(run string, tasks []string)

	// OnTaskStart is called when a run or task span starts.
	// parentID is empty for root spans.
	OnTaskStart(spanID, parentID, name string, startTime time.Time)

	// OnTaskLog is called when a span emits output. data may contain partial lines.
	OnTaskLog(spanID string, data []byte)

	// OnTaskComplete is called when a span ends. err is nil on success.
	OnTaskComplete(spanID string, endTime time.Time, err error)
}

// ProgressFunc reports the completed and the planned lowest level items of a
// test run.
type ProgressFunc func() (current, maxSteps int, err error)
