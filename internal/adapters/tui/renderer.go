package tui

import (
	"context"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/interactive-instruments/etf-spi/internal/core/ports"
)

var _ ports.Renderer = (*Renderer)(nil)

// Renderer wraps the Bubble Tea model as a ports.Renderer.
type Renderer struct {
	program *tea.Program
	model   *Model
	errCh   chan error
}

// NewRenderer creates a new TUI renderer.
func NewRenderer(model *Model, opts ...tea.ProgramOption) *Renderer {
	return &Renderer{
		program: tea.NewProgram(model, opts...),
		model:   model,
		errCh:   make(chan error, 1),
	}
}

// Start launches the TUI in a background goroutine.
func (r *Renderer) Start(_ context.Context) error {
	go func() {
		_, err := r.program.Run()
		r.errCh <- err
	}()
	return nil
}

// Stop refreshes the progress a last time and quits the TUI.
func (r *Renderer) Stop() error {
	r.program.Send(MsgTick(time.Now()))
	r.program.Quit()
	return nil
}

// Wait blocks until the TUI has terminated.
func (r *Renderer) Wait() error {
	return <-r.errCh
}

// OnPlanEmit forwards the run plan to the TUI.
func (r *Renderer) OnPlanEmit(run string, tasks []string) {
	r.program.Send(MsgInitTasks{Run: run, Tasks: slices.Clone(tasks)})
}

// OnTaskStart forwards task start events to the TUI.
func (r *Renderer) OnTaskStart(spanID, _, name string, startTime time.Time) {
	r.program.Send(MsgTaskStart{SpanID: spanID, Name: name, StartTime: startTime})
}

// OnTaskLog forwards task output to the TUI.
func (r *Renderer) OnTaskLog(spanID string, data []byte) {
	r.program.Send(MsgTaskLog{SpanID: spanID, Data: slices.Clone(data)})
}

// OnTaskComplete forwards task completion events to the TUI.
func (r *Renderer) OnTaskComplete(spanID string, endTime time.Time, err error) {
	r.program.Send(MsgTaskComplete{SpanID: spanID, EndTime: endTime, Err: err})
}
