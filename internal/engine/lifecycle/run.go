package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/interactive-instruments/etf-spi/internal/core/domain"
	"github.com/interactive-instruments/etf-spi/internal/core/ports"
	"go.trai.ch/zerr"
)

// Run executes an ordered list of tasks one after another.
type Run struct {
	machine

	dto    *domain.TestRunDto
	tasks  []*Task
	logger ports.Logger
	tracer ports.Tracer
	delay  time.Duration

	mu        sync.Mutex
	current   int
	completed int

	cancelDone chan struct{}
}

// RunOption configures a Run.
type RunOption func(*Run)

// WithStartDelay makes Call wait before the first task starts.
func WithStartDelay(d time.Duration) RunOption {
	return func(r *Run) {
		r.delay = d
	}
}

// NewRun creates a run in the CREATED state owning tasks.
func NewRun(dto *domain.TestRunDto, tasks []*Task, logger ports.Logger, tracer ports.Tracer, opts ...RunOption) *Run {
	r := &Run{
		dto:        dto,
		tasks:      tasks,
		logger:     logger,
		tracer:     tracer,
		cancelDone: make(chan struct{}),
	}
	r.init(dto.EID, dto.Label)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ID returns the run id.
func (r *Run) ID() domain.EID { return r.dto.EID }

// Label returns the display name of the run.
func (r *Run) Label() string { return r.label }

// Dto returns the run definition.
func (r *Run) Dto() *domain.TestRunDto { return r.dto }

// Tasks returns the tasks in execution order.
func (r *Run) Tasks() []*Task { return r.tasks }

// OnStateChange registers l for state changes of the run and of every task.
func (r *Run) OnStateChange(l StateListener) {
	r.AddListener(l)
	for _, t := range r.tasks {
		t.AddListener(l)
	}
}

// Progress returns the completed lowest level items of all finished tasks
// plus the steps of the running task, and the sum of all task sizes.
func (r *Run) Progress() (current, maxSteps int, err error) {
	if len(r.tasks) == 0 {
		return 0, 0, zerr.With(zerr.Wrap(domain.ErrNoProgress, "run has no tasks"), "run", r.label)
	}
	for _, t := range r.tasks {
		maxSteps += t.Size()
	}

	r.mu.Lock()
	current = r.completed
	idx := r.current
	r.mu.Unlock()

	if idx < len(r.tasks) {
		t := r.tasks[idx]
		if s := t.State(); s != domain.StateCreated {
			steps, _ := t.Progress()
			current += min(steps, t.Size())
		}
	}
	return min(current, maxSteps), maxSteps, nil
}

// Start executes every task: init, run and release, in order. It stops at the
// first task that does not complete.
func (r *Run) Start(ctx context.Context) error {
	if r.interrupted() {
		return r.interruptedError()
	}
	if err := r.transition(domain.StateInitializing, domain.StateCreated); err != nil {
		return err
	}
	if err := r.transition(domain.StateInitialized, domain.StateInitializing); err != nil {
		return err
	}
	if err := r.transition(domain.StateRunning, domain.StateInitialized); err != nil {
		return err
	}

	names := make([]string, len(r.tasks))
	for i, t := range r.tasks {
		names[i] = t.Label()
	}
	r.tracer.EmitPlan(ctx, r.label, names)
	r.logger.Info(fmt.Sprintf("Starting test run %s with %d test task(s)", r.label, len(r.tasks)))

	for i, t := range r.tasks {
		if r.interrupted() || ctx.Err() != nil {
			return r.interruptedError()
		}
		r.mu.Lock()
		r.current = i
		r.mu.Unlock()

		if err := r.execute(ctx, t); err != nil {
			if r.interrupted() {
				return r.interruptedError()
			}
			return err
		}

		r.mu.Lock()
		r.completed += t.Size()
		r.current = i + 1
		r.mu.Unlock()
	}

	if err := r.transition(domain.StateCompleted, domain.StateRunning); err != nil {
		if r.interrupted() {
			return r.interruptedError()
		}
		return err
	}
	return nil
}

func (r *Run) execute(ctx context.Context, t *Task) error {
	ctx, span := r.tracer.Start(ctx, t.Label(),
		ports.WithAttribute("task", t.ID().String()),
		ports.WithAttribute("suite", t.collector.suiteID().String()))
	defer span.End()

	err := t.Init(ctx)
	if err == nil {
		err = t.Run(ctx)
	}
	if res := t.Collector().Result(); res != nil {
		_, _ = fmt.Fprintf(span, "Result: %s\n", res.Status())
	}
	if rerr := t.Release(); rerr != nil {
		r.logger.Error(rerr)
	}
	if err != nil {
		span.RecordError(err)
	}
	return err
}

// Call waits for the start delay, starts the run and releases it afterwards.
// A failing run ends in FAILED and its error is logged.
func (r *Run) Call(ctx context.Context) error {
	if r.delay > 0 {
		timer := time.NewTimer(r.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
		case <-timer.C:
		}
	}

	err := r.Start(ctx)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrInterrupted):
		if cerr := r.Cancel(); cerr != nil {
			r.logger.Error(cerr)
		}
		<-r.cancelDone
	default:
		r.logger.Error(err)
		if ferr := r.transition(domain.StateFailed); ferr != nil {
			r.logger.Error(ferr)
		}
		err = zerr.With(zerr.Wrap(domain.ErrRunFailed, "test run failed"), "run", r.label)
	}

	if rerr := r.Release(); rerr != nil {
		r.logger.Error(rerr)
	}
	return err
}

// Cancel cancels the running task and every task that has not started yet.
// Canceling a run that is no longer active does nothing.
func (r *Run) Cancel() error {
	if err := r.transition(domain.StateCanceling,
		domain.StateCreated, domain.StateInitializing, domain.StateInitialized, domain.StateRunning); err != nil {
		return nil
	}
	r.logger.Info(fmt.Sprintf("Canceling test run %s", r.label))

	r.mu.Lock()
	from := r.current
	r.mu.Unlock()

	var errs []error
	for _, t := range r.tasks[min(from, len(r.tasks)):] {
		if err := t.Cancel(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := r.transition(domain.StateCanceled, domain.StateCanceling); err != nil {
		errs = append(errs, err)
	}
	close(r.cancelDone)
	if err := r.Release(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Release releases every task and moves an ended run to FINALIZING.
func (r *Run) Release() error {
	s := r.State()
	if !s.IsTerminal() && s != domain.StateFinalizing {
		return zerr.With(zerr.With(zerr.With(
			zerr.Wrap(domain.ErrInvalidStateTransition, "run is still active"),
			"id", r.id.String()),
			"from", s.String()),
			"to", domain.StateFinalizing.String())
	}
	var errs []error
	for _, t := range r.tasks {
		if err := t.Release(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := r.transition(domain.StateFinalizing); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (r *Run) interruptedError() error {
	return zerr.With(zerr.Wrap(domain.ErrInterrupted, "test run canceled"), "run", r.label)
}
