package lifecycle

import (
	"context"
	"errors"
	"sync"

	"github.com/interactive-instruments/etf-spi/internal/core/domain"
	"github.com/interactive-instruments/etf-spi/internal/core/ports"
	"go.trai.ch/zerr"
)

// Task executes one executable test suite against one test object.
type Task struct {
	machine

	dto       *domain.TestTaskDto
	body      ports.TaskBody
	collector *Collector
	logger    ports.Logger

	mu     sync.Mutex
	cancel context.CancelFunc

	releaseOnce sync.Once
}

// NewTask creates a task in the CREATED state. The body is the driver side of
// the task; its results go to collector.
func NewTask(dto *domain.TestTaskDto, body ports.TaskBody, collector *Collector, logger ports.Logger) *Task {
	t := &Task{
		dto:       dto,
		body:      body,
		collector: collector,
		logger:    logger,
	}
	t.init(dto.EID, dto.Label())
	if collector != nil {
		collector.mu.Lock()
		collector.cancelCheck = t.CheckCancel
		collector.mu.Unlock()
	}
	return t
}

// ID returns the task id.
func (t *Task) ID() domain.EID { return t.dto.EID }

// Dto returns the task definition.
func (t *Task) Dto() *domain.TestTaskDto { return t.dto }

// Label returns the display name of the task.
func (t *Task) Label() string { return t.label }

// Collector returns the result collector of the task.
func (t *Task) Collector() *Collector { return t.collector }

// Size returns the declared number of lowest level items of the suite.
func (t *Task) Size() int { return stepsOf(t.dto) }

// Progress returns the completed steps and the step budget.
func (t *Task) Progress() (current, maxSteps int) {
	return t.collector.Progress().Get()
}

// Init prepares the driver side of the task.
func (t *Task) Init(ctx context.Context) error {
	if err := t.transition(domain.StateInitializing, domain.StateCreated); err != nil {
		return err
	}
	if err := t.body.Init(ctx); err != nil {
		return t.fail(err, "failed to initialize test task")
	}
	return t.transition(domain.StateInitialized, domain.StateInitializing)
}

// Run executes the body. A body failure is reported as an internal error
// result and the task ends FAILED; the returned error does not carry the
// body's error. An interrupted task returns domain.ErrInterrupted.
func (t *Task) Run(ctx context.Context) error {
	if err := t.transition(domain.StateRunning, domain.StateInitialized); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	t.mu.Lock()
	t.cancel = cancel
	t.mu.Unlock()

	err := t.body.Run(ctx, t.collector)

	if t.interrupted() {
		return t.interruptedError()
	}
	if ctx.Err() != nil {
		if cerr := t.Cancel(); cerr != nil {
			t.logger.Error(cerr)
		}
		return t.interruptedError()
	}
	if err != nil {
		if errors.Is(err, domain.ErrInterrupted) {
			if cerr := t.Cancel(); cerr != nil {
				t.logger.Error(cerr)
			}
			return t.interruptedError()
		}
		return t.fail(err, "test task failed")
	}

	if err := t.transition(domain.StateCompleted, domain.StateRunning); err != nil {
		if t.interrupted() {
			return t.interruptedError()
		}
		return err
	}
	return nil
}

// Cancel interrupts the task if it is still active. It runs the driver's
// cancel hook, moves to CANCELED and releases the task. Canceling a task that
// is no longer active does nothing.
func (t *Task) Cancel() error {
	if err := t.transition(domain.StateCanceling,
		domain.StateCreated, domain.StateInitializing, domain.StateInitialized, domain.StateRunning); err != nil {
		return nil
	}

	t.mu.Lock()
	cancel := t.cancel
	t.mu.Unlock()
	if cancel != nil {
		cancel()
	}

	var errs []error
	if err := t.body.Cancel(); err != nil {
		errs = append(errs, zerr.With(zerr.Wrap(err, "failed to cancel test task"), "task", t.label))
	}
	if err := t.transition(domain.StateCanceled, domain.StateCanceling); err != nil {
		errs = append(errs, err)
	}
	if err := t.Release(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Release frees the driver side of the task exactly once; only the first call
// reports a release failure. The task moves to FINALIZING when it has ended.
func (t *Task) Release() error {
	var errs []error
	t.releaseOnce.Do(func() {
		if err := t.body.Release(); err != nil {
			errs = append(errs, zerr.With(zerr.Wrap(err, "failed to release test task"), "task", t.label))
		}
	})
	if s := t.State(); s.IsTerminal() || s == domain.StateFinalizing {
		if err := t.transition(domain.StateFinalizing); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// CheckCancel returns domain.ErrInterrupted when the task is being canceled
// or ctx is done. Drivers call it between items.
func (t *Task) CheckCancel(ctx context.Context) error {
	if t.interrupted() || ctx.Err() != nil {
		return t.interruptedError()
	}
	return nil
}

func (t *Task) fail(cause error, msg string) error {
	if !t.collector.InternalErrorReported() {
		t.collector.ReportInternalError(cause)
	}
	t.logger.Error(zerr.With(zerr.Wrap(cause, msg), "task", t.label))
	if err := t.transition(domain.StateFailed); err != nil {
		if t.interrupted() {
			return t.interruptedError()
		}
		return err
	}
	return zerr.With(zerr.Wrap(domain.ErrTaskFailed, msg), "task", t.label)
}

func (t *Task) interruptedError() error {
	return zerr.With(zerr.Wrap(domain.ErrInterrupted, "test task canceled"), "task", t.label)
}
