// Package scheduler executes independent test runs in parallel.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/interactive-instruments/etf-spi/internal/core/domain"
	"github.com/interactive-instruments/etf-spi/internal/core/ports"
	"github.com/interactive-instruments/etf-spi/internal/engine/lifecycle"
	"golang.org/x/sync/errgroup"
)

// RunStatus is the outcome of one run as seen by the scheduler.
type RunStatus string

const (
	// StatusPending indicates the run is waiting for a worker.
	StatusPending RunStatus = "Pending"
	// StatusRunning indicates the run is executing.
	StatusRunning RunStatus = "Running"
	// StatusCompleted indicates all tasks of the run completed.
	StatusCompleted RunStatus = "Completed"
	// StatusCanceled indicates the run was interrupted.
	StatusCanceled RunStatus = "Canceled"
	// StatusFailed indicates the run failed.
	StatusFailed RunStatus = "Failed"
)

// Scheduler hands runs to a bounded number of workers. The tasks of one run
// always execute sequentially.
type Scheduler struct {
	logger ports.Logger

	mu        sync.RWMutex
	runStatus map[domain.EID]RunStatus
}

// NewScheduler creates a Scheduler.
func NewScheduler(logger ports.Logger) *Scheduler {
	return &Scheduler{
		logger:    logger,
		runStatus: make(map[domain.EID]RunStatus),
	}
}

// Status returns the status of a run that was passed to Execute.
func (s *Scheduler) Status(id domain.EID) (RunStatus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.runStatus[id]
	return st, ok
}

func (s *Scheduler) updateStatus(id domain.EID, status RunStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runStatus[id] = status
}

// Execute calls every run with at most parallelism runs at a time and waits
// for all of them. A failing run does not stop the others; the errors of all
// runs are joined. A parallelism below one uses the number of CPUs.
func (s *Scheduler) Execute(ctx context.Context, runs []*lifecycle.Run, parallelism int) error {
	if parallelism < 1 {
		parallelism = runtime.NumCPU()
	}
	for _, r := range runs {
		s.updateStatus(r.ID(), StatusPending)
	}

	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs []error
	)
	g.SetLimit(parallelism)

	for _, r := range runs {
		g.Go(func() error {
			s.updateStatus(r.ID(), StatusRunning)
			err := r.Call(ctx)
			switch {
			case err == nil:
				s.updateStatus(r.ID(), StatusCompleted)
			case errors.Is(err, domain.ErrInterrupted):
				s.updateStatus(r.ID(), StatusCanceled)
			default:
				s.updateStatus(r.ID(), StatusFailed)
			}
			if err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	s.logger.Debug(fmt.Sprintf("executed %d test run(s), %d failed or canceled", len(runs), len(errs)))
	return errors.Join(errs...)
}
