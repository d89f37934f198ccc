// Package manager assembles executable test runs from run requests.
package manager

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/interactive-instruments/etf-spi/internal/core/domain"
	"github.com/interactive-instruments/etf-spi/internal/core/ports"
	"github.com/interactive-instruments/etf-spi/internal/engine/lifecycle"
	"github.com/interactive-instruments/etf-spi/internal/engine/lookup"
	"go.trai.ch/zerr"
)

// Manager turns a run request into an ordered, deduplicated run of tasks.
type Manager struct {
	drivers    ports.DriverProvider
	resolver   *lookup.Resolver
	results    ports.Store[*domain.TestTaskResult]
	logger     ports.Logger
	tracer     ports.Tracer
	startDelay time.Duration
}

// Option configures a Manager.
type Option func(*Manager)

// WithStartDelay sets the delay before a created run starts its first task.
func WithStartDelay(d time.Duration) Option {
	return func(m *Manager) {
		m.startDelay = d
	}
}

// New creates a Manager. results may be nil.
func New(
	drivers ports.DriverProvider,
	resolver *lookup.Resolver,
	results ports.Store[*domain.TestTaskResult],
	logger ports.Logger,
	tracer ports.Tracer,
	opts ...Option,
) *Manager {
	m := &Manager{
		drivers:  drivers,
		resolver: resolver,
		results:  results,
		logger:   logger,
		tracer:   tracer,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// suiteNode adapts a suite to the dependency graph. Dependencies that are not
// part of the resolved set are ignored.
type suiteNode struct {
	suite *domain.ExecutableTestSuite
	all   map[domain.EID]*domain.ExecutableTestSuite
}

func (n suiteNode) ID() domain.EID { return n.suite.EID }

func (n suiteNode) Dependencies() []suiteNode {
	res := make([]suiteNode, 0, len(n.suite.Dependencies))
	for _, ref := range n.suite.Dependencies {
		if dep, ok := n.all[ref.ID]; ok {
			res = append(res, suiteNode{suite: dep, all: n.all})
		}
	}
	return res
}

type pairKey struct {
	object domain.EID
	suite  domain.EID
}

// CreateTestRun resolves the suites of every requested task with their
// dependencies and creates one task per distinct (test object, suite) pair.
// Dependencies come before the suites that need them. A requested task whose
// suites cannot be resolved is skipped; the run fails with domain.ErrNoTasks
// if nothing is left.
func (m *Manager) CreateTestRun(ctx context.Context, req *domain.TestRunDto) (*lifecycle.Run, error) {
	run := *req
	if run.EID.IsZero() {
		run.EID = domain.RandomEID()
	}
	run.Tasks = nil

	seen := make(map[pairKey]bool)
	var tasks []*lifecycle.Task

	for _, requested := range req.Tasks {
		created, err := m.createTasks(ctx, &run, requested, seen)
		if err != nil {
			m.logger.Error(err)
			continue
		}
		for _, t := range created {
			run.Tasks = append(run.Tasks, t.Dto())
		}
		tasks = append(tasks, created...)
	}

	if len(tasks) == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrNoTasks, "failed to create test run"), "run", run.Label)
	}
	m.logger.Info(fmt.Sprintf("Preparing %d Test Task(s)", len(tasks)))

	return lifecycle.NewRun(&run, tasks, m.logger, m.tracer, lifecycle.WithStartDelay(m.startDelay)), nil
}

func (m *Manager) createTasks(
	ctx context.Context,
	run *domain.TestRunDto,
	requested *domain.TestTaskDto,
	seen map[pairKey]bool,
) ([]*lifecycle.Task, error) {
	if requested.Suite == nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrNoSuitesSpecified, "failed to create test task"), "task", requested.EID.String())
	}
	if requested.TestObject == nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrNoTestObjectSpecified, "failed to create test task"), "suite", requested.Suite.EID.String())
	}

	ref := domain.SuiteRef{ID: requested.Suite.EID, DriverID: requested.Suite.DriverID}
	suites, err := m.resolver.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	root, ok := suites[ref.ID]
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrNotFound, "failed to resolve executable test suite"), "suite", ref.ID.String())
	}

	graph := domain.NewDependencyGraph(suiteNode{suite: root, all: suites})
	ordered := graph.SortIgnoreCycle()
	slices.Reverse(ordered)

	var (
		tasks []*lifecycle.Task
		keys  []pairKey
	)
	for _, node := range ordered {
		key := pairKey{object: requested.TestObject.EID, suite: node.suite.EID}
		if seen[key] || slices.Contains(keys, key) {
			continue
		}

		dto := *requested
		dto.EID = domain.RandomEID()
		dto.RunID = run.EID
		dto.Suite = node.suite

		task, err := m.createTask(&dto)
		if err != nil {
			releaseTasks(tasks, m.logger)
			return nil, err
		}
		tasks = append(tasks, task)
		keys = append(keys, key)
	}

	for _, k := range keys {
		seen[k] = true
	}
	return tasks, nil
}

func (m *Manager) createTask(dto *domain.TestTaskDto) (*lifecycle.Task, error) {
	driver, err := m.drivers.Driver(dto.Suite.DriverID)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create test task"), "suite", dto.Suite.EID.String())
	}
	body, err := driver.CreateTestTask(dto)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create test task"), "suite", dto.Suite.EID.String())
	}
	collector := lifecycle.NewCollector(dto, NewPersistor(m.results), m.logger)
	return lifecycle.NewTask(dto, body, collector, m.logger), nil
}

func releaseTasks(tasks []*lifecycle.Task, logger ports.Logger) {
	var errs []error
	for _, t := range tasks {
		if err := t.Release(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		logger.Error(err)
	}
}
