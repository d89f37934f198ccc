package ports

import (
	"context"

	"github.com/interactive-instruments/etf-spi/internal/core/domain"
)

//go:generate mockgen -source=driver.go -destination=mocks/mock_driver.go -package=mocks

// TestDriver is a loaded component that owns executable test suites and can
// execute them against test objects.
type TestDriver interface {
	// Info describes the driver.
	Info() domain.ComponentInfo

	// Init prepares the driver. It is called once after loading.
	Init(ctx context.Context) error

	// ExecutableTestSuites returns the suites the driver currently owns.
	ExecutableTestSuites() []*domain.ExecutableTestSuite

	// LookupExecutableTestSuites resolves as many unknown suites of the request
	// as the driver owns, including their dependencies.
	LookupExecutableTestSuites(req SuiteLookupRequest)

	// CreateTestTask creates the executable body of a task.
	CreateTestTask(dto *domain.TestTaskDto) (TaskBody, error)

	// Release frees all resources of the driver.
	Release()
}

// SuiteLookupRequest is passed along the drivers until every suite is known.
type SuiteLookupRequest interface {
	// Unknown returns the suite ids addressed to the driver that have not been resolved yet.
	Unknown() []domain.EID
	// AddKnown reports resolved suites.
	AddKnown(suites ...*domain.ExecutableTestSuite)
}

// TaskBody is the driver specific part of a test task.
type TaskBody interface {
	// Init prepares the execution.
	Init(ctx context.Context) error
	// Run executes the suite and reports results through the collector.
	// ctx is canceled when the task is canceled.
	Run(ctx context.Context, collector ResultCollector) error
	// Cancel is the driver specific cancellation hook.
	Cancel() error
	// Release frees the resources of the body.
	Release() error
}

// DriverProvider gives access to the loaded drivers.
type DriverProvider interface {
	// Driver returns a loaded driver or domain.ErrComponentNotLoaded.
	Driver(id string) (TestDriver, error)
	// Drivers returns all loaded drivers ordered by id.
	Drivers() []TestDriver
}
