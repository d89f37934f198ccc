package ports

import (
	"context"

	"github.com/interactive-instruments/etf-spi/internal/core/domain"
)

//go:generate mockgen -source=result.go -destination=mocks/mock_result.go -package=mocks

// ResultCollector receives the results of a task following a strict nesting
// protocol: task, module, case, step, assertion.
type ResultCollector interface {
	// Start opens a result node at the given level below the currently open node.
	// It fails with domain.ErrResultProtocol if level does not match the nesting depth.
	Start(level domain.ResultLevel, resultedFrom domain.EID) (domain.EID, error)

	// End closes the currently open node, which must be id.
	End(id domain.EID, status domain.ResultStatus) error

	// AddMessage attaches a translatable message to the currently open node.
	AddMessage(templateID string, args map[string]string) error

	// AddAttachment records attachment metadata on the currently open node.
	AddAttachment(label, mimeType string, size int) (domain.EID, error)

	// ReportInternalError records an error that prevented the results from being computed.
	ReportInternalError(err error)

	// InternalErrorReported reports whether ReportInternalError was called.
	InternalErrorReported() bool

	// CheckCancel returns domain.ErrInterrupted when the task is being
	// canceled or ctx is done. Drivers call it between items.
	CheckCancel(ctx context.Context) error
}

// ResultPersistor stores the finished result of one task.
type ResultPersistor interface {
	// SetResult stores the result. It fails with domain.ErrAlreadyPersisted on a second call.
	SetResult(result *domain.TestTaskResult) error
	// UpdateResult replaces the stored result with one carrying the same id.
	// It fails with domain.ErrNotFound if no result was stored yet.
	UpdateResult(result *domain.TestTaskResult) error
	// Persisted reports whether a result was stored.
	Persisted() bool
}
