package ports

import (
	"context"
	"iter"
)

// WatchOp represents the type of file system operation.
type WatchOp uint8

const (
	// OpCreate indicates a file or directory was created.
	OpCreate WatchOp = iota
	// OpWrite indicates a file was modified.
	OpWrite
	// OpRemove indicates a file or directory was removed.
	OpRemove
	// OpRename indicates a file or directory was renamed away.
	OpRename
)

// String returns the lower case name of the operation.
func (o WatchOp) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpWrite:
		return "write"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	default:
		return "unknown"
	}
}

// Gone reports whether the path no longer exists after the operation.
func (o WatchOp) Gone() bool {
	return o == OpRemove || o == OpRename
}

// WatchEvent represents a file system event from the watcher.
type WatchEvent struct {
	// Path is the absolute path of the file or directory that changed.
	Path string
	// Operation is the type of change that occurred.
	Operation WatchOp
}

// ChangeBatch is a debounced set of file system changes.
type ChangeBatch struct {
	// Changes maps absolute paths to the last operation seen for them.
	Changes map[string]WatchOp
	// Dirs are the sorted top-level directories below the watched root that changed.
	Dirs []string
}

// Watcher defines the interface for watching file system changes.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start begins watching the given root directory recursively.
	// It returns an error if the watcher fails to start.
	Start(ctx context.Context, root string) error
	// Stop stops the watcher and releases all resources.
	Stop() error
	// Batches returns an iterator of debounced change batches.
	// The iterator ends when the watcher is stopped.
	Batches() iter.Seq[ChangeBatch]
}
