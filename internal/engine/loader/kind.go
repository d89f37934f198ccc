// Package loader builds domain items from definition files and keeps them in
// sync with the files and with the items they depend on.
package loader

import (
	"cmp"

	"github.com/interactive-instruments/etf-spi/internal/core/domain"
)

// Draft is a parsed definition file that still needs its dependencies to become an item.
type Draft[T domain.Item] interface {
	// Dependencies returns the identities the item cannot be built without.
	Dependencies() []domain.EID
	// Build creates the item. resolved contains every id returned by Dependencies.
	Build(resolved map[domain.EID]domain.Item) (T, error)
}

// Kind describes one type of definition file.
type Kind[T domain.Item] interface {
	// Name is used in log messages.
	Name() string
	// Priority orders kinds; lower priorities load first.
	Priority() int
	// Handles reports whether the file at path is a definition of this kind.
	Handles(path string) bool
	// Parse reads the file at path.
	Parse(path string) (Draft[T], error)
	// Release frees resources held by an item that is no longer used.
	Release(item T)
}

// FileChangeListener is told about the items a file loader builds and destroys.
type FileChangeListener[T domain.Item] interface {
	ItemBuilt(item T)
	ItemUpdated(item T)
	ItemDestroyed(item T)
}

// FileLoader is the type independent view of an ItemFileLoader.
type FileLoader interface {
	Path() string
	Priority() int
	UnresolvedCount() int
	Built() bool
	Prepare() error
	Build()
	FileUpdated() error
	Release()
}

// Handler creates file loaders for the files it handles.
type Handler interface {
	Name() string
	Priority() int
	Handles(path string) bool
	NewLoader(path string) FileLoader
}

// Compare orders loaders by priority and then by the number of dependencies
// they still wait for, so that loaders with fewer blockers build first.
func Compare(a, b FileLoader) int {
	if c := cmp.Compare(a.Priority(), b.Priority()); c != 0 {
		return c
	}
	return cmp.Compare(a.UnresolvedCount(), b.UnresolvedCount())
}
