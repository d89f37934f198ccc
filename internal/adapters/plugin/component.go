// Package plugin loads the compiled-in test driver components.
package plugin

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/interactive-instruments/etf-spi/internal/core/domain"
	"github.com/interactive-instruments/etf-spi/internal/core/ports"
)

// Env is what a driver gets to build itself.
type Env struct {
	Config   *domain.Config
	Registry ports.ItemRegistry
	Logger   ports.Logger
	Walker   ports.Walker
	Hasher   ports.Hasher
	// NewWatcher is nil if definition directories are not watched.
	NewWatcher func(window time.Duration) (ports.Watcher, error)
}

// EntryPoint creates a driver.
type EntryPoint func(env Env) (ports.TestDriver, error)

// Component is a driver that can be loaded by id. A loadable component has
// exactly one entry point.
type Component struct {
	ID          string
	EntryPoints []EntryPoint
}

var (
	registryMu sync.RWMutex
	registered = make(map[string]Component)
)

// Register makes a component available to loaders created afterwards. It
// panics if the id is empty or registered twice.
func Register(c Component) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if c.ID == "" {
		panic("plugin: Register called with an empty component id")
	}
	if _, dup := registered[c.ID]; dup {
		panic("plugin: Register called twice for component " + c.ID)
	}
	registered[c.ID] = c
}

// Registered returns all registered components ordered by id.
func Registered() []Component {
	registryMu.RLock()
	defer registryMu.RUnlock()

	res := make([]Component, 0, len(registered))
	for _, c := range registered {
		res = append(res, c)
	}
	slices.SortFunc(res, func(a, b Component) int { return strings.Compare(a.ID, b.ID) })
	return res
}
