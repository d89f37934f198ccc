package loader

import (
	"errors"
	"maps"
	"sync"

	"github.com/interactive-instruments/etf-spi/internal/core/domain"
	"github.com/interactive-instruments/etf-spi/internal/core/ports"
	"github.com/interactive-instruments/etf-spi/internal/engine/dispatch"
	"go.trai.ch/zerr"
)

// ItemFileLoader owns the item built from one definition file.
//
// A loader is unprepared until its file was parsed, prepared while it waits
// for dependencies and built once the item exists. Losing a dependency or the
// file destroys the item again. All state changes, including registry
// callbacks, run through one queue per loader so that a callback arriving
// while the loader is busy is applied after the current operation.
type ItemFileLoader[T domain.Item] struct {
	path     string
	kind     Kind[T]
	registry ports.ItemRegistry
	listener FileChangeListener[T]
	logger   ports.Logger
	queue    dispatch.Queue

	mu         sync.Mutex
	draft      Draft[T]
	prepared   bool
	unresolved map[domain.EID]struct{}
	resolved   map[domain.EID]domain.Item
	item       T
	built      bool
	released   bool
}

// NewItemFileLoader creates an unprepared loader for path.
func NewItemFileLoader[T domain.Item](
	path string,
	kind Kind[T],
	registry ports.ItemRegistry,
	listener FileChangeListener[T],
	logger ports.Logger,
) *ItemFileLoader[T] {
	return &ItemFileLoader[T]{
		path:       path,
		kind:       kind,
		registry:   registry,
		listener:   listener,
		logger:     logger,
		unresolved: make(map[domain.EID]struct{}),
		resolved:   make(map[domain.EID]domain.Item),
	}
}

// Path returns the definition file.
func (l *ItemFileLoader[T]) Path() string { return l.path }

// Priority returns the priority of the loader's kind.
func (l *ItemFileLoader[T]) Priority() int { return l.kind.Priority() }

// UnresolvedCount returns the number of dependencies the loader waits for.
func (l *ItemFileLoader[T]) UnresolvedCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.unresolved)
}

// Built reports whether the loader currently owns a built item.
func (l *ItemFileLoader[T]) Built() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.built
}

// Item returns the built item.
func (l *ItemFileLoader[T]) Item() (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.item, l.built
}

// Prepare parses the file and declares the dependencies of the item.
func (l *ItemFileLoader[T]) Prepare() error {
	draft, err := l.kind.Parse(l.path)
	if err != nil {
		return err
	}
	l.queue.Do(func() { l.prepare(draft) })
	return nil
}

// DeclareDependencies adds dependencies the item cannot be built without.
func (l *ItemFileLoader[T]) DeclareDependencies(ids ...domain.EID) {
	l.queue.Do(func() { l.declareDependencies(ids) })
}

// Build builds the item if the loader is prepared, nothing is unresolved and
// the item was not built yet.
func (l *ItemFileLoader[T]) Build() {
	l.queue.Do(func() {
		if !l.Built() {
			l.build()
		}
	})
}

// FileUpdated re-parses the changed file and rebuilds the item.
func (l *ItemFileLoader[T]) FileUpdated() error {
	draft, err := l.kind.Parse(l.path)
	if err != nil {
		l.Release()
		return err
	}
	l.queue.Do(func() {
		l.registry.DeregisterCallback(l)
		l.prepare(draft)
		if l.UnresolvedCount() > 0 {
			l.destroy()
			return
		}
		l.build()
	})
	return nil
}

// Release destroys the item and unsubscribes from the registry.
func (l *ItemFileLoader[T]) Release() {
	l.queue.Do(func() {
		l.destroy()
		l.registry.DeregisterCallback(l)
		l.mu.Lock()
		l.released = true
		l.mu.Unlock()
	})
}

// DependencyResolved implements ports.DependencyChangeListener.
func (l *ItemFileLoader[T]) DependencyResolved(dep domain.Item) {
	l.queue.Do(func() {
		id := dep.ID()
		l.mu.Lock()
		_, waiting := l.unresolved[id]
		delete(l.unresolved, id)
		l.resolved[id] = dep
		built := l.built
		l.mu.Unlock()

		if waiting && !built {
			l.build()
		}
	})
}

// DependencyUpdated implements ports.DependencyChangeListener.
func (l *ItemFileLoader[T]) DependencyUpdated(dep domain.Item) {
	l.queue.Do(func() {
		id := dep.ID()
		l.mu.Lock()
		if _, ok := l.resolved[id]; !ok {
			l.mu.Unlock()
			return
		}
		l.resolved[id] = dep
		built := l.built
		l.mu.Unlock()

		if built {
			l.build()
		}
	})
}

// DependencyDeregistered implements ports.DependencyChangeListener.
func (l *ItemFileLoader[T]) DependencyDeregistered(dep domain.Item) {
	l.queue.Do(func() {
		id := dep.ID()
		l.mu.Lock()
		if _, ok := l.resolved[id]; !ok {
			l.mu.Unlock()
			return
		}
		delete(l.resolved, id)
		l.unresolved[id] = struct{}{}
		l.mu.Unlock()

		l.logger.Debug(l.kind.Name() + " " + l.path + " lost dependency " + id.String())
		l.destroy()
	})
}

func (l *ItemFileLoader[T]) prepare(draft Draft[T]) {
	l.mu.Lock()
	l.draft = draft
	l.unresolved = make(map[domain.EID]struct{})
	l.resolved = make(map[domain.EID]domain.Item)
	l.mu.Unlock()

	l.declareDependencies(draft.Dependencies())

	l.mu.Lock()
	l.prepared = true
	l.mu.Unlock()
}

func (l *ItemFileLoader[T]) declareDependencies(ids []domain.EID) {
	if len(ids) == 0 {
		return
	}
	resolved := l.registry.LookupDependency(ids, l)

	l.mu.Lock()
	defer l.mu.Unlock()
	for _, id := range ids {
		if item, ok := resolved[id]; ok {
			l.resolved[id] = item
			continue
		}
		l.unresolved[id] = struct{}{}
	}
}

func (l *ItemFileLoader[T]) build() {
	l.mu.Lock()
	if !l.prepared || l.released || len(l.unresolved) > 0 {
		l.mu.Unlock()
		return
	}
	draft := l.draft
	resolved := maps.Clone(l.resolved)
	old, rebuild := l.item, l.built
	l.mu.Unlock()

	item, err := draft.Build(resolved)
	if err != nil {
		l.logger.Error(zerr.With(zerr.Wrap(err, "failed to build "+l.kind.Name()), "path", l.path))
		if rebuild {
			l.destroy()
		}
		return
	}

	if rebuild && old.ID() == item.ID() {
		l.setItem(item)
		l.propagateUpdate(item)
		l.listener.ItemUpdated(item)
		return
	}
	if rebuild {
		l.destroy()
	}

	if err := l.registry.Register(item); err != nil {
		l.logger.Error(zerr.With(zerr.Wrap(err, "failed to register "+l.kind.Name()), "path", l.path))
		l.kind.Release(item)
		return
	}
	l.setItem(item)
	l.logger.Debug("built " + l.kind.Name() + " " + item.ID().String())
	l.listener.ItemBuilt(item)
}

// propagateUpdate tells dependents about the rebuilt item. If the registry
// lost track of the item it is registered again.
func (l *ItemFileLoader[T]) propagateUpdate(item T) {
	err := l.registry.Update(item)
	if err == nil {
		return
	}
	if !errors.Is(err, domain.ErrNotFound) {
		l.logger.Error(err)
		return
	}
	l.logger.Warn("registry did not know " + l.kind.Name() + " " + item.ID().String() + ", registering it again")
	if err := l.registry.Register(item); err != nil {
		l.logger.Error(err)
	}
}

func (l *ItemFileLoader[T]) destroy() {
	l.mu.Lock()
	item, built := l.item, l.built
	var zero T
	l.item, l.built = zero, false
	l.mu.Unlock()

	if !built {
		return
	}
	l.registry.Deregister(item)
	l.kind.Release(item)
	l.listener.ItemDestroyed(item)
}

func (l *ItemFileLoader[T]) setItem(item T) {
	l.mu.Lock()
	l.item, l.built = item, true
	l.mu.Unlock()
}
