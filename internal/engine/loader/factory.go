package loader

import (
	"errors"
	"slices"
	"sync"

	"github.com/interactive-instruments/etf-spi/internal/core/domain"
	"github.com/interactive-instruments/etf-spi/internal/core/ports"
)

// Factory creates loaders for one kind and keeps the items they built.
// Built items are written to the store if one is set.
type Factory[T domain.Item] struct {
	kind     Kind[T]
	registry ports.ItemRegistry
	store    ports.Store[T]
	logger   ports.Logger

	mu    sync.RWMutex
	items map[domain.EID]T
}

var _ Handler = (*Factory[domain.Item])(nil)

// NewFactory creates a factory. store may be nil.
func NewFactory[T domain.Item](
	kind Kind[T], registry ports.ItemRegistry, store ports.Store[T], logger ports.Logger,
) *Factory[T] {
	return &Factory[T]{
		kind:     kind,
		registry: registry,
		store:    store,
		logger:   logger,
		items:    make(map[domain.EID]T),
	}
}

// Name implements Handler.
func (f *Factory[T]) Name() string { return f.kind.Name() }

// Priority implements Handler.
func (f *Factory[T]) Priority() int { return f.kind.Priority() }

// Handles implements Handler.
func (f *Factory[T]) Handles(path string) bool { return f.kind.Handles(path) }

// NewLoader implements Handler.
func (f *Factory[T]) NewLoader(path string) FileLoader {
	return NewItemFileLoader(path, f.kind, f.registry, f, f.logger)
}

// ItemBuilt implements FileChangeListener.
func (f *Factory[T]) ItemBuilt(item T) {
	f.mu.Lock()
	f.items[item.ID()] = item
	f.mu.Unlock()

	if f.store == nil {
		return
	}
	if err := f.store.Add(item); err != nil {
		f.logger.Error(err)
	}
}

// ItemUpdated implements FileChangeListener.
func (f *Factory[T]) ItemUpdated(item T) {
	f.mu.Lock()
	f.items[item.ID()] = item
	f.mu.Unlock()

	if f.store == nil {
		return
	}
	err := f.store.Update(item)
	if errors.Is(err, domain.ErrNotFound) {
		err = f.store.Add(item)
	}
	if err != nil {
		f.logger.Error(err)
	}
}

// ItemDestroyed implements FileChangeListener.
func (f *Factory[T]) ItemDestroyed(item T) {
	f.mu.Lock()
	delete(f.items, item.ID())
	f.mu.Unlock()

	if f.store == nil {
		return
	}
	if err := f.store.Delete(item.ID()); err != nil {
		f.logger.Error(err)
	}
}

// Get returns a built item.
func (f *Factory[T]) Get(id domain.EID) (T, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	item, ok := f.items[id]
	return item, ok
}

// Items returns all built items ordered by id.
func (f *Factory[T]) Items() []T {
	f.mu.RLock()
	res := make([]T, 0, len(f.items))
	for _, item := range f.items {
		res = append(res, item)
	}
	f.mu.RUnlock()

	slices.SortFunc(res, func(a, b T) int { return a.ID().Compare(b.ID()) })
	return res
}
