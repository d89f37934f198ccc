// Package registry tracks the resolution state of items that reference each
// other by identity and notifies interested consumers about changes.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/interactive-instruments/etf-spi/internal/core/domain"
	"github.com/interactive-instruments/etf-spi/internal/core/ports"
	"github.com/interactive-instruments/etf-spi/internal/engine/dispatch"
	"go.trai.ch/zerr"
)

type eventKind uint8

const (
	eventResolved eventKind = iota
	eventUpdated
	eventDeregistered
)

func (k eventKind) String() string {
	switch k {
	case eventResolved:
		return "resolved"
	case eventUpdated:
		return "updated"
	default:
		return "deregistered"
	}
}

// entry is the state cell of one identity. A nil item means the identity is unknown.
type entry struct {
	item      domain.Item
	listeners []ports.DependencyChangeListener
}

// Registry implements ports.ItemRegistry with a single lock.
// Listener callbacks are queued while the lock is held and delivered after it
// is released, so callbacks may call back into the registry.
type Registry struct {
	mu      sync.Mutex
	entries map[domain.EID]*entry
	queue   dispatch.Queue
	logger  ports.Logger
}

// New creates an empty registry.
func New(logger ports.Logger) *Registry {
	return &Registry{
		entries: make(map[domain.EID]*entry),
		logger:  logger,
	}
}

// Register implements ports.ItemRegistry.
func (r *Registry) Register(items ...domain.Item) error {
	var errs []error

	r.mu.Lock()
	for _, item := range items {
		id := item.ID()
		e, ok := r.entries[id]
		switch {
		case !ok:
			r.entries[id] = &entry{item: item}
		case e.item != nil:
			errs = append(errs, zerr.With(
				zerr.Wrap(domain.ErrAlreadyRegistered, "failed to register item"), "id", id.String()))
		default:
			e.item = item
			r.notifyLocked(id, e, eventResolved, item)
		}
	}
	r.mu.Unlock()

	r.queue.Drain()
	return errors.Join(errs...)
}

// Deregister implements ports.ItemRegistry.
func (r *Registry) Deregister(items ...domain.Item) {
	r.mu.Lock()
	for _, item := range items {
		id := item.ID()
		e, ok := r.entries[id]
		if !ok || e.item == nil {
			continue
		}
		old := e.item
		e.item = nil
		r.notifyLocked(id, e, eventDeregistered, old)
	}
	r.mu.Unlock()

	r.queue.Drain()
}

// Update implements ports.ItemRegistry.
// An update of an unknown identity resolves it.
func (r *Registry) Update(items ...domain.Item) error {
	var errs []error

	r.mu.Lock()
	for _, item := range items {
		id := item.ID()
		e, ok := r.entries[id]
		if !ok {
			errs = append(errs, zerr.With(
				zerr.Wrap(domain.ErrNotFound, "failed to update item"), "id", id.String()))
			continue
		}
		kind := eventUpdated
		if e.item == nil {
			kind = eventResolved
		}
		e.item = item
		r.notifyLocked(id, e, kind, item)
	}
	r.mu.Unlock()

	r.queue.Drain()
	return errors.Join(errs...)
}

// LookupDependency implements ports.ItemRegistry.
func (r *Registry) LookupDependency(
	ids []domain.EID, listener ports.DependencyChangeListener,
) map[domain.EID]domain.Item {
	resolved := make(map[domain.EID]domain.Item, len(ids))

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range ids {
		e, ok := r.entries[id]
		if !ok {
			e = &entry{}
			r.entries[id] = e
		}
		if !slices.Contains(e.listeners, listener) {
			e.listeners = append(e.listeners, listener)
		}
		if e.item != nil {
			resolved[id] = e.item
		}
	}
	return resolved
}

// Lookup implements ports.ItemRegistry.
func (r *Registry) Lookup(ids ...domain.EID) (map[domain.EID]domain.Item, error) {
	res := make(map[domain.EID]domain.Item, len(ids))
	var missing []domain.EID

	r.mu.Lock()
	for _, id := range ids {
		if e, ok := r.entries[id]; ok && e.item != nil {
			res[id] = e.item
			continue
		}
		missing = append(missing, id)
	}
	r.mu.Unlock()

	if len(missing) > 0 {
		return res, zerr.With(zerr.Wrap(domain.ErrNotFound, "failed to look up items"),
			"ids", domain.EIDStrings(missing))
	}
	return res, nil
}

// DeregisterCallback implements ports.ItemRegistry.
func (r *Registry) DeregisterCallback(listener ports.DependencyChangeListener) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.entries {
		e.listeners = slices.DeleteFunc(e.listeners, func(l ports.DependencyChangeListener) bool {
			return l == listener
		})
	}
}

// Resolved reports whether id is currently resolved.
func (r *Registry) Resolved(id domain.EID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	return ok && e.item != nil
}

// notifyLocked queues one callback per listener. Must be called with r.mu held.
func (r *Registry) notifyLocked(id domain.EID, e *entry, kind eventKind, item domain.Item) {
	for _, l := range e.listeners {
		r.queue.Push(func() { r.deliver(id, l, kind, item) })
	}
}

// deliver invokes a callback unless the listener was removed in the meantime.
func (r *Registry) deliver(id domain.EID, l ports.DependencyChangeListener, kind eventKind, item domain.Item) {
	r.mu.Lock()
	e, ok := r.entries[id]
	subscribed := ok && slices.Contains(e.listeners, l)
	r.mu.Unlock()
	if !subscribed {
		return
	}

	defer func() {
		if p := recover(); p != nil {
			err := zerr.Wrap(fmt.Errorf("%v", p), "dependency listener failed")
			err = zerr.With(err, "id", id.String())
			err = zerr.With(err, "event", kind.String())
			r.logger.Error(err)
		}
	}()

	switch kind {
	case eventResolved:
		l.DependencyResolved(item)
	case eventUpdated:
		l.DependencyUpdated(item)
	case eventDeregistered:
		l.DependencyDeregistered(item)
	}
}
