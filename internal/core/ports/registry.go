package ports

import "github.com/interactive-instruments/etf-spi/internal/core/domain"

//go:generate mockgen -source=registry.go -destination=mocks/mock_registry.go -package=mocks

// DependencyChangeListener is notified about state changes of items it looked up.
// Implementations must be comparable, the registry uses them as map keys.
type DependencyChangeListener interface {
	// DependencyResolved is called once when a looked up identity becomes available.
	DependencyResolved(item domain.Item)
	// DependencyUpdated is called when a resolved item was rebuilt.
	DependencyUpdated(item domain.Item)
	// DependencyDeregistered is called when a resolved item was removed.
	DependencyDeregistered(item domain.Item)
}

// ItemRegistry tracks which identities are resolved and who waits for them.
type ItemRegistry interface {
	// Register marks the items as resolved and notifies waiting listeners.
	// It fails with domain.ErrAlreadyRegistered for items that are already resolved;
	// the remaining items are still processed.
	Register(items ...domain.Item) error

	// Deregister marks the items as unknown again. Unknown identities are ignored.
	Deregister(items ...domain.Item)

	// Update notifies listeners that the items changed.
	// It fails with domain.ErrNotFound for identities the registry has never seen.
	Update(items ...domain.Item) error

	// LookupDependency subscribes the listener to the ids and returns those that are
	// resolved right now.
	LookupDependency(ids []domain.EID, listener DependencyChangeListener) map[domain.EID]domain.Item

	// Lookup returns the resolved items for ids without subscribing.
	// It fails with domain.ErrNotFound if any id is not resolved.
	Lookup(ids ...domain.EID) (map[domain.EID]domain.Item, error)

	// DeregisterCallback removes the listener from every identity.
	DeregisterCallback(listener DependencyChangeListener)
}
