package ports

import "github.com/interactive-instruments/etf-spi/internal/core/domain"

// Store persists domain items of one kind keyed by their EID.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type Store[T domain.Item] interface {
	// Add stores a new item. Existing items are overwritten.
	Add(item T) error

	// Update replaces a stored item.
	// It fails with domain.ErrNotFound if the item was never added.
	Update(item T) error

	// Delete removes an item. Deleting a missing item is not an error.
	Delete(id domain.EID) error

	// GetByID returns a stored item or domain.ErrNotFound.
	GetByID(id domain.EID) (T, error)

	// GetByIDs returns the stored items in the order of ids.
	GetByIDs(ids []domain.EID) ([]T, error)

	// Exists reports whether an item is stored.
	Exists(id domain.EID) bool
}
