package manager

import (
	"sync"

	"github.com/interactive-instruments/etf-spi/internal/core/domain"
	"github.com/interactive-instruments/etf-spi/internal/core/ports"
	"go.trai.ch/zerr"
)

// Persistor stores the result of one task through the result store.
type Persistor struct {
	store ports.Store[*domain.TestTaskResult]

	mu        sync.Mutex
	persisted bool
}

var _ ports.ResultPersistor = (*Persistor)(nil)

// NewPersistor creates a persistor writing to store. A nil store only records
// that a result was set.
func NewPersistor(store ports.Store[*domain.TestTaskResult]) *Persistor {
	return &Persistor{store: store}
}

// SetResult implements ports.ResultPersistor.
func (p *Persistor) SetResult(result *domain.TestTaskResult) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.persisted {
		return zerr.With(zerr.Wrap(domain.ErrAlreadyPersisted, "failed to persist result"), "task", result.TaskID.String())
	}
	if p.store != nil {
		if err := p.store.Add(result); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to persist result"), "task", result.TaskID.String())
		}
	}
	p.persisted = true
	return nil
}

// UpdateResult implements ports.ResultPersistor.
func (p *Persistor) UpdateResult(result *domain.TestTaskResult) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.persisted {
		return zerr.With(zerr.Wrap(domain.ErrNotFound, "no result to update"), "task", result.TaskID.String())
	}
	if p.store != nil {
		if err := p.store.Update(result); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to update result"), "task", result.TaskID.String())
		}
	}
	return nil
}

// Persisted implements ports.ResultPersistor.
func (p *Persistor) Persisted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.persisted
}
