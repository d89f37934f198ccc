package plugin

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/interactive-instruments/etf-spi/internal/core/domain"
	"github.com/interactive-instruments/etf-spi/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.DriverProvider = (*Loader)(nil)

// Loader loads and releases driver components.
type Loader struct {
	env        Env
	logger     ports.Logger
	components map[string]Component

	mu     sync.RWMutex
	loaded map[string]ports.TestDriver
}

// NewLoader creates a loader for the given components, or for all
// registered components if none are given.
func NewLoader(env Env, components ...Component) *Loader {
	if len(components) == 0 {
		components = Registered()
	}
	l := &Loader{
		env:        env,
		logger:     env.Logger,
		components: make(map[string]Component, len(components)),
		loaded:     make(map[string]ports.TestDriver),
	}
	for _, c := range components {
		l.components[c.ID] = c
	}
	return l
}

// Load creates and initializes the driver of component id.
func (l *Loader) Load(ctx context.Context, id string) error {
	c, ok := l.components[id]
	if !ok {
		return zerr.With(zerr.Wrap(domain.ErrComponentLoading, "unknown component"), "component", id)
	}
	if n := len(c.EntryPoints); n != 1 {
		err := zerr.Wrap(domain.ErrComponentLoading, "component must have exactly one entry point")
		return zerr.With(zerr.With(err, "component", id), "entry_points", n)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, loaded := l.loaded[id]; loaded {
		return zerr.With(zerr.Wrap(domain.ErrComponentAlreadyLoaded, "load component"), "component", id)
	}

	driver, err := c.EntryPoints[0](l.env)
	if err != nil {
		return zerr.With(zerr.Wrap(errors.Join(domain.ErrComponentLoading, err), "failed to create test driver"), "component", id)
	}
	if err := driver.Init(ctx); err != nil {
		driver.Release()
		return zerr.With(zerr.Wrap(errors.Join(domain.ErrComponentLoading, err), "failed to initialize test driver"), "component", id)
	}

	l.loaded[id] = driver
	info := driver.Info()
	l.logger.Info(fmt.Sprintf("Test driver %s %s loaded", info.Name, info.Version))
	return nil
}

// LoadAll loads every id and returns the joined errors.
func (l *Loader) LoadAll(ctx context.Context, ids []string) error {
	var errs []error
	for _, id := range ids {
		if err := l.Load(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Release releases the driver of component id.
func (l *Loader) Release(id string) error {
	l.mu.Lock()
	driver, ok := l.loaded[id]
	delete(l.loaded, id)
	l.mu.Unlock()

	if !ok {
		return zerr.With(zerr.Wrap(domain.ErrComponentNotLoaded, "lookup component"), "component", id)
	}
	driver.Release()
	l.logger.Debug(fmt.Sprintf("test driver %s released", id))
	return nil
}

// Reload releases the driver of component id if it is loaded and loads it
// again.
func (l *Loader) Reload(ctx context.Context, id string) error {
	if err := l.Release(id); err != nil && !errors.Is(err, domain.ErrComponentNotLoaded) {
		return err
	}
	return l.Load(ctx, id)
}

// ReleaseAll releases every loaded driver.
func (l *Loader) ReleaseAll() {
	l.mu.RLock()
	ids := slices.Sorted(maps.Keys(l.loaded))
	l.mu.RUnlock()

	for _, id := range ids {
		_ = l.Release(id)
	}
}

// Driver implements ports.DriverProvider.
func (l *Loader) Driver(id string) (ports.TestDriver, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	driver, ok := l.loaded[id]
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrComponentNotLoaded, "lookup component"), "component", id)
	}
	return driver, nil
}

// Drivers implements ports.DriverProvider.
func (l *Loader) Drivers() []ports.TestDriver {
	l.mu.RLock()
	defer l.mu.RUnlock()

	res := make([]ports.TestDriver, 0, len(l.loaded))
	for _, id := range slices.Sorted(maps.Keys(l.loaded)) {
		res = append(res, l.loaded[id])
	}
	return res
}
