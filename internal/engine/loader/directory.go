package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/interactive-instruments/etf-spi/internal/core/ports"
	"go.trai.ch/zerr"
)

// Directory maintains one file loader per definition file below a root directory.
type Directory struct {
	root     string
	handlers []Handler
	walker   ports.Walker
	hasher   ports.Hasher
	logger   ports.Logger
	delay    time.Duration

	mu      sync.Mutex
	loaders map[string]FileLoader
	hashes  map[string]uint64
}

// NewDirectory creates a directory loader. Handlers are consulted in priority order.
func NewDirectory(
	root string, walker ports.Walker, hasher ports.Hasher, logger ports.Logger, handlers ...Handler,
) *Directory {
	sorted := slices.Clone(handlers)
	slices.SortStableFunc(sorted, func(a, b Handler) int { return a.Priority() - b.Priority() })
	return &Directory{
		root:     root,
		handlers: sorted,
		walker:   walker,
		hasher:   hasher,
		logger:   logger,
		loaders:  make(map[string]FileLoader),
		hashes:   make(map[string]uint64),
	}
}

// WithDelay makes Scan wait before it walks the directory.
func (d *Directory) WithDelay(delay time.Duration) *Directory {
	d.delay = delay
	return d
}

// Root returns the watched directory.
func (d *Directory) Root() string { return d.root }

// Scan waits for the configured delay and then loads every definition file.
func (d *Directory) Scan(ctx context.Context) error {
	if d.delay > 0 {
		timer := time.NewTimer(d.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.process(d.walkLocked(d.root))
	return nil
}

// FilesChanged applies a batch of file system changes.
// Loaders of vanished files are released first, then the changed subtrees are
// walked again to create loaders for new files and to reload modified ones.
func (d *Directory) FilesChanged(batch ports.ChangeBatch) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for path, op := range batch.Changes {
		if op.Gone() {
			d.releaseBelowLocked(path)
		}
	}

	var created []FileLoader
	for _, dir := range batch.Dirs {
		created = append(created, d.walkLocked(dir)...)
	}
	d.process(created)
}

// Watch starts the watcher on the root directory and applies its batches until ctx is done.
func (d *Directory) Watch(ctx context.Context, watcher ports.Watcher) error {
	if err := watcher.Start(ctx, d.root); err != nil {
		return err
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		}
		if err := watcher.Stop(); err != nil {
			d.logger.Error(err)
		}
	}()

	for batch := range watcher.Batches() {
		if ctx.Err() != nil {
			break
		}
		d.FilesChanged(batch)
	}
	return nil
}

// Loaders returns the current loaders ordered by Compare.
func (d *Directory) Loaders() []FileLoader {
	d.mu.Lock()
	res := make([]FileLoader, 0, len(d.loaders))
	for _, l := range d.loaders {
		res = append(res, l)
	}
	d.mu.Unlock()

	slices.SortStableFunc(res, func(a, b FileLoader) int {
		if c := Compare(a, b); c != 0 {
			return c
		}
		return strings.Compare(a.Path(), b.Path())
	})
	return res
}

// Release releases every loader.
func (d *Directory) Release() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for path, l := range d.loaders {
		l.Release()
		delete(d.loaders, path)
		delete(d.hashes, path)
	}
}

// walkLocked reloads modified files below dir and returns loaders for new files.
// Must be called with d.mu held.
func (d *Directory) walkLocked(dir string) []FileLoader {
	var created []FileLoader
	for path := range d.walker.WalkFiles(dir) {
		hash, err := d.hasher.ComputeFileHash(path)
		if err != nil {
			d.logger.Error(err)
			continue
		}

		if l, ok := d.loaders[path]; ok {
			if d.hashes[path] == hash {
				continue
			}
			d.hashes[path] = hash
			if err := l.FileUpdated(); err != nil {
				d.logger.Error(zerr.With(err, "path", path))
				delete(d.loaders, path)
				delete(d.hashes, path)
			}
			continue
		}

		h := d.handlerFor(path)
		if h == nil {
			continue
		}
		l := h.NewLoader(path)
		d.loaders[path] = l
		d.hashes[path] = hash
		created = append(created, l)
	}
	return created
}

// process prepares new loaders and builds them in Compare order.
func (d *Directory) process(loaders []FileLoader) {
	prepared := loaders[:0]
	for _, l := range loaders {
		if err := l.Prepare(); err != nil {
			d.logger.Error(zerr.With(err, "path", l.Path()))
			delete(d.loaders, l.Path())
			delete(d.hashes, l.Path())
			continue
		}
		prepared = append(prepared, l)
	}

	slices.SortStableFunc(prepared, Compare)
	for _, l := range prepared {
		l.Build()
	}
	if len(prepared) > 0 {
		d.logger.Debug(fmt.Sprintf("loaded %d definition file(s) from %s", len(prepared), d.root))
	}
}

// releaseBelowLocked releases the loader of path and of every file below it.
func (d *Directory) releaseBelowLocked(path string) {
	prefix := path + string(filepath.Separator)
	for p, l := range d.loaders {
		if p != path && !strings.HasPrefix(p, prefix) {
			continue
		}
		l.Release()
		delete(d.loaders, p)
		delete(d.hashes, p)
	}
}

func (d *Directory) handlerFor(path string) Handler {
	for _, h := range d.handlers {
		if h.Handles(path) {
			return h
		}
	}
	return nil
}
