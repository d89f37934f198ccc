package watcher

import (
	"context"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/interactive-instruments/etf-spi/internal/core/domain"
	"github.com/interactive-instruments/etf-spi/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

const batchBuffer = 16

// Watcher implements ports.Watcher using fsnotify. Hidden files and
// directories are ignored.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	logger    ports.Logger
	window    time.Duration

	root      string
	debouncer *Debouncer
	fired     chan map[string]ports.WatchOp
	batches   chan ports.ChangeBatch
	done      chan struct{}
}

// NewWatcher creates a file system watcher. A window below one uses
// domain.DefaultDebounceWindow.
func NewWatcher(logger ports.Logger, window time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create file system watcher")
	}
	if window <= 0 {
		window = domain.DefaultDebounceWindow
	}
	return &Watcher{
		fsWatcher: fw,
		logger:    logger,
		window:    window,
		fired:     make(chan map[string]ports.WatchOp),
		batches:   make(chan ports.ChangeBatch, batchBuffer),
		done:      make(chan struct{}),
	}, nil
}

// Start watches root and all of its non-hidden subdirectories.
func (w *Watcher) Start(ctx context.Context, root string) error {
	w.root = filepath.Clean(root)
	for dir := range watchableDirs(w.root) {
		if err := w.fsWatcher.Add(dir); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to watch directory"), "dir", dir)
		}
	}
	w.debouncer = NewDebouncer(w.window, func(changes map[string]ports.WatchOp) {
		select {
		case w.fired <- changes:
		case <-w.done:
		}
	})

	go w.processEvents(ctx)
	return nil
}

// Stop stops the watcher. Batches ends once pending events are dropped.
func (w *Watcher) Stop() error {
	return w.fsWatcher.Close()
}

// Batches returns an iterator over debounced change batches.
func (w *Watcher) Batches() iter.Seq[ports.ChangeBatch] {
	return func(yield func(ports.ChangeBatch) bool) {
		for b := range w.batches {
			if !yield(b) {
				return
			}
		}
	}
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.batches)
	defer close(w.done)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Error(zerr.Wrap(err, "file system watcher error"))
		case changes := <-w.fired:
			select {
			case w.batches <- w.batch(changes):
			case <-ctx.Done():
				return
			}
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if isHidden(w.root, event.Name) {
		return
	}
	op, ok := convertOp(event.Op)
	if !ok {
		return
	}
	w.debouncer.Add(ports.WatchEvent{Path: event.Name, Operation: op})

	if op == ports.OpCreate {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			for dir := range watchableDirs(event.Name) {
				if err := w.fsWatcher.Add(dir); err != nil {
					w.logger.Error(zerr.With(zerr.Wrap(err, "failed to watch directory"), "dir", dir))
				}
			}
		}
	}
}

// batch groups changes by the entry directly below the root they belong to.
func (w *Watcher) batch(changes map[string]ports.WatchOp) ports.ChangeBatch {
	var dirs []string
	for path := range changes {
		rel, err := filepath.Rel(w.root, path)
		if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
			continue
		}
		top := filepath.Join(w.root, strings.SplitN(filepath.ToSlash(rel), "/", 2)[0])
		if !slices.Contains(dirs, top) {
			dirs = append(dirs, top)
		}
	}
	slices.Sort(dirs)
	return ports.ChangeBatch{Changes: changes, Dirs: dirs}
}

func convertOp(op fsnotify.Op) (ports.WatchOp, bool) {
	switch {
	case op.Has(fsnotify.Write):
		return ports.OpWrite, true
	case op.Has(fsnotify.Create):
		return ports.OpCreate, true
	case op.Has(fsnotify.Remove):
		return ports.OpRemove, true
	case op.Has(fsnotify.Rename):
		return ports.OpRename, true
	default:
		return 0, false
	}
}

// isHidden reports whether path or one of its parents below root starts
// with a dot.
func isHidden(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if len(part) > 1 && strings.HasPrefix(part, ".") && part != ".." {
			return true
		}
	}
	return false
}

// watchableDirs yields root and its non-hidden subdirectories.
func watchableDirs(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // unreadable directories are not watched
			}
			if !d.IsDir() {
				return nil
			}
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}
