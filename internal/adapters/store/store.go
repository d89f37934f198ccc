// Package store persists domain items as one JSON file per item.
package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/interactive-instruments/etf-spi/internal/core/domain"
	"github.com/interactive-instruments/etf-spi/internal/core/ports"
	"go.trai.ch/zerr"
)

const fileExt = ".json"

var _ ports.Store[*domain.TestTaskResult] = (*Store[*domain.TestTaskResult])(nil)

// Store implements ports.Store for one item kind. Items live in
// <dir>/<id>.json and are read lazily; read items are cached.
type Store[T domain.Item] struct {
	dir string

	mu    sync.RWMutex
	cache map[domain.EID]T
}

// New creates a store below dir. The directory is created on the first
// write.
func New[T domain.Item](dir string) *Store[T] {
	return &Store[T]{
		dir:   filepath.Clean(dir),
		cache: make(map[domain.EID]T),
	}
}

// Dir returns the directory the items are stored in.
func (s *Store[T]) Dir() string { return s.dir }

// Add implements ports.Store.
func (s *Store[T]) Add(item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(item)
}

// Update implements ports.Store.
func (s *Store[T]) Update(item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.existsLocked(item.ID()) {
		return zerr.With(zerr.Wrap(domain.ErrNotFound, "failed to update stored object"), "id", item.ID().String())
	}
	return s.writeLocked(item)
}

// Delete implements ports.Store.
func (s *Store[T]) Delete(id domain.EID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.cache, id)
	if err := os.Remove(s.filename(id)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreDeleteFailed.Error()), "id", id.String())
	}
	return nil
}

// GetByID implements ports.Store.
func (s *Store[T]) GetByID(id domain.EID) (T, error) {
	s.mu.RLock()
	item, ok := s.cache[id]
	s.mu.RUnlock()
	if ok {
		return item, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked(id)
}

// GetByIDs implements ports.Store. It fails on the first missing item.
func (s *Store[T]) GetByIDs(ids []domain.EID) ([]T, error) {
	res := make([]T, 0, len(ids))
	for _, id := range ids {
		item, err := s.GetByID(id)
		if err != nil {
			return nil, err
		}
		res = append(res, item)
	}
	return res, nil
}

// Exists implements ports.Store.
func (s *Store[T]) Exists(id domain.EID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.existsLocked(id)
}

// IDs returns the ids of all stored items in order.
func (s *Store[T]) IDs() ([]domain.EID, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "dir", s.dir)
	}

	ids := make([]domain.EID, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, fileExt) {
			continue
		}
		ids = append(ids, domain.NewEID(strings.TrimSuffix(name, fileExt)))
	}
	slices.SortFunc(ids, domain.EID.Compare)
	return ids, nil
}

func (s *Store[T]) existsLocked(id domain.EID) bool {
	if _, ok := s.cache[id]; ok {
		return true
	}
	_, err := os.Stat(s.filename(id))
	return err == nil
}

func (s *Store[T]) readLocked(id domain.EID) (T, error) {
	var zero T
	if item, ok := s.cache[id]; ok {
		return item, nil
	}

	data, err := os.ReadFile(s.filename(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return zero, zerr.With(zerr.Wrap(domain.ErrNotFound, "stored object not found"), "id", id.String())
		}
		return zero, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "id", id.String())
	}

	var item T
	if err := json.Unmarshal(data, &item); err != nil {
		return zero, zerr.With(zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error()), "id", id.String())
	}
	s.cache[id] = item
	return item, nil
}

// writeLocked writes item through a temporary file so readers never see a
// partial file.
func (s *Store[T]) writeLocked(item T) error {
	id := item.ID()
	data, err := json.MarshalIndent(item, "", "  ")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error()), "id", id.String())
	}
	if err := os.MkdirAll(s.dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreCreateFailed.Error()), "dir", s.dir)
	}

	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "id", id.String())
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // gone after a successful rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "id", id.String())
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "id", id.String())
	}
	if err := os.Chmod(tmp.Name(), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "id", id.String())
	}
	if err := os.Rename(tmp.Name(), s.filename(id)); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "id", id.String())
	}

	s.cache[id] = item
	return nil
}

func (s *Store[T]) filename(id domain.EID) string {
	return filepath.Join(s.dir, id.String()+fileExt)
}
