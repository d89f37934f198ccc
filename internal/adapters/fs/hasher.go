package fs

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/interactive-instruments/etf-spi/internal/core/domain"
	"github.com/interactive-instruments/etf-spi/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes XXHash digests of files and directory trees.
type Hasher struct {
	walker *Walker
}

// NewHasher creates a new Hasher.
func NewHasher(walker *Walker) *Hasher {
	return &Hasher{walker: walker}
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the walker
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrFileOpenFailed.Error()), "path", path)
	}
	defer f.Close() //nolint:errcheck // read-only

	d := xxhash.New()
	if _, err := io.Copy(d, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrFileHashFailed.Error()), "path", path)
	}
	return d.Sum64(), nil
}

// ComputeDirHash computes one digest over the relative paths and contents of
// all files below root. The result is a 16 digit hex string.
func (h *Hasher) ComputeDirHash(root string) (string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to stat directory"), "path", root)
	}
	if !info.IsDir() {
		return "", zerr.With(zerr.New("not a directory"), "path", root)
	}

	d := xxhash.New()
	for path := range h.walker.WalkFiles(root) {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return "", zerr.With(zerr.Wrap(err, "failed to relativize path"), "path", path)
		}
		_, _ = d.WriteString(filepath.ToSlash(rel))
		_, _ = d.Write([]byte{0})

		sum, err := h.ComputeFileHash(path)
		if err != nil {
			return "", err
		}
		if err := binary.Write(d, binary.LittleEndian, sum); err != nil {
			return "", zerr.Wrap(err, "failed to write hash to digest")
		}
	}
	return fmt.Sprintf("%016x", d.Sum64()), nil
}
