// Package fs provides file system adapters for walking and hashing
// definition files.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
	"strings"

	"github.com/interactive-instruments/etf-spi/internal/core/ports"
)

var _ ports.Walker = (*Walker)(nil)

// Walker lists regular files.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields the regular files below root in lexical order. Hidden
// files and directories are skipped, as are entries that cannot be read.
// If root is a file, it is yielded itself.
func (w *Walker) WalkFiles(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if d != nil && d.IsDir() && path != root {
					return filepath.SkipDir
				}
				return nil
			}
			if path != root && isHidden(d.Name()) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
