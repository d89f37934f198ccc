package fs_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/interactive-instruments/etf-spi/internal/adapters/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
}

func TestWalker_WalkFiles(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		".git/config":        "x",
		"suites/.Tag-1.swp":  "x",
		"suites/b/Tag-2.yml": "x",
		"suites/Tag-1.yml":   "x",
		"objects.yml":        "x",
	})

	var got []string
	for path := range fs.NewWalker().WalkFiles(root) {
		rel, err := filepath.Rel(root, path)
		require.NoError(t, err)
		got = append(got, filepath.ToSlash(rel))
	}

	assert.Equal(t, []string{"objects.yml", "suites/Tag-1.yml", "suites/b/Tag-2.yml"}, got)
}

func TestWalker_FileRootAndMissingRoot(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"a.yml": "x"})
	w := fs.NewWalker()

	file := filepath.Join(root, "a.yml")
	assert.Equal(t, []string{file}, slices.Collect(w.WalkFiles(file)))
	assert.Empty(t, slices.Collect(w.WalkFiles(filepath.Join(root, "missing"))))
}

func TestWalker_StopsEarly(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"a": "x", "b": "x", "c": "x"})

	var got []string
	for path := range fs.NewWalker().WalkFiles(root) {
		got = append(got, filepath.Base(path))
		break
	}
	assert.Equal(t, []string{"a"}, got)
}

func TestHasher_ComputeFileHash(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"a.yml": "id: EID1\n"})
	h := fs.NewHasher(fs.NewWalker())

	sum, err := h.ComputeFileHash(filepath.Join(root, "a.yml"))
	require.NoError(t, err)
	assert.Equal(t, xxhash.Sum64String("id: EID1\n"), sum)

	_, err = h.ComputeFileHash(filepath.Join(root, "missing.yml"))
	require.Error(t, err)
}

func TestHasher_ComputeDirHash(t *testing.T) {
	h := fs.NewHasher(fs.NewWalker())
	files := map[string]string{"data/a.gml": "<a/>", "data/b.gml": "<b/>"}

	first, second := t.TempDir(), t.TempDir()
	writeFiles(t, first, files)
	writeFiles(t, second, files)

	h1, err := h.ComputeDirHash(first)
	require.NoError(t, err)
	assert.Len(t, h1, 16)
	h2, err := h.ComputeDirHash(second)
	require.NoError(t, err)
	assert.Equal(t, h1, h2, "the digest does not depend on the location")

	writeFiles(t, second, map[string]string{"data/b.gml": "<c/>"})
	h3, err := h.ComputeDirHash(second)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)

	require.NoError(t, os.Rename(filepath.Join(first, "data", "b.gml"), filepath.Join(first, "data", "c.gml")))
	h4, err := h.ComputeDirHash(first)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h4, "file names are part of the digest")

	_, err = h.ComputeDirHash(filepath.Join(first, "data", "a.gml"))
	require.Error(t, err)
}
