package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/interactive-instruments/etf-spi/internal/adapters/watcher"
	"github.com/interactive-instruments/etf-spi/internal/core/ports"
	"github.com/interactive-instruments/etf-spi/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func startWatcher(t *testing.T, root string) (*watcher.Watcher, <-chan ports.ChangeBatch) {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Error(gomock.Any()).AnyTimes()

	w, err := watcher.NewWatcher(log, 20*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, w.Start(ctx, root))
	t.Cleanup(func() { _ = w.Stop() })

	out := make(chan ports.ChangeBatch, 16)
	go func() {
		defer close(out)
		for b := range w.Batches() {
			out <- b
		}
	}()
	return w, out
}

func nextBatch(t *testing.T, batches <-chan ports.ChangeBatch) ports.ChangeBatch {
	t.Helper()
	select {
	case b, ok := <-batches:
		require.True(t, ok, "watcher stopped")
		return b
	case <-time.After(5 * time.Second):
		t.Fatal("no change batch")
		return ports.ChangeBatch{}
	}
}

func TestWatcher_ReportsTopLevelDirs(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "suites", "inspire"), 0o755))

	_, batches := startWatcher(t, root)

	file := filepath.Join(root, "suites", "inspire", "Tag-1.yaml")
	require.NoError(t, os.WriteFile(file, []byte("id: EID1\n"), 0o644))

	b := nextBatch(t, batches)
	assert.Contains(t, b.Changes, file)
	assert.Equal(t, []string{filepath.Join(root, "suites")}, b.Dirs)
}

func TestWatcher_IgnoresHiddenEntries(t *testing.T) {
	root := t.TempDir()
	_, batches := startWatcher(t, root)

	require.NoError(t, os.WriteFile(filepath.Join(root, ".swap"), []byte("x"), 0o644))
	visible := filepath.Join(root, "objects.yaml")
	require.NoError(t, os.WriteFile(visible, []byte("x"), 0o644))

	b := nextBatch(t, batches)
	assert.NotContains(t, b.Changes, filepath.Join(root, ".swap"))
	assert.Contains(t, b.Changes, visible)
	assert.Equal(t, []string{visible}, b.Dirs)
}

func TestWatcher_WatchesNewDirectories(t *testing.T) {
	root := t.TempDir()
	_, batches := startWatcher(t, root)

	dir := filepath.Join(root, "new")
	require.NoError(t, os.Mkdir(dir, 0o755))
	b := nextBatch(t, batches)
	assert.Equal(t, ports.OpCreate, b.Changes[dir])

	file := filepath.Join(dir, "Tag-2.yaml")
	require.NoError(t, os.WriteFile(file, []byte("id: EID2\n"), 0o644))
	b = nextBatch(t, batches)
	assert.Contains(t, b.Changes, file)
	assert.Equal(t, []string{dir}, b.Dirs)
}

func TestWatcher_StopEndsBatches(t *testing.T) {
	w, batches := startWatcher(t, t.TempDir())
	require.NoError(t, w.Stop())

	select {
	case _, ok := <-batches:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("batches did not end")
	}
}
