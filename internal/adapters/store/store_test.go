package store_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/interactive-instruments/etf-spi/internal/adapters/store"
	"github.com/interactive-instruments/etf-spi/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func result(id string) *domain.TestTaskResult {
	return &domain.TestTaskResult{
		EID:          domain.NewEID(id),
		TaskID:       domain.NewEID("task"),
		RunID:        domain.NewEID("run"),
		SuiteID:      domain.NewEID("suite"),
		TestObjectID: domain.NewEID("object"),
		Root: &domain.ResultNode{
			EID:          domain.NewEID(id + "-root"),
			ResultedFrom: domain.NewEID("suite"),
			Level:        domain.LevelTask,
			Status:       domain.StatusPassed,
			StartedAt:    time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
			Duration:     2 * time.Second,
			Children: []*domain.ResultNode{{
				EID:          domain.NewEID(id + "-module"),
				ResultedFrom: domain.NewEID("module"),
				Level:        domain.LevelModule,
				Status:       domain.StatusPassed,
				StartedAt:    time.Date(2024, 1, 1, 12, 0, 1, 0, time.UTC),
				Messages:     []domain.Message{{TemplateID: "TR.passed", Arguments: map[string]string{"n": "1"}}},
			}},
		},
	}
}

func TestStore_PersistsAcrossInstances(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results")
	s := store.New[*domain.TestTaskResult](dir)

	r := result("EID1")
	require.NoError(t, s.Add(r))
	assert.FileExists(t, filepath.Join(dir, "EID1.json"))

	got, err := s.GetByID(r.EID)
	require.NoError(t, err)
	assert.Same(t, r, got, "written items are cached")

	fresh := store.New[*domain.TestTaskResult](dir)
	assert.True(t, fresh.Exists(r.EID))
	loaded, err := fresh.GetByID(r.EID)
	require.NoError(t, err)
	assert.Equal(t, r, loaded)

	again, err := fresh.GetByID(r.EID)
	require.NoError(t, err)
	assert.Same(t, loaded, again)
}

func TestStore_Update(t *testing.T) {
	s := store.New[*domain.TestTaskResult](t.TempDir())

	r := result("EID1")
	require.ErrorIs(t, s.Update(r), domain.ErrNotFound)

	require.NoError(t, s.Add(r))
	updated := result("EID1")
	updated.Errors = []string{"timeout"}
	require.NoError(t, s.Update(updated))

	got, err := store.New[*domain.TestTaskResult](s.Dir()).GetByID(r.EID)
	require.NoError(t, err)
	assert.Equal(t, []string{"timeout"}, got.Errors)
}

func TestStore_Delete(t *testing.T) {
	s := store.New[*domain.TestTaskResult](t.TempDir())
	r := result("EID1")
	require.NoError(t, s.Add(r))

	require.NoError(t, s.Delete(r.EID))
	assert.False(t, s.Exists(r.EID))
	_, err := s.GetByID(r.EID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.Delete(r.EID), "deleting a missing item is not an error")
}

func TestStore_GetByIDsAndIDs(t *testing.T) {
	s := store.New[*domain.TestTaskResult](t.TempDir())

	ids, err := s.IDs()
	require.NoError(t, err)
	assert.Empty(t, ids)

	for _, id := range []string{"EID2", "EID1", "EID3"} {
		require.NoError(t, s.Add(result(id)))
	}
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "notes.txt"), []byte("x"), 0o600))

	ids, err = s.IDs()
	require.NoError(t, err)
	assert.Equal(t, domain.NewEIDs([]string{"EID1", "EID2", "EID3"}), ids)

	items, err := s.GetByIDs(domain.NewEIDs([]string{"EID3", "EID1"}))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, domain.NewEID("EID3"), items[0].EID)

	_, err = s.GetByIDs(domain.NewEIDs([]string{"EID1", "EID9"}))
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "EID1.json"), []byte("{"), 0o600))

	_, err := store.New[*domain.TestTaskResult](dir).GetByID(domain.NewEID("EID1"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}
