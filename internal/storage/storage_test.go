package storage

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tgerrors "github.com/manav03panchal/tabguard/internal/errors"
	"github.com/manav03panchal/tabguard/internal/model"
)

// Helper to create an in-memory database for testing
func setupTestDB(t *testing.T) *DB {
	db, err := Open(Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// =============================================================================
// DB Tests
// =============================================================================

func TestOpenClose(t *testing.T) {
	t.Run("in_memory", func(t *testing.T) {
		db, err := Open(Options{InMemory: true})
		require.NoError(t, err)
		assert.Equal(t, "", db.Path())
		assert.NotNil(t, db.Badger())
		assert.NoError(t, db.Close())
	})

	t.Run("empty_path_uses_in_memory", func(t *testing.T) {
		db, err := Open(Options{Path: ""})
		require.NoError(t, err)
		assert.Equal(t, "", db.Path())
		db.Close()
	})

	t.Run("on_disk", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "db")
		db, err := Open(Options{Path: dir})
		require.NoError(t, err)
		assert.Equal(t, dir, db.Path())
		require.NoError(t, db.SetBytes("k", []byte("v")))
		require.NoError(t, db.Close())

		db, err = Open(Options{Path: dir})
		require.NoError(t, err)
		defer db.Close()
		got, err := db.GetBytes("k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v"), got)
	})
}

func TestDefaultPath(t *testing.T) {
	path := DefaultPath()
	assert.Contains(t, path, "tabguard")
	assert.Contains(t, path, "db")
}

func TestCRUD(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetBytes("missing")
	assert.True(t, IsErrKeyNotFound(err))

	exists, err := db.Exists("k")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, db.SetBytes("k", []byte("v")))
	exists, err = db.Exists("k")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, db.Delete("k"))
	exists, err = db.Exists("k")
	require.NoError(t, err)
	assert.False(t, exists)
}

// =============================================================================
// SettingsRepo Tests
// =============================================================================

func TestSettingsRepoGetDefaultsWithoutPersisting(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSettingsRepo(db)

	s, err := repo.Get()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings(), s)

	exists, err := db.Exists(model.KeySettings)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSettingsRepoSetGet(t *testing.T) {
	repo := NewSettingsRepo(setupTestDB(t))

	s := model.DefaultSettings()
	s.Enabled = false
	s.BlockedDomains = []string{"news.com"}
	require.NoError(t, repo.Set(s))

	got, err := repo.Get()
	require.NoError(t, err)
	assert.False(t, got.Enabled)
	assert.Equal(t, []string{"news.com"}, got.BlockedDomains)
}

func TestSettingsRepoSetRejectsInvalid(t *testing.T) {
	repo := NewSettingsRepo(setupTestDB(t))

	s := model.DefaultSettings()
	s.WorkingHours.Weekdays = []int{8}
	err := repo.Set(s)
	require.Error(t, err)
	assert.Equal(t, tgerrors.CategoryValidation, tgerrors.Classify(err))
}

func TestSettingsRepoGetMergesPartialRecord(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSettingsRepo(db)

	require.NoError(t, db.SetBytes(model.KeySettings, []byte(`{"redirectUrl":"https://example.org"}`)))

	s, err := repo.Get()
	require.NoError(t, err)
	assert.Equal(t, "https://example.org", s.RedirectURL)
	assert.True(t, s.Enabled)
	assert.Equal(t, model.DefaultBlockedDomains, s.BlockedDomains)
}

func TestSettingsRepoGetCorrupted(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSettingsRepo(db)

	require.NoError(t, db.SetBytes(model.KeySettings, []byte("not json")))

	_, err := repo.Get()
	require.Error(t, err)
	assert.Equal(t, tgerrors.CategoryValidation, tgerrors.Classify(err))
}

func TestSettingsRepoGetAfterClose(t *testing.T) {
	db, err := Open(Options{InMemory: true})
	require.NoError(t, err)
	repo := NewSettingsRepo(db)
	require.NoError(t, db.Close())

	_, err = repo.Get()
	require.Error(t, err)
	assert.Equal(t, tgerrors.CategoryStorage, tgerrors.Classify(err))
}

func TestSettingsRepoInstall(t *testing.T) {
	repo := NewSettingsRepo(setupTestDB(t))

	installed, err := repo.Install()
	require.NoError(t, err)
	assert.True(t, installed)

	_, err = repo.Update(func(s *model.Settings) error {
		s.Enabled = false
		return nil
	})
	require.NoError(t, err)

	installed, err = repo.Install()
	require.NoError(t, err)
	assert.False(t, installed)

	s, err := repo.Get()
	require.NoError(t, err)
	assert.False(t, s.Enabled, "install must not overwrite existing settings")
}

func TestSettingsRepoReset(t *testing.T) {
	repo := NewSettingsRepo(setupTestDB(t))

	_, err := repo.Update(func(s *model.Settings) error {
		s.BlockedDomains = nil
		return nil
	})
	require.NoError(t, err)

	s, err := repo.Reset()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultBlockedDomains, s.BlockedDomains)

	got, err := repo.Get()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultBlockedDomains, got.BlockedDomains)
}

func TestSettingsRepoUpdate(t *testing.T) {
	repo := NewSettingsRepo(setupTestDB(t))

	t.Run("applies_and_persists", func(t *testing.T) {
		s, err := repo.Update(func(s *model.Settings) error {
			return s.SetTimes("08:00", "12:00")
		})
		require.NoError(t, err)
		assert.Equal(t, "08:00", s.WorkingHours.Start)

		got, err := repo.Get()
		require.NoError(t, err)
		assert.Equal(t, "12:00", got.WorkingHours.End)
	})

	t.Run("fn_error_writes_nothing", func(t *testing.T) {
		boom := fmt.Errorf("boom")
		_, err := repo.Update(func(s *model.Settings) error {
			s.Enabled = false
			return boom
		})
		assert.ErrorIs(t, err, boom)

		got, err := repo.Get()
		require.NoError(t, err)
		assert.True(t, got.Enabled)
	})

	t.Run("invalid_result_writes_nothing", func(t *testing.T) {
		_, err := repo.Update(func(s *model.Settings) error {
			s.FirstDayOfWeek = 5
			return nil
		})
		assert.True(t, tgerrors.IsValidationError(err))

		got, err := repo.Get()
		require.NoError(t, err)
		assert.Equal(t, 1, got.FirstDayOfWeek)
	})
}

func TestSettingsRepoBlockedDomains(t *testing.T) {
	repo := NewSettingsRepo(setupTestDB(t))

	added, err := repo.AddBlockedDomain("news.com")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = repo.AddBlockedDomain("news.com")
	require.NoError(t, err)
	assert.False(t, added)

	s, err := repo.Get()
	require.NoError(t, err)
	assert.Contains(t, s.BlockedDomains, "news.com")

	removed, err := repo.RemoveBlockedDomain("news.com")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.RemoveBlockedDomain("news.com")
	require.NoError(t, err)
	assert.False(t, removed)
}
