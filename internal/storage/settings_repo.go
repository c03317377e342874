package storage

import (
	"encoding/json"
	"errors"

	badger "github.com/dgraph-io/badger/v4"

	tgerrors "github.com/manav03panchal/tabguard/internal/errors"
	"github.com/manav03panchal/tabguard/internal/model"
)

// SettingsRepo provides operations for the Settings singleton.
type SettingsRepo struct {
	db *DB
}

// NewSettingsRepo creates a new settings repository.
func NewSettingsRepo(db *DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

// Get returns the stored settings merged over the defaults. When nothing is
// stored yet the defaults are returned without being persisted.
func (r *SettingsRepo) Get() (*model.Settings, error) {
	data, err := r.db.GetBytes(model.KeySettings)
	if err != nil && !IsErrKeyNotFound(err) {
		return nil, tgerrors.NewStorageError("get", err)
	}
	return model.MergeSettings(data)
}

// Set validates and stores the settings.
func (r *SettingsRepo) Set(s *model.Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	s.SetKey(model.KeySettings)
	if err := r.db.Set(s); err != nil {
		return tgerrors.NewStorageError("set", err)
	}
	return nil
}

// Install stores the defaults unless a record already exists. It reports
// whether the defaults were written.
func (r *SettingsRepo) Install() (bool, error) {
	exists, err := r.db.Exists(model.KeySettings)
	if err != nil {
		return false, tgerrors.NewStorageError("install", err)
	}
	if exists {
		return false, nil
	}
	if err := r.Set(model.DefaultSettings()); err != nil {
		return false, err
	}
	return true, nil
}

// Reset overwrites the stored record with the defaults.
func (r *SettingsRepo) Reset() (*model.Settings, error) {
	s := model.DefaultSettings()
	if err := r.Set(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Update applies fn to the current settings and stores the result in a
// single transaction. Nothing is written if fn returns an error.
func (r *SettingsRepo) Update(fn func(s *model.Settings) error) (*model.Settings, error) {
	var updated *model.Settings
	var fnErr error

	err := r.db.Badger().Update(func(txn *badger.Txn) error {
		var data []byte
		item, err := txn.Get([]byte(model.KeySettings))
		switch {
		case err == nil:
			data, err = item.ValueCopy(nil)
			if err != nil {
				return tgerrors.NewStorageError("get", err)
			}
		case !errors.Is(err, badger.ErrKeyNotFound):
			return tgerrors.NewStorageError("get", err)
		}

		s, err := model.MergeSettings(data)
		if err != nil {
			return err
		}
		if fnErr = fn(s); fnErr != nil {
			return fnErr
		}
		if err := s.Validate(); err != nil {
			return err
		}

		out, err := json.Marshal(s)
		if err != nil {
			return tgerrors.NewInternalError("settings.update", "cannot encode settings", err)
		}
		if err := txn.Set([]byte(model.KeySettings), out); err != nil {
			return tgerrors.NewStorageError("set", err)
		}
		updated = s
		return nil
	})
	if err != nil {
		if fnErr != nil || isTyped(err) {
			return nil, err
		}
		return nil, tgerrors.NewStorageError("update", err)
	}
	return updated, nil
}

// AddBlockedDomain appends a normalized domain. Adding a domain that is
// already present is a no-op and reports false.
func (r *SettingsRepo) AddBlockedDomain(domain string) (bool, error) {
	added := false
	_, err := r.Update(func(s *model.Settings) error {
		added = s.AddDomain(domain)
		return nil
	})
	return added, err
}

// RemoveBlockedDomain drops a domain. Removing an absent domain reports false.
func (r *SettingsRepo) RemoveBlockedDomain(domain string) (bool, error) {
	removed := false
	_, err := r.Update(func(s *model.Settings) error {
		removed = s.RemoveDomain(domain)
		return nil
	})
	return removed, err
}

// isTyped reports whether err already carries a tabguard category.
func isTyped(err error) bool {
	return tgerrors.Classify(err) != tgerrors.CategoryUnknown
}
