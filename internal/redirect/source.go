package redirect

import (
	"context"

	"github.com/manav03panchal/tabguard/internal/model"
)

// settingsRepo is the subset of storage.SettingsRepo the redirector uses.
type settingsRepo interface {
	Get() (*model.Settings, error)
	Install() (bool, error)
}

// RepoSource adapts a settings repository to SettingsSource and Installer.
type RepoSource struct {
	repo settingsRepo
}

// NewRepoSource wraps repo.
func NewRepoSource(repo settingsRepo) *RepoSource {
	return &RepoSource{repo: repo}
}

// Get returns the current settings unless ctx is already done.
func (s *RepoSource) Get(ctx context.Context) (*model.Settings, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.repo.Get()
}

// Install stores defaults unless ctx is already done.
func (s *RepoSource) Install(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return s.repo.Install()
}

// StaticSource serves a fixed settings record. Useful for dry runs.
type StaticSource struct {
	Settings *model.Settings
}

// Get returns a copy of the fixed record.
func (s StaticSource) Get(ctx context.Context) (*model.Settings, error) {
	return s.Settings.Clone(), nil
}
