package site

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newteatrade/saves/pkg/models"
)

func TestDefaults(t *testing.T) {
	cfg := Main()
	assert.True(t, cfg.KindEnabled(models.KindProducts))
	assert.True(t, cfg.KindEnabled(models.KindRecipes))
	assert.True(t, cfg.KindEnabled(models.KindJobs))

	corp := Corporate()
	assert.False(t, corp.KindEnabled(models.KindProducts))
	assert.True(t, corp.KindEnabled(models.KindJobs))
	assert.Equal(t, "/corporate/login", corp.LoginURL())
	assert.Empty(t, corp.CatalogURL)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: corporate
path_prefix: /corporate
login_path: /corporate/login
kinds: [jobs]
store:
  url: ws://store.internal:8000/rpc
  namespace: newteatrade
  database: corporate
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "corporate", cfg.Name)
	assert.Equal(t, []models.Kind{models.KindJobs}, cfg.EnabledKinds())
	assert.Equal(t, "ws://store.internal:8000/rpc", cfg.Store.URL)
	// untouched fields keep their defaults
	assert.Equal(t, "user", cfg.Auth.Access)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SAVES_STORE_URL", "ws://override:8000/rpc")
	t.Setenv("SAVES_KINDS", "jobs, recipes")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "ws://override:8000/rpc", cfg.Store.URL)
	assert.Equal(t, []models.Kind{models.KindJobs, models.KindRecipes}, cfg.EnabledKinds())
}

func TestLoadRejectsUnknownKind(t *testing.T) {
	t.Setenv("SAVES_KINDS", "products,wishlists")

	_, err := Load("")
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
