package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "https://github.com/netbox-community/devicetype-library.git", cfg.Repo.URL)
	assert.Equal(t, "master", cfg.Repo.Branch)
	assert.Equal(t, "./repo", cfg.Repo.Path)
	assert.Equal(t, 30, cfg.NetBox.TimeoutSeconds)
	assert.Equal(t, 1000, cfg.NetBox.PageSize)
	assert.False(t, cfg.NetBox.IgnoreSSLErrors)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.False(t, cfg.Database.Enabled)
	assert.False(t, cfg.Storage.Enabled)
	assert.Equal(t, "reports", cfg.Storage.Prefix)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("NETBOX_URL", "https://netbox.example.com")
	t.Setenv("NETBOX_TOKEN", "secret")
	t.Setenv("NETBOX_PAGE_SIZE", "250")
	t.Setenv("REPO_BRANCH", "develop")
	t.Setenv("DATABASE_ENABLED", "true")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "https://netbox.example.com", cfg.NetBox.URL)
	assert.Equal(t, "secret", cfg.NetBox.Token)
	assert.Equal(t, 250, cfg.NetBox.PageSize)
	assert.Equal(t, "develop", cfg.Repo.Branch)
	assert.True(t, cfg.Database.Enabled)
}

func TestLoadConfig_LegacyVariables(t *testing.T) {
	t.Setenv("IGNORE_SSL_ERRORS", "True")
	t.Setenv("VENDORS", "apc,cisco")
	t.Setenv("SLUGS", "ap4431 ws-c3850-24t-l")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.True(t, cfg.NetBox.IgnoreSSLErrors)
	assert.Equal(t, "apc,cisco", cfg.Catalog.Vendors)
	assert.Equal(t, "ap4431 ws-c3850-24t-l", cfg.Catalog.Slugs)
}

func TestLoadConfig_PrefixedWinsOverLegacy(t *testing.T) {
	t.Setenv("VENDORS", "apc")
	t.Setenv("CATALOG_VENDORS", "juniper")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "juniper", cfg.Catalog.Vendors)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_LEVEL=debug\nSERVER_PORT=9090\n"), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("LOG_LEVEL")
		os.Unsetenv("SERVER_PORT")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "9090", cfg.Server.Port)
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	cfg.Repo.URL = "https://github.com/netbox-community/devicetype-library.git"

	err := cfg.Validate()
	require.ErrorIs(t, err, ErrMissingSetting)
	assert.Contains(t, err.Error(), "NETBOX_URL")
	assert.Contains(t, err.Error(), "NETBOX_TOKEN")

	cfg.NetBox.URL = "https://netbox.example.com"
	cfg.NetBox.Token = "secret"
	assert.NoError(t, cfg.Validate())
}
