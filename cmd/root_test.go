package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FlagOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("VENDORS", "Cisco")
	t.Setenv("REPO_BRANCH", "main")

	flags := syncCmd.Flags()
	require.NoError(t, syncCmd.ParseFlags([]string{"--vendors", "Juniper,Arista", "--slugs", "a-1,b-2", "--verbose"}))
	t.Cleanup(func() {
		vendorsFlag, slugsFlag, verboseFlag = nil, nil, false
		for _, name := range []string{"vendors", "slugs", "verbose"} {
			flags.Lookup(name).Changed = false
		}
	})

	cfg, err := loadConfig(syncCmd)
	require.NoError(t, err)

	assert.Equal(t, "Juniper,Arista", cfg.Catalog.Vendors)
	assert.Equal(t, []string{"a-1", "b-2"}, cfg.Catalog.Filter().Slugs)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "main", cfg.Repo.Branch)
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := loadConfig(checkCmd)
	require.NoError(t, err)
	assert.Equal(t, "master", cfg.Repo.Branch)
	assert.Equal(t, "info", cfg.Log.Level)
}
