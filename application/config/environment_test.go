package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ReadsConfigFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "env")
	err := os.WriteFile(envFile, []byte("BEACON_SITE=from-file\nBEACON_PROJECT=99\n"), 0o600)
	require.NoError(t, err)
	t.Setenv("BEACON_SITE", "")
	os.Unsetenv("BEACON_SITE")
	t.Setenv("BEACON_PROJECT", "")
	os.Unsetenv("BEACON_PROJECT")

	c := New()
	c.SetConfigFile(envFile)
	c.Load()

	assert.Equal(t, "from-file", c.Site())
	assert.Equal(t, "99", c.Project())
}

func TestLoad_EnvironmentWins(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "env")
	err := os.WriteFile(envFile, []byte("BEACON_SITE=from-file\n"), 0o600)
	require.NoError(t, err)
	t.Setenv("BEACON_SITE", "from-env")

	c := New()
	c.SetConfigFile(envFile)
	c.Load()

	assert.Equal(t, "from-env", c.Site())
}

func TestLoad_ReadsHomeEnvFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	err := os.WriteFile(filepath.Join(home, ".beacon.env"), []byte("BEACON_SITE=from-home\n"), 0o600)
	require.NoError(t, err)
	t.Setenv("BEACON_SITE", "")
	os.Unsetenv("BEACON_SITE")

	c := New()
	c.Load()

	assert.Equal(t, "from-home", c.Site())
}

func TestLoad_MissingFileIsIgnored(t *testing.T) {
	c := New()
	c.SetConfigFile(filepath.Join(t.TempDir(), "does-not-exist"))

	assert.NotPanics(t, func() { c.Load() })
}
