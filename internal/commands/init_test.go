package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finchat-dev/finchat/internal/config"
)

func TestInitCreatesStructure(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, runInit(dir, "file"))

	info, err := os.Stat(filepath.Join(dir, "data", "users"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	cfg, err := config.Load(filepath.Join(dir, "finchat.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "file", cfg.Store.Backend)
	assert.Equal(t, filepath.Join(dir, "data"), cfg.DataDir)

	gitignore, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Contains(t, string(gitignore), "data/")
}

func TestInitRejectsBadBackend(t *testing.T) {
	err := runInit(t.TempDir(), "postgres")
	assert.Error(t, err)
}

func TestLoadEnvRoundTrip(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, runInit(dir, "memory"))

	e, err := loadEnv(filepath.Join(dir, "finchat.yaml"), false)
	require.NoError(t, err)
	defer e.close()

	assert.NotNil(t, e.store)
	assert.NotNil(t, e.runtime())
}

func TestLoadEnvMissingConfig(t *testing.T) {
	_, err := loadEnv(filepath.Join(t.TempDir(), "nope.yaml"), false)
	assert.Error(t, err)
}
