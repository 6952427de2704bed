package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 0.1, cfg.FeeRate)
	assert.Equal(t, "https://junglebus.gorillapool.io", cfg.JungleBus)
	assert.Equal(t, "0.0.0.0:8080", cfg.Listen)
	assert.Equal(t, 1000, cfg.TxCacheSize)
}

func TestLoadEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("FEE_RATE=0.5\nLISTEN=127.0.0.1:9000\n"), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("FEE_RATE")
		os.Unsetenv("LISTEN")
	})

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, 0.5, cfg.FeeRate)
	assert.Equal(t, "127.0.0.1:9000", cfg.Listen)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("JUNGLEBUS=http://file\n"), 0o644))
	t.Setenv("JUNGLEBUS", "http://env")

	cfg, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, "http://env", cfg.JungleBus)
}
