package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Пустой каталог - конфиг-файла нет
	cfg, err := Load(t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, DefaultServerURL, cfg.ServerURL)
	assert.Equal(t, DefaultDBPath, cfg.DBPath)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte("server_url: https://hospital.example.com/api\ndb_path: /tmp/hosp.db\nlog_level: debug\ntimeout: 45s\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hospctl.yml"), content, 0600))

	cfg, err := Load(dir)

	require.NoError(t, err)
	assert.Equal(t, "https://hospital.example.com/api", cfg.ServerURL)
	assert.Equal(t, "/tmp/hosp.db", cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("HOSPCTL_SERVER_URL", "https://env.example.com/api")
	t.Setenv("HOSPCTL_LOG_LEVEL", "warn")

	cfg, err := Load(t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com/api", cfg.ServerURL)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, DefaultDBPath, cfg.DBPath, "untouched keys keep defaults")
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hospctl.yml"), []byte("server_url: [unclosed"), 0600))

	cfg, err := Load(dir)

	assert.Nil(t, cfg)
	assert.Error(t, err)
}
