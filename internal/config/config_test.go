package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, "unix:///var/run/docker.sock", cfg.EngineHost)
	assert.Equal(t, "data/panel.db", cfg.Database)
	assert.Empty(t, cfg.TokenSecret)
	assert.False(t, cfg.Dev)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panel.yaml")
	content := `
listen: ":9000"
engine_host: "tcp://10.0.0.5:2375"
database: "/var/lib/panel/users.db"
token_secret: "file-secret"
dev: true
log:
  level: debug
  json: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Listen)
	assert.Equal(t, "tcp://10.0.0.5:2375", cfg.EngineHost)
	assert.Equal(t, "/var/lib/panel/users.db", cfg.Database)
	assert.Equal(t, "file-secret", cfg.TokenSecret)
	assert.True(t, cfg.Dev)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panel.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`listen: ":9000"`), 0o600))

	t.Setenv(EnvListen, ":7000")
	t.Setenv(EnvTokenSecret, "env-secret")
	t.Setenv(EnvDev, "1")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.Listen)
	assert.Equal(t, "env-secret", cfg.TokenSecret)
	assert.True(t, cfg.Dev)
}

func TestLoad_UnknownKeyRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panel.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`listne: ":9000"`), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_EmptyListenRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panel.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`listen: ""`), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
