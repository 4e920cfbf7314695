package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
env: "dev"
storage_path: "employees.db"
http_server:
  address: "localhost:9000"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "localhost:9000", cfg.Addr)
	assert.Equal(t, "admin", cfg.Auth.Username)
	assert.Equal(t, "admin123", cfg.Auth.Password)
	assert.Equal(t, time.Second, cfg.LoginDelay)
	assert.Equal(t, int64(2*1024*1024), cfg.MaxImageBytes)
}

func TestLoad_ReadsOverrides(t *testing.T) {
	path := writeConfig(t, `
env: "prod"
storage_path: "/tmp/hr.db"
storage_key: "staff"
http_server:
  address: ":8080"
auth:
  username: "root"
  password: "s3cret"
  login_delay: "250ms"
uploads:
  max_image_bytes: 1024
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "staff", cfg.StorageKey)
	assert.Equal(t, "root", cfg.Auth.Username)
	assert.Equal(t, 250*time.Millisecond, cfg.LoginDelay)
	assert.Equal(t, int64(1024), cfg.MaxImageBytes)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
