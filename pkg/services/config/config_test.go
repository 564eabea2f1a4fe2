package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("")

	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 2*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 8, cfg.Store.MaxOpenConns)
	assert.True(t, cfg.Export.CompressPDF)
	assert.Empty(t, cfg.Auth.AdminToken)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeFile(t, "reports.yaml", `server:
  port: "9090"
  shutdown_timeout: 3s
store:
  fixture: "testdata/shop.json"
cache:
  ttl: 30s
export:
  compress_pdf: false
`)
	t.Setenv("REPORTS_AUTH_ADMIN_TOKEN", "s3cret")
	t.Setenv("REPORTS_SERVER_HOST", "127.0.0.1")

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr())
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "s3cret", cfg.Auth.AdminToken)
	assert.Equal(t, "testdata/shop.json", cfg.Store.Fixture)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.False(t, cfg.Export.CompressPDF)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeDotEnv(t, dir, "REPORTS_STORE_DSN=postgres://localhost/shop\nREPORTS_SERVER_PORT=7070\n")
	// registers cleanup for the variables godotenv is about to set
	t.Setenv("REPORTS_STORE_DSN", "")
	t.Setenv("REPORTS_SERVER_PORT", "9999")
	require.NoError(t, os.Unsetenv("REPORTS_STORE_DSN"))

	cfg, err := LoadConfig("")

	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/shop", cfg.Store.DSN)
	assert.Equal(t, "9999", cfg.Server.Port, "existing variables win over .env")
}

func writeDotEnv(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeFile(t, "bad.yaml", "server: [port: oops")

	_, err := LoadConfig(path)

	assert.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))

	assert.Error(t, err)
}
