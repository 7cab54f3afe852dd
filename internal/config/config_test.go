// ABOUTME: Tests for configuration loading and validation
// ABOUTME: Covers env expansion, defaults, and password file resolution

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  http_addr: ":8080"
database:
  driver: sqlite
  path: /tmp/askhive.db
logging:
  level: debug
  format: json
ratelimit:
  enabled: true
  rps: 50
  burst: 100
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.HTTPAddr)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/tmp/askhive.db", cfg.Database.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 50.0, cfg.RateLimit.RPS)
	assert.Equal(t, 100, cfg.RateLimit.Burst)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `{}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.Server.HTTPAddr)
	assert.Equal(t, "memory", cfg.Database.Driver)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("ASKHIVE_DB_PATH", "/data/hive.db")

	path := writeConfig(t, `
database:
  driver: sqlite
  path: ${ASKHIVE_DB_PATH}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/hive.db", cfg.Database.Path)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_SQLiteRequiresPath(t *testing.T) {
	path := writeConfig(t, `
database:
  driver: sqlite
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.path is required")
}

func TestLoad_UnknownDriver(t *testing.T) {
	path := writeConfig(t, `
database:
  driver: postgres
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.driver")
}

func TestLoad_RateLimitValidation(t *testing.T) {
	path := writeConfig(t, `
ratelimit:
  enabled: true
  rps: 0
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ratelimit.rps")
}

func TestLoad_PasswordFile(t *testing.T) {
	pwPath := filepath.Join(t.TempDir(), "pw")
	require.NoError(t, os.WriteFile(pwPath, []byte("s3cret\n"), 0600))

	path := writeConfig(t, `
database:
  driver: sqlite
  path: /tmp/askhive.db
  password_file: `+pwPath+`
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Database.Password)
}

func TestLoad_PasswordFileMissing(t *testing.T) {
	path := writeConfig(t, `
database:
  driver: sqlite
  path: /tmp/askhive.db
  password_file: /does/not/exist
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password file")
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ":3000", cfg.Server.HTTPAddr)
	assert.Equal(t, "memory", cfg.Database.Driver)
	require.NoError(t, cfg.Validate())
}
