package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "nasd.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// TestLoadFullConfig tests loading a file that sets everything
func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
storage:
  root: /srv/nas/data
  database_file: /srv/nas/users.db
auth:
  session_ttl: 72h
web:
  dir: /srv/nas/web
  theme: light
log:
  debug: true
  json: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "/srv/nas/data", cfg.Storage.Root)
	assert.Equal(t, "/srv/nas/users.db", cfg.Storage.DatabaseFile)
	assert.Equal(t, 72*time.Hour, time.Duration(cfg.Auth.SessionTTL))
	assert.Equal(t, "/srv/nas/web", cfg.Web.Dir)
	assert.Equal(t, "light", cfg.Web.Theme)
	assert.True(t, cfg.Log.Debug)
	assert.True(t, cfg.Log.JSON)
}

// TestLoadFillsDefaults tests that settings absent from the file keep their
// defaults
func TestLoadFillsDefaults(t *testing.T) {
	path := writeConfig(t, `
storage:
  root: /srv/nas/data
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultAddr, cfg.Server.Addr)
	assert.Equal(t, DefaultSessionTTL, time.Duration(cfg.Auth.SessionTTL))
	assert.Equal(t, DefaultTheme, cfg.Web.Theme)
	assert.False(t, cfg.Log.Debug)
}

// TestDatabaseFileDerivedFromRoot tests the database default location
func TestDatabaseFileDerivedFromRoot(t *testing.T) {
	path := writeConfig(t, `
storage:
  root: /srv/nas/data
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/nas/data/nas.db", cfg.Storage.DatabaseFile)
}

// TestRelativeRootBecomesAbsolute tests path normalization
func TestRelativeRootBecomesAbsolute(t *testing.T) {
	path := writeConfig(t, `
storage:
  root: relative/data
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(cfg.Storage.Root))
	assert.True(t, filepath.IsAbs(cfg.Storage.DatabaseFile))
}

// TestLoadMissingFile tests the error for an absent config file
func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/nasd.yml")
	require.Error(t, err)
}

// TestLoadMalformedYAML tests the error for a syntactically broken file
func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "server: [unclosed")

	_, err := Load(path)
	require.Error(t, err)
}

// TestLoadBadDuration tests the error for an unparseable session TTL
func TestLoadBadDuration(t *testing.T) {
	path := writeConfig(t, `
storage:
  root: /srv/nas/data
auth:
  session_ttl: three days
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duration")
}

// TestNormalizeRejectsEmptyRoot tests required field validation
func TestNormalizeRejectsEmptyRoot(t *testing.T) {
	cfg := Default()
	cfg.Storage.Root = ""

	err := cfg.Normalize()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage.root")
}

// TestNormalizeRejectsZeroTTL tests session TTL validation
func TestNormalizeRejectsZeroTTL(t *testing.T) {
	cfg := Default()
	cfg.Auth.SessionTTL = 0

	err := cfg.Normalize()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session_ttl")
}

// TestNormalizeIsIdempotent tests that a second pass changes nothing
func TestNormalizeIsIdempotent(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Normalize())

	root := cfg.Storage.Root
	dbFile := cfg.Storage.DatabaseFile

	require.NoError(t, cfg.Normalize())
	assert.Equal(t, root, cfg.Storage.Root)
	assert.Equal(t, dbFile, cfg.Storage.DatabaseFile)
}
