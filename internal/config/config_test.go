package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gotest.tools/v3/assert"
	"gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/bmdash/internal/config"
	"github.com/nikbrunner/bmdash/internal/storage"
)

func TestLoad_CreatesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg, err := config.Load(path)
	assert.NilError(t, err)

	assert.Equal(t, cfg.Storage.Backend, storage.BackendFile)
	assert.Equal(t, cfg.Storage.Path, filepath.Join(dir, "data"))
	assert.Equal(t, cfg.Storage.QuotaBytes, config.DefaultQuotaBytes)
	assert.Equal(t, cfg.Log.File, filepath.Join(dir, "bmdash.log"))
	assert.Check(t, cfg.ConfirmDelete)
	assert.Check(t, cfg.SeedSamples)
	assert.DeepEqual(t, cfg.Check.ExcludeDomains, []string{"github.com", "gitlab.com"})

	data, err := os.ReadFile(path)
	assert.NilError(t, err)
	assert.Check(t, cmp.Contains(string(data), "backend: file"))
	assert.Check(t, cmp.Contains(string(data), "confirm_delete: true"))
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
storage:
  backend: sqlite
  path: ""
confirm_delete: false
check:
  timeout: 3s
`
	assert.NilError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := config.Load(path)
	assert.NilError(t, err)

	assert.Equal(t, cfg.Storage.Backend, storage.BackendSQLite)
	assert.Equal(t, cfg.Storage.Path, filepath.Join(dir, "bmdash.db"))
	assert.Check(t, !cfg.ConfirmDelete)
	assert.Check(t, cfg.SeedSamples)
	assert.Equal(t, cfg.Check.Timeout, 3*time.Second)
	assert.Equal(t, cfg.Check.Concurrency, 10)
}

func TestLoad_EnvironmentWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NilError(t, os.WriteFile(path, []byte("storage:\n  backend: sqlite\n"), 0644))

	t.Setenv("BMDASH_STORAGE_BACKEND", "memory")
	t.Setenv("BMDASH_STORAGE_QUOTA_BYTES", "1024")
	t.Setenv("BMDASH_LOG_LEVEL", "debug")
	t.Setenv("BMDASH_CHECK_EXCLUDE_DOMAINS", "intranet.local,example.com")

	cfg, err := config.Load(path)
	assert.NilError(t, err)

	assert.Equal(t, cfg.Storage.Backend, storage.BackendMemory)
	assert.Equal(t, cfg.Storage.QuotaBytes, 1024)
	assert.Equal(t, cfg.Log.Level, "debug")
	assert.DeepEqual(t, cfg.Check.ExcludeDomains, []string{"intranet.local", "example.com"})
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NilError(t, os.WriteFile(path, []byte("storage: [unclosed"), 0644))

	_, err := config.Load(path)
	assert.ErrorContains(t, err, "parse config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr string
	}{
		{"defaults", func(c *config.Config) {}, ""},
		{"unknown backend", func(c *config.Config) { c.Storage.Backend = "floppy" }, "Backend"},
		{"file without path", func(c *config.Config) { c.Storage.Path = "" }, "Path"},
		{"memory without path", func(c *config.Config) {
			c.Storage.Backend = storage.BackendMemory
			c.Storage.Path = ""
		}, ""},
		{"redis without addr", func(c *config.Config) {
			c.Storage.Backend = storage.BackendRedis
			c.Storage.Redis.Addr = ""
		}, "Addr"},
		{"negative quota", func(c *config.Config) { c.Storage.QuotaBytes = -1 }, "QuotaBytes"},
		{"bad log level", func(c *config.Config) { c.Log.Level = "loud" }, "Level"},
		{"zero concurrency", func(c *config.Config) { c.Check.Concurrency = 0 }, "Concurrency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default(t.TempDir())
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NilError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	assert.NilError(t, err)

	assert.Equal(t, config.ExpandHome("~/bm"), filepath.Join(home, "bm"))
	assert.Equal(t, config.ExpandHome("/abs/path"), "/abs/path")
	assert.Equal(t, config.ExpandHome("~other"), "~other")
}
