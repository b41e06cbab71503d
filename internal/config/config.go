package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/nikbrunner/bmdash/internal/logger"
	"github.com/nikbrunner/bmdash/internal/storage"
)

// EnvPrefix prefixes every environment override, e.g. BMDASH_STORAGE_BACKEND
// or BMDASH_STORAGE_QUOTA_BYTES.
const EnvPrefix = "BMDASH"

// DefaultQuotaBytes matches the usual browser local storage limit.
const DefaultQuotaBytes = 5 << 20

// Config holds user preferences.
type Config struct {
	Storage       StorageConfig `yaml:"storage"`
	Log           LogConfig     `yaml:"log"`
	ConfirmDelete bool          `yaml:"confirm_delete" split_words:"true"` // Ask before deleting
	SeedSamples   bool          `yaml:"seed_samples" split_words:"true"`   // Add sample bookmarks on first run
	ExportDir     string        `yaml:"export_dir" split_words:"true"`
	Check         CheckConfig   `yaml:"check"`
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Backend    string      `yaml:"backend"`                        // file, sqlite, redis, memory
	Path       string      `yaml:"path"`                           // directory (file) or database (sqlite)
	QuotaBytes int         `yaml:"quota_bytes" split_words:"true"` // 0 = unlimited
	Redis      RedisConfig `yaml:"redis"`
}

type RedisConfig struct {
	Addr        string        `yaml:"addr"`
	Username    string        `yaml:"username"`
	Password    string        `yaml:"password"`
	DB          int           `yaml:"db"`
	Prefix      string        `yaml:"prefix"`
	DialTimeout time.Duration `yaml:"dial_timeout" split_words:"true"`
}

type LogConfig struct {
	Level   string `yaml:"level"`
	File    string `yaml:"file"`
	Console bool   `yaml:"console"`
}

// CheckConfig tunes the dead link checker.
type CheckConfig struct {
	Concurrency    int           `yaml:"concurrency"`
	Timeout        time.Duration `yaml:"timeout"`
	ExcludeDomains []string      `yaml:"exclude_domains" split_words:"true"` // 404 here means "possibly private"
}

// Default returns the default configuration rooted at dir
// (normally ~/.config/bmdash).
func Default(dir string) *Config {
	home, _ := os.UserHomeDir()
	exportDir := ""
	if home != "" {
		exportDir = filepath.Join(home, "Downloads")
	}

	return &Config{
		Storage: StorageConfig{
			Backend:    storage.BackendFile,
			Path:       filepath.Join(dir, "data"),
			QuotaBytes: DefaultQuotaBytes,
			Redis: RedisConfig{
				Addr:        "localhost:6379",
				Prefix:      "bmdash:",
				DialTimeout: 2 * time.Second,
			},
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(dir, "bmdash.log"),
		},
		ConfirmDelete: true,
		SeedSamples:   true,
		ExportDir:     exportDir,
		Check: CheckConfig{
			Concurrency:    10,
			Timeout:        10 * time.Second,
			ExcludeDomains: []string{"github.com", "gitlab.com"},
		},
	}
}

// DefaultDir returns ~/.config/bmdash.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "bmdash"), nil
}

// DefaultPath returns ~/.config/bmdash/config.yaml.
func DefaultPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads config from path, creating the file with defaults if it
// doesn't exist. Values from BMDASH_* environment variables win over the
// file. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default(filepath.Dir(path))

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Non-fatal: run with defaults even if the file can't be written
		_ = Save(path, cfg)
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	cfg.resolvePaths(filepath.Dir(path))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Save writes config as YAML, creating the directory if needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// resolvePaths expands "~" and picks a backend-specific default path when
// the configured one was cleared.
func (c *Config) resolvePaths(dir string) {
	if c.Storage.Path == "" {
		switch c.Storage.Backend {
		case storage.BackendSQLite:
			c.Storage.Path = filepath.Join(dir, "bmdash.db")
		case storage.BackendFile:
			c.Storage.Path = filepath.Join(dir, "data")
		}
	}
	c.Storage.Path = ExpandHome(c.Storage.Path)
	c.Log.File = ExpandHome(c.Log.File)
	c.ExportDir = ExpandHome(c.ExportDir)
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Storage.Validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if err := c.Check.Validate(); err != nil {
		return fmt.Errorf("check: %w", err)
	}
	return nil
}

// Validate validates the storage configuration.
func (c *StorageConfig) Validate() error {
	backends := make([]interface{}, len(storage.Backends))
	for i, b := range storage.Backends {
		backends[i] = b
	}
	needsPath := c.Backend == storage.BackendFile || c.Backend == storage.BackendSQLite

	if err := validation.ValidateStruct(c,
		validation.Field(&c.Backend, validation.Required, validation.In(backends...)),
		validation.Field(&c.Path, validation.When(needsPath, validation.Required)),
		validation.Field(&c.QuotaBytes, validation.Min(0)),
	); err != nil {
		return err
	}

	if c.Backend != storage.BackendRedis {
		return nil
	}
	r := &c.Redis
	if err := validation.ValidateStruct(r,
		validation.Field(&r.Addr, validation.Required),
		validation.Field(&r.DB, validation.Min(0)),
	); err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	return nil
}

// Validate validates the log configuration.
func (c *LogConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Level, validation.Required, validation.By(func(v interface{}) error {
			if !logger.ValidLevel(v.(string)) {
				return errors.New("must be one of debug, info, warn, error")
			}
			return nil
		})),
	)
}

// Validate validates the link checker configuration.
func (c *CheckConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Concurrency, validation.Required, validation.Min(1)),
		validation.Field(&c.Timeout, validation.Required),
	)
}

// StorageOptions converts the storage section for storage.Open.
func (c *Config) StorageOptions() storage.Options {
	return storage.Options{
		Backend:    c.Storage.Backend,
		Path:       c.Storage.Path,
		QuotaBytes: c.Storage.QuotaBytes,
		Redis: storage.RedisOptions{
			Addr:        c.Storage.Redis.Addr,
			Username:    c.Storage.Redis.Username,
			Password:    c.Storage.Redis.Password,
			DB:          c.Storage.Redis.DB,
			Prefix:      c.Storage.Redis.Prefix,
			DialTimeout: c.Storage.Redis.DialTimeout,
		},
	}
}

// LoggerConfig converts the log section for logger.New.
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{
		Level:   c.Log.Level,
		File:    c.Log.File,
		Console: c.Log.Console,
	}
}
