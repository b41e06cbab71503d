package storage

import (
	"context"
	"fmt"

	"github.com/nikbrunner/bmdash/internal/logger"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Backends lists every backend name Open understands.
var Backends = []string{BackendFile, BackendSQLite, BackendRedis, BackendMemory}

// Options selects and configures a backend.
type Options struct {
	Backend    string
	Path       string // directory for file, database file for sqlite
	QuotaBytes int    // 0 = unlimited
	Redis      RedisOptions
}

// Open creates the configured backend, wraps it in the quota check and
// returns a Repository over it.
func Open(ctx context.Context, opts Options, log logger.Logger) (*Repository, error) {
	var (
		kv  KV
		err error
	)

	switch opts.Backend {
	case BackendFile, "":
		kv = NewFileKV(opts.Path)
	case BackendSQLite:
		kv, err = NewSQLiteKV(opts.Path)
	case BackendRedis:
		kv, err = NewRedisKV(ctx, opts.Redis, log)
	case BackendMemory:
		kv = NewMemoryKV()
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", opts.Backend, err)
	}

	log.Debug("storage opened",
		logger.String("backend", opts.Backend),
		logger.String("path", opts.Path),
		logger.Int("quota_bytes", opts.QuotaBytes))

	if opts.QuotaBytes > 0 {
		kv = NewQuotaKV(kv, opts.QuotaBytes)
	}
	return NewRepository(kv), nil
}
