package storage

import (
	"context"
	"errors"
)

// Keys under which the two collections are stored.
const (
	BookmarksKey  = "bookmarkDashboard"
	CategoriesKey = "bookmarkCategories"
)

var (
	ErrNotFound      = errors.New("key not found")
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	ErrCorrupt       = errors.New("stored data is corrupt")
)

// KV is a minimal byte-oriented key-value store.
type KV interface {
	// Get returns ErrNotFound when the key has never been written.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// BatchSetter is implemented by backends that can write several keys
// atomically.
type BatchSetter interface {
	SetMany(ctx context.Context, entries map[string][]byte) error
}

// SetAll writes every entry, atomically when kv supports it.
func SetAll(ctx context.Context, kv KV, entries map[string][]byte) error {
	if b, ok := kv.(BatchSetter); ok {
		return b.SetMany(ctx, entries)
	}
	for _, key := range sortedKeys(entries) {
		if err := kv.Set(ctx, key, entries[key]); err != nil {
			return err
		}
	}
	return nil
}
