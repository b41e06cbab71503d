package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// QuotaKV caps the total size of everything written through it, the way
// browser storage refuses writes once its quota is used up. Sizes are
// counted as len(key)+len(value) for every key seen so far.
type QuotaKV struct {
	inner KV
	limit int

	mu    sync.Mutex
	sizes map[string]int
}

// NewQuotaKV wraps inner with a byte limit. A limit <= 0 disables the check.
func NewQuotaKV(inner KV, limit int) *QuotaKV {
	return &QuotaKV{inner: inner, limit: limit, sizes: make(map[string]int)}
}

// Used returns the number of bytes currently accounted for.
func (q *QuotaKV) Used() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	total := 0
	for _, n := range q.sizes {
		total += n
	}
	return total
}

func (q *QuotaKV) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := q.inner.Get(ctx, key)
	if err == nil {
		q.mu.Lock()
		q.sizes[key] = len(key) + len(value)
		q.mu.Unlock()
	}
	return value, err
}

func (q *QuotaKV) Set(ctx context.Context, key string, value []byte) error {
	return q.SetMany(ctx, map[string][]byte{key: value})
}

func (q *QuotaKV) SetMany(ctx context.Context, entries map[string][]byte) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.limit > 0 {
		if err := q.learnSizes(ctx, entries); err != nil {
			return err
		}
		total := 0
		for k, n := range q.sizes {
			if _, replaced := entries[k]; !replaced {
				total += n
			}
		}
		for k, v := range entries {
			total += len(k) + len(v)
		}
		if total > q.limit {
			return fmt.Errorf("%w: %d of %d bytes", ErrQuotaExceeded, total, q.limit)
		}
	}

	if err := SetAll(ctx, q.inner, entries); err != nil {
		return err
	}
	for k, v := range entries {
		q.sizes[k] = len(k) + len(v)
	}
	return nil
}

// learnSizes reads the current size of keys written for the first time
// through this wrapper.
func (q *QuotaKV) learnSizes(ctx context.Context, entries map[string][]byte) error {
	for k := range entries {
		if _, ok := q.sizes[k]; ok {
			continue
		}
		value, err := q.inner.Get(ctx, k)
		switch {
		case errors.Is(err, ErrNotFound):
			q.sizes[k] = 0
		case err != nil:
			return err
		default:
			q.sizes[k] = len(k) + len(value)
		}
	}
	return nil
}

func (q *QuotaKV) Close() error {
	return q.inner.Close()
}
