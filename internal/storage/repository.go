package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nikbrunner/bmdash/internal/model"
)

// CorruptSuffix is appended to a key when its unreadable value is set aside.
const CorruptSuffix = ".corrupt"

// Repository reads and writes the two collections as JSON blobs.
type Repository struct {
	kv KV
}

// NewRepository wraps kv.
func NewRepository(kv KV) *Repository {
	return &Repository{kv: kv}
}

// LoadBookmarks returns ErrNotFound when nothing was saved yet and
// ErrCorrupt when the stored blob cannot be decoded.
func (r *Repository) LoadBookmarks(ctx context.Context) ([]model.Bookmark, error) {
	var bookmarks []model.Bookmark
	if err := r.load(ctx, BookmarksKey, &bookmarks); err != nil {
		return nil, err
	}
	if bookmarks == nil {
		bookmarks = []model.Bookmark{}
	}
	return bookmarks, nil
}

// LoadCategories behaves like LoadBookmarks for the category list.
func (r *Repository) LoadCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := r.load(ctx, CategoriesKey, &categories); err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []model.Category{}
	}
	return categories, nil
}

func (r *Repository) SaveBookmarks(ctx context.Context, bookmarks []model.Bookmark) error {
	if bookmarks == nil {
		bookmarks = []model.Bookmark{}
	}
	return r.save(ctx, BookmarksKey, bookmarks)
}

func (r *Repository) SaveCategories(ctx context.Context, categories []model.Category) error {
	if categories == nil {
		categories = []model.Category{}
	}
	return r.save(ctx, CategoriesKey, categories)
}

// SaveAll writes both collections, atomically when the backend supports
// batched writes.
func (r *Repository) SaveAll(ctx context.Context, store *model.Store) error {
	list := store.Bookmarks
	if list == nil {
		list = []model.Bookmark{}
	}
	bookmarks, err := json.Marshal(list)
	if err != nil {
		return err
	}
	categories, err := json.Marshal(store.Categories)
	if err != nil {
		return err
	}
	return SetAll(ctx, r.kv, map[string][]byte{
		BookmarksKey:  bookmarks,
		CategoriesKey: categories,
	})
}

func (r *Repository) Close() error {
	return r.kv.Close()
}

func (r *Repository) load(ctx context.Context, key string, dst any) error {
	data, err := r.kv.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		// Keep the unreadable blob so the next save doesn't destroy it.
		if qErr := r.kv.Set(ctx, key+CorruptSuffix, data); qErr != nil {
			return fmt.Errorf("%w: %s: %v (quarantine failed: %v)", ErrCorrupt, key, err, qErr)
		}
		return fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return nil
}

func (r *Repository) save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return r.kv.Set(ctx, key, data)
}
