package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nikbrunner/bmdash/internal/logger"
	"github.com/nikbrunner/bmdash/internal/model"
	"github.com/nikbrunner/bmdash/internal/search"
	"github.com/nikbrunner/bmdash/internal/storage"
)

// ErrPersist wraps any failure to write state back to the Store. The
// in-memory change has already been applied when it is returned.
var ErrPersist = errors.New("changes could not be saved")

// Store persists the two collections.
type Store interface {
	LoadBookmarks(ctx context.Context) ([]model.Bookmark, error)
	LoadCategories(ctx context.Context) ([]model.Category, error)
	SaveBookmarks(ctx context.Context, bookmarks []model.Bookmark) error
	SaveCategories(ctx context.Context, categories []model.Category) error
	SaveAll(ctx context.Context, store *model.Store) error
}

// Mode tells whether a bookmark is being edited.
type Mode int

const (
	ModeIdle Mode = iota
	ModeEditing
)

func (m Mode) String() string {
	if m == ModeEditing {
		return "editing"
	}
	return "idle"
}

// State is a snapshot of everything the dashboard holds.
type State struct {
	Bookmarks  []model.Bookmark
	Categories []model.Category
	Filter     string // category ID or model.FilterAll
	Query      string // normalized search query
	Mode       Mode
	EditingID  string // set in ModeEditing
}

// Params configures Open.
type Params struct {
	Store       Store
	Logger      logger.Logger    // nil = discard
	Now         func() time.Time // nil = time.Now
	NewID       func() string    // nil = model.GenerateID
	SeedSamples bool             // add sample bookmarks when none were ever saved
}

// Dashboard owns the bookmark and category collections and the view state
// derived from them. Every mutation is written back to the Store.
// A Dashboard is not safe for concurrent use.
type Dashboard struct {
	store Store
	log   logger.Logger
	now   func() time.Time
	newID func() string

	data      *model.Store
	filter    string
	query     string
	mode      Mode
	editingID string

	warnings []string
}

// Open loads both collections, falling back to defaults for missing or
// unreadable data, and repairs references to unknown categories.
// Fallbacks are reported through Warnings.
func Open(ctx context.Context, params Params) (*Dashboard, error) {
	d := &Dashboard{
		store:  params.Store,
		log:    params.Logger,
		now:    params.Now,
		newID:  params.NewID,
		filter: model.FilterAll,
	}
	if d.log == nil {
		d.log = logger.Nop()
	}
	if d.now == nil {
		d.now = time.Now
	}
	if d.newID == nil {
		d.newID = model.GenerateID
	}

	categories, err := params.Store.LoadCategories(ctx)
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrNotFound):
		categories = model.DefaultCategories()
	case errors.Is(err, storage.ErrCorrupt):
		d.warn("Saved categories could not be read, defaults restored", err)
		categories = model.DefaultCategories()
	default:
		return nil, fmt.Errorf("load categories: %w", err)
	}

	seeded := false
	bookmarks, err := params.Store.LoadBookmarks(ctx)
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrNotFound):
		bookmarks = []model.Bookmark{}
		if params.SeedSamples {
			bookmarks = model.SampleBookmarks(d.now())
			seeded = true
		}
	case errors.Is(err, storage.ErrCorrupt):
		d.warn("Saved bookmarks could not be read, starting empty", err)
		bookmarks = []model.Bookmark{}
	default:
		return nil, fmt.Errorf("load bookmarks: %w", err)
	}

	d.data = &model.Store{Bookmarks: bookmarks, Categories: categories}

	if d.data.EnsureGeneral() {
		d.warn("General category was missing and has been restored", nil)
	}
	if n := d.data.ReconcileReferences(); n > 0 {
		d.warn(fmt.Sprintf("%d bookmark(s) referenced unknown categories and were moved to General", n), nil)
	}

	d.log.Info("dashboard opened",
		logger.Int("bookmarks", len(d.data.Bookmarks)),
		logger.Int("categories", len(d.data.Categories)))

	if seeded {
		if err := d.saveBookmarks(ctx); err != nil {
			d.warn("Sample bookmarks could not be saved", err)
		}
	}

	return d, nil
}

func (d *Dashboard) warn(msg string, err error) {
	d.warnings = append(d.warnings, msg)
	if err != nil {
		d.log.Warn(msg, logger.Error(err))
		return
	}
	d.log.Warn(msg)
}

// Warnings returns the problems found while opening.
func (d *Dashboard) Warnings() []string {
	return append([]string(nil), d.warnings...)
}

// State returns a copy of the current state.
func (d *Dashboard) State() State {
	snap := d.data.Clone()
	return State{
		Bookmarks:  snap.Bookmarks,
		Categories: snap.Categories,
		Filter:     d.filter,
		Query:      d.query,
		Mode:       d.mode,
		EditingID:  d.editingID,
	}
}

// Bookmark returns a copy of the bookmark with the given ID.
func (d *Dashboard) Bookmark(id string) (model.Bookmark, bool) {
	if b := d.data.GetBookmarkByID(id); b != nil {
		return *b, true
	}
	return model.Bookmark{}, false
}

// Category returns a copy of the category with the given ID.
func (d *Dashboard) Category(id string) (model.Category, bool) {
	if c := d.data.GetCategoryByID(id); c != nil {
		return *c, true
	}
	return model.Category{}, false
}

// SetFilter selects a category ID or model.FilterAll.
func (d *Dashboard) SetFilter(filter string) error {
	if filter != model.FilterAll && d.data.GetCategoryByID(filter) == nil {
		return model.ErrCategoryNotFound
	}
	d.filter = filter
	return nil
}

// SetSearch updates the search query. Matching is case-insensitive.
func (d *Dashboard) SetSearch(query string) {
	d.query = search.NormalizeQuery(query)
}

// ClearSearch removes the search query.
func (d *Dashboard) ClearSearch() {
	d.query = ""
}

func (d *Dashboard) saveBookmarks(ctx context.Context) error {
	return d.persist("bookmarks", d.store.SaveBookmarks(ctx, d.data.Bookmarks))
}

func (d *Dashboard) saveCategories(ctx context.Context) error {
	return d.persist("categories", d.store.SaveCategories(ctx, d.data.Categories))
}

func (d *Dashboard) saveAll(ctx context.Context) error {
	return d.persist("all", d.store.SaveAll(ctx, d.data))
}

func (d *Dashboard) persist(what string, err error) error {
	if err == nil {
		return nil
	}
	d.log.Error("save failed", logger.String("collection", what), logger.Error(err))
	return fmt.Errorf("%w: %w", ErrPersist, err)
}
