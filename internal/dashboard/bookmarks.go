package dashboard

import (
	"context"

	"github.com/nikbrunner/bmdash/internal/logger"
	"github.com/nikbrunner/bmdash/internal/model"
)

// resolveCategory maps an input category to an existing category ID.
// Empty selects fallback, or the first category when fallback is empty.
func (d *Dashboard) resolveCategory(id, fallback string) (string, error) {
	if id == "" {
		id = fallback
	}
	if id == "" && len(d.data.Categories) > 0 {
		id = d.data.Categories[0].ID
	}
	if d.data.GetCategoryByID(id) == nil {
		return "", model.ErrUnknownCategory
	}
	return id, nil
}

// AddBookmark validates in and prepends a new bookmark. It is rejected
// while another bookmark is being edited.
func (d *Dashboard) AddBookmark(ctx context.Context, in model.BookmarkInput) (model.Bookmark, error) {
	if d.mode == ModeEditing {
		return model.Bookmark{}, model.ErrEditInProgress
	}

	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return model.Bookmark{}, err
	}
	category, err := d.resolveCategory(in.Category, "")
	if err != nil {
		return model.Bookmark{}, err
	}

	b := model.NewBookmark(model.NewBookmarkParams{
		Name:     in.Name,
		URL:      in.URL,
		Category: category,
		Now:      d.now(),
	})
	b.ID = d.newID()

	d.data.PrependBookmark(b)
	d.log.Info("bookmark added",
		logger.String("id", b.ID),
		logger.String("category", b.Category))

	return b, d.saveBookmarks(ctx)
}

// BeginEdit enters edit mode for the bookmark with the given ID.
func (d *Dashboard) BeginEdit(id string) (model.Bookmark, error) {
	if d.mode == ModeEditing {
		return model.Bookmark{}, model.ErrEditInProgress
	}
	b := d.data.GetBookmarkByID(id)
	if b == nil {
		return model.Bookmark{}, model.ErrBookmarkNotFound
	}

	d.mode = ModeEditing
	d.editingID = id
	return *b, nil
}

// CancelEdit leaves edit mode without touching the bookmark.
func (d *Dashboard) CancelEdit() {
	d.mode = ModeIdle
	d.editingID = ""
}

// SaveEdit validates in and applies it to the bookmark being edited.
// On a validation error edit mode is kept so the input can be fixed.
// An empty category keeps the bookmark's current one.
func (d *Dashboard) SaveEdit(ctx context.Context, in model.BookmarkInput) (model.Bookmark, error) {
	if d.mode != ModeEditing {
		return model.Bookmark{}, model.ErrNotEditing
	}

	b := d.data.GetBookmarkByID(d.editingID)
	if b == nil {
		d.CancelEdit()
		return model.Bookmark{}, model.ErrBookmarkNotFound
	}

	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return model.Bookmark{}, err
	}
	category, err := d.resolveCategory(in.Category, b.Category)
	if err != nil {
		return model.Bookmark{}, err
	}

	now := d.now()
	b.Name = in.Name
	b.URL = in.URL
	b.Category = category
	b.UpdatedAt = &now
	updated := *b

	d.CancelEdit()
	d.log.Info("bookmark updated", logger.String("id", updated.ID))

	return updated, d.saveBookmarks(ctx)
}

// DeleteBookmark removes the bookmark with the given ID. Unknown IDs are
// a no-op and report false. Deleting the bookmark being edited ends the
// edit.
func (d *Dashboard) DeleteBookmark(ctx context.Context, id string) (bool, error) {
	if !d.data.RemoveBookmark(id) {
		return false, nil
	}
	if d.mode == ModeEditing && d.editingID == id {
		d.CancelEdit()
	}

	d.log.Info("bookmark deleted", logger.String("id", id))
	return true, d.saveBookmarks(ctx)
}
