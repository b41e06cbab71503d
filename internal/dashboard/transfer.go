package dashboard

import (
	"context"

	"github.com/nikbrunner/bmdash/internal/importer"
	"github.com/nikbrunner/bmdash/internal/logger"
	"github.com/nikbrunner/bmdash/internal/model"
)

// ImportResult reports what an Import added.
type ImportResult struct {
	Format          importer.Format
	BookmarksAdded  int
	CategoriesAdded int
}

// Export returns both collections and the active filter as a versioned
// document. It fails with model.ErrNothingToExport when both collections
// are empty.
func (d *Dashboard) Export() (model.Backup, error) {
	if len(d.data.Bookmarks) == 0 && len(d.data.Categories) == 0 {
		return model.Backup{}, model.ErrNothingToExport
	}

	snap := d.data.Clone()
	d.log.Info("dashboard exported",
		logger.Int("bookmarks", len(snap.Bookmarks)),
		logger.Int("categories", len(snap.Categories)))

	return model.Backup{
		Version:    model.BackupVersion,
		ExportDate: d.now().UTC(),
		Bookmarks:  snap.Bookmarks,
		Categories: snap.Categories,
		Settings:   model.Settings{CurrentFilter: d.filter},
	}, nil
}

// Import merges a parsed payload: new categories are appended, known ones
// skipped, and every bookmark is appended. The merge is computed on a
// copy and swapped in whole. Imported settings are not applied.
func (d *Dashboard) Import(ctx context.Context, p importer.Payload) (ImportResult, error) {
	now := d.now()
	bookmarks := make([]model.Bookmark, len(p.Bookmarks))
	copy(bookmarks, p.Bookmarks)
	for i := range bookmarks {
		if bookmarks[i].CreatedAt.IsZero() {
			bookmarks[i].CreatedAt = now
		}
	}

	next := d.data.Clone()
	merged := next.ImportMerge(p.Categories, bookmarks, d.newID)
	d.data = next

	res := ImportResult{
		Format:          p.Format,
		BookmarksAdded:  merged.BookmarksAdded,
		CategoriesAdded: merged.CategoriesAdded,
	}
	d.log.Info("dashboard imported",
		logger.String("format", string(p.Format)),
		logger.Int("bookmarks", res.BookmarksAdded),
		logger.Int("categories", res.CategoriesAdded))

	if res.CategoriesAdded == 0 {
		return res, d.saveBookmarks(ctx)
	}
	return res, d.saveAll(ctx)
}
