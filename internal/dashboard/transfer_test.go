package dashboard_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/nikbrunner/bmdash/internal/dashboard"
	"github.com/nikbrunner/bmdash/internal/exporter"
	"github.com/nikbrunner/bmdash/internal/importer"
	"github.com/nikbrunner/bmdash/internal/model"
)

func TestExport(t *testing.T) {
	d := open(t, newStore(), true)
	assert.NilError(t, d.SetFilter("work"))

	doc, err := d.Export()
	assert.NilError(t, err)
	assert.Equal(t, doc.Version, model.BackupVersion)
	assert.Equal(t, doc.ExportDate, fixedNow)
	assert.Equal(t, len(doc.Bookmarks), 3)
	assert.Equal(t, len(doc.Categories), 6)
	assert.Equal(t, doc.Settings.CurrentFilter, "work")
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	d := open(t, newStore(), true)
	_, err := d.AddCategory(ctx, model.CategoryInput{Name: "Reading"})
	assert.NilError(t, err)

	doc, err := d.Export()
	assert.NilError(t, err)

	var buf bytes.Buffer
	assert.NilError(t, exporter.WriteBackup(&buf, doc))
	payload, err := importer.ParseBackup(&buf)
	assert.NilError(t, err)

	res, err := d.Import(ctx, payload)
	assert.NilError(t, err)
	assert.Equal(t, res.Format, importer.FormatBackup)
	assert.Equal(t, res.CategoriesAdded, 0)
	assert.Equal(t, res.BookmarksAdded, 3)

	s := d.State()
	assert.Equal(t, len(s.Categories), 7)
	assert.Equal(t, len(s.Bookmarks), 6)

	seen := map[string]bool{}
	for _, b := range s.Bookmarks {
		assert.Assert(t, !seen[b.ID], "duplicate id %s", b.ID)
		seen[b.ID] = true
	}
}

func TestImport_IntoEmptyDashboard(t *testing.T) {
	ctx := context.Background()
	src := open(t, newStore(), true)
	_, err := src.AddCategory(ctx, model.CategoryInput{Name: "Reading", Color: "#010203"})
	assert.NilError(t, err)
	doc, err := src.Export()
	assert.NilError(t, err)

	store := newStore()
	dst := open(t, store, false)
	res, err := dst.Import(ctx, importer.Payload{
		Format:     importer.FormatBackup,
		Bookmarks:  doc.Bookmarks,
		Categories: doc.Categories,
	})
	assert.NilError(t, err)
	assert.Equal(t, res.CategoriesAdded, 1)
	assert.Equal(t, res.BookmarksAdded, 3)

	reloaded := open(t, store, false)
	assert.Equal(t, len(reloaded.State().Categories), 7)
	assert.Equal(t, len(reloaded.State().Bookmarks), 3)
}

func TestImport_Legacy(t *testing.T) {
	ctx := context.Background()
	d := open(t, newStore(), true)

	res, err := d.Import(ctx, importer.Payload{
		Format: importer.FormatLegacy,
		Bookmarks: []model.Bookmark{
			{Name: "Old", URL: "https://old.example", Category: "retired"},
			{ID: "1", Name: "Clash", URL: "https://clash.example", Category: "news"},
		},
	})
	assert.NilError(t, err)
	assert.Equal(t, res.BookmarksAdded, 2)
	assert.Equal(t, res.CategoriesAdded, 0)

	s := d.State()
	assert.Equal(t, len(s.Bookmarks), 5)
	appended := s.Bookmarks[3:]
	assert.Equal(t, appended[0].Category, model.GeneralCategoryID)
	assert.Equal(t, appended[0].CreatedAt, fixedNow)
	assert.Assert(t, appended[1].ID != "1")
	assert.Equal(t, appended[1].Category, "news")
}

func TestImport_PersistFailureReported(t *testing.T) {
	store := newStore()
	d := open(t, store, true)
	store.fail = errors.New("quota")

	_, err := d.Import(context.Background(), importer.Payload{
		Format:     importer.FormatBackup,
		Categories: []model.Category{{ID: "new", Name: "New", Color: "#000000"}},
	})
	assert.Assert(t, errors.Is(err, dashboard.ErrPersist))
	_, ok := d.Category("new")
	assert.Assert(t, ok)
}

func TestImport_InvalidFileLeavesStateUnchanged(t *testing.T) {
	d := open(t, newStore(), true)
	before := d.State()

	_, err := importer.ParseBackup(bytes.NewBufferString(`{"hello": "world"}`))
	assert.Assert(t, errors.Is(err, model.ErrInvalidImport))

	assert.DeepEqual(t, d.State(), before)
}
