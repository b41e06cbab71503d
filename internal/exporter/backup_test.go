package exporter_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gotest.tools/v3/assert"
	"gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/bmdash/internal/exporter"
	"github.com/nikbrunner/bmdash/internal/importer"
	"github.com/nikbrunner/bmdash/internal/model"
)

func testBackup() model.Backup {
	now := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)
	return model.Backup{
		Version:    model.BackupVersion,
		ExportDate: now,
		Bookmarks: []model.Bookmark{
			{ID: "1", Name: "Go <docs>", URL: "https://go.dev", Category: "tools", CreatedAt: now},
		},
		Categories: model.DefaultCategories(),
		Settings:   model.Settings{CurrentFilter: "tools"},
	}
}

func TestWriteBackup(t *testing.T) {
	var buf bytes.Buffer
	assert.NilError(t, exporter.WriteBackup(&buf, testBackup()))

	out := buf.String()
	assert.Check(t, cmp.Contains(out, "\n  \"version\": \"1.0\""))
	assert.Check(t, cmp.Contains(out, `"exportDate": "2025-01-15T10:30:00Z"`))
	assert.Check(t, cmp.Contains(out, `"currentFilter": "tools"`))
	assert.Check(t, cmp.Contains(out, `"name": "Go <docs>"`))
	assert.Check(t, !strings.Contains(out, "updatedAt"))
}

func TestWriteBackup_ReadableByImporter(t *testing.T) {
	var buf bytes.Buffer
	assert.NilError(t, exporter.WriteBackup(&buf, testBackup()))

	p, err := importer.ParseBackup(&buf)
	assert.NilError(t, err)
	assert.Equal(t, p.Format, importer.FormatBackup)
	assert.Equal(t, len(p.Bookmarks), 1)
	assert.Equal(t, len(p.Categories), 6)
}

func TestDefaultExportPath(t *testing.T) {
	now := time.Date(2025, 3, 9, 23, 59, 0, 0, time.UTC)

	assert.Equal(t,
		exporter.DefaultExportPath("/tmp/out", exporter.FormatJSON, now),
		filepath.Join("/tmp/out", "dashboard-backup-2025-03-09.json"))
	assert.Equal(t,
		exporter.DefaultExportPath("/tmp/out", exporter.FormatHTML, now),
		filepath.Join("/tmp/out", "dashboard-backup-2025-03-09.html"))
}

func TestParseFormat(t *testing.T) {
	f, err := exporter.ParseFormat("html")
	assert.NilError(t, err)
	assert.Equal(t, f, exporter.FormatHTML)

	_, err = exporter.ParseFormat("csv")
	assert.ErrorContains(t, err, "unknown export format")
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")

	jsonPath := filepath.Join(dir, "backup.json")
	assert.NilError(t, exporter.WriteFile(jsonPath, exporter.FormatJSON, testBackup()))

	p, err := importer.ParseFile(jsonPath)
	assert.NilError(t, err)
	assert.Equal(t, p.Format, importer.FormatBackup)

	htmlPath := filepath.Join(dir, "backup.html")
	assert.NilError(t, exporter.WriteFile(htmlPath, exporter.FormatHTML, testBackup()))

	data, err := os.ReadFile(htmlPath)
	assert.NilError(t, err)
	assert.Check(t, cmp.Contains(string(data), "<H3>Tools</H3>"))

	p, err = importer.ParseFile(htmlPath)
	assert.NilError(t, err)
	assert.Equal(t, len(p.Bookmarks), 1)
	assert.Equal(t, p.Bookmarks[0].Category, "tools")
}
