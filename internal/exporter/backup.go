package exporter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/nikbrunner/bmdash/internal/model"
)

// Format is an export file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatHTML Format = "html"
)

// ParseFormat accepts "json" or "html".
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatHTML:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown export format %q (want json or html)", s)
}

// WriteBackup writes doc as two-space indented JSON.
func WriteBackup(w io.Writer, doc model.Backup) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(doc)
}

// DefaultExportPath returns <dir>/dashboard-backup-YYYY-MM-DD.<format>.
func DefaultExportPath(dir string, format Format, now time.Time) string {
	filename := fmt.Sprintf("dashboard-backup-%s.%s", now.Format("2006-01-02"), format)
	return filepath.Join(dir, filename)
}

// WriteFile writes doc to path in the given format, creating the parent
// directory if needed.
func WriteFile(path string, format Format, doc model.Backup) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	switch format {
	case FormatHTML:
		store := &model.Store{Bookmarks: doc.Bookmarks, Categories: doc.Categories}
		_, err = io.WriteString(f, ExportHTML(store))
	default:
		err = WriteBackup(f, doc)
	}

	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return err
}
