package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nikbrunner/bmdash/internal/model"
)

// Format identifies where a Payload came from.
type Format string

const (
	FormatBackup Format = "backup" // versioned export document
	FormatLegacy Format = "legacy" // bare list of bookmarks
	FormatHTML   Format = "html"   // Netscape bookmark file
)

// Payload is the parsed, validated content of an import file.
type Payload struct {
	Format     Format
	Version    string
	Bookmarks  []model.Bookmark
	Categories []model.Category // empty for legacy imports
	Settings   *model.Settings  // nil unless the document carried settings
	Skipped    int              // records dropped because they were unusable (HTML only)
}

// backupDocument mirrors model.Backup with presence-sensitive fields.
type backupDocument struct {
	Version    string           `json:"version"`
	Bookmarks  []model.Bookmark `json:"bookmarks"`
	Categories []model.Category `json:"categories"`
	Settings   *model.Settings  `json:"settings"`
}

// ParseBackup reads a JSON import file. An object with a version, a
// bookmark list and a category list is a backup; a bare array is a legacy
// bookmark list. Anything else, or any invalid record, fails with
// model.ErrInvalidImport.
func ParseBackup(r io.Reader) (Payload, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Payload{}, fmt.Errorf("read import: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Payload{}, invalid("file is empty")
	}

	switch trimmed[0] {
	case '[':
		var bookmarks []model.Bookmark
		if err := json.Unmarshal(trimmed, &bookmarks); err != nil {
			return Payload{}, invalid(err.Error())
		}
		if err := validateBookmarks(bookmarks); err != nil {
			return Payload{}, err
		}
		return Payload{Format: FormatLegacy, Bookmarks: bookmarks}, nil

	case '{':
		var doc backupDocument
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return Payload{}, invalid(err.Error())
		}
		if doc.Version == "" || doc.Bookmarks == nil || doc.Categories == nil {
			return Payload{}, invalid("missing version, bookmarks or categories")
		}
		if err := validateCategories(doc.Categories); err != nil {
			return Payload{}, err
		}
		if err := validateBookmarks(doc.Bookmarks); err != nil {
			return Payload{}, err
		}
		return Payload{
			Format:     FormatBackup,
			Version:    doc.Version,
			Bookmarks:  doc.Bookmarks,
			Categories: doc.Categories,
			Settings:   doc.Settings,
		}, nil
	}

	return Payload{}, invalid("expected a backup object or a bookmark list")
}

// ParseFile reads path as HTML when its extension or first byte says so,
// and as JSON otherwise.
func ParseFile(path string) (Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Payload{}, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return ParseHTMLBookmarks(bytes.NewReader(data))
	case ".json":
		return ParseBackup(bytes.NewReader(data))
	}

	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '<' {
		return ParseHTMLBookmarks(bytes.NewReader(data))
	}
	return ParseBackup(bytes.NewReader(data))
}

func validateBookmarks(bookmarks []model.Bookmark) error {
	for i := range bookmarks {
		b := &bookmarks[i]
		in := model.BookmarkInput{Name: b.Name, URL: b.URL, Category: b.Category}.Normalize()
		if err := in.Validate(); err != nil {
			return invalid(fmt.Sprintf("bookmark %d: %v", i+1, err))
		}
		b.Name, b.URL, b.Category = in.Name, in.URL, in.Category
	}
	return nil
}

func validateCategories(categories []model.Category) error {
	for i := range categories {
		c := &categories[i]
		in := model.CategoryInput{Name: c.Name, Color: c.Color}.Normalize()
		if err := in.Validate(); err != nil {
			return invalid(fmt.Sprintf("category %d: %v", i+1, err))
		}
		c.Name, c.Color = in.Name, in.Color
		c.ID = strings.TrimSpace(c.ID)
	}
	return nil
}

func invalid(reason string) error {
	return fmt.Errorf("%w: %s", model.ErrInvalidImport, reason)
}
