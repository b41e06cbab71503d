package model

import (
	"strings"
	"time"
)

// Bookmark represents a saved URL assigned to a category.
type Bookmark struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	URL       string     `json:"url"`
	Category  string     `json:"category"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"` // nil = never edited
}

// NewBookmarkParams holds parameters for creating a new Bookmark.
type NewBookmarkParams struct {
	Name     string
	URL      string
	Category string
	Now      time.Time // zero = time.Now()
}

// NewBookmark creates a Bookmark with a generated time-ordered ID.
func NewBookmark(params NewBookmarkParams) Bookmark {
	now := params.Now
	if now.IsZero() {
		now = time.Now()
	}

	return Bookmark{
		ID:        GenerateID(),
		Name:      strings.TrimSpace(params.Name),
		URL:       strings.TrimSpace(params.URL),
		Category:  params.Category,
		CreatedAt: now,
	}
}

// SampleBookmarks returns the bookmarks seeded on first run.
func SampleBookmarks(now time.Time) []Bookmark {
	return []Bookmark{
		{ID: "1", Name: "Google", URL: "https://www.google.com", Category: "tools", CreatedAt: now},
		{ID: "2", Name: "GitHub", URL: "https://github.com", Category: "work", CreatedAt: now},
		{ID: "3", Name: "YouTube", URL: "https://www.youtube.com", Category: "entertainment", CreatedAt: now},
	}
}
