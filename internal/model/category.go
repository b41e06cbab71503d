package model

import (
	"regexp"
	"strings"
)

const (
	// GeneralCategoryID is the fallback category for orphaned bookmarks.
	GeneralCategoryID = "general"

	// FilterAll is the filter sentinel that matches every category.
	FilterAll = "all"

	// DefaultColor is used for new categories without a color and for
	// bookmarks whose category cannot be resolved.
	DefaultColor = "#8B5CF6"
)

// Category is a named, colored group of bookmarks.
type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	IsDefault bool   `json:"isDefault"`
}

// DefaultCategories returns the protected categories seeded on first run.
func DefaultCategories() []Category {
	return []Category{
		{ID: "general", Name: "General", Color: "#8B5CF6", IsDefault: true},
		{ID: "work", Name: "Work", Color: "#3B82F6", IsDefault: true},
		{ID: "entertainment", Name: "Entertainment", Color: "#10B981", IsDefault: true},
		{ID: "shopping", Name: "Shopping", Color: "#F59E0B", IsDefault: true},
		{ID: "news", Name: "News", Color: "#EF4444", IsDefault: true},
		{ID: "tools", Name: "Tools", Color: "#8B5CF6", IsDefault: true},
	}
}

// GeneralCategory returns the default "general" category.
func GeneralCategory() Category {
	return DefaultCategories()[0]
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// CategoryIDFromName derives a category ID: lowercase, whitespace runs become "-".
// "Side Projects" -> "side-projects"
func CategoryIDFromName(name string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}

// NormalizeColor uppercases a hex color and adds a missing "#".
func NormalizeColor(color string) string {
	color = strings.TrimSpace(color)
	if color == "" {
		return ""
	}
	if !strings.HasPrefix(color, "#") {
		color = "#" + color
	}
	return strings.ToUpper(color)
}
