package tui

import "github.com/nikbrunner/bmdash/internal/dashboard"

// ItemKind distinguishes between bookmark and category rows.
type ItemKind int

const (
	ItemBookmark ItemKind = iota
	ItemCategory
)

// Item is one selectable row of the active tab.
type Item struct {
	Kind     ItemKind
	Bookmark *dashboard.BookmarkCard
	Category *dashboard.CategoryCard
}

// ID returns the item's ID regardless of type.
func (i Item) ID() string {
	if i.Kind == ItemCategory {
		return i.Category.ID
	}
	return i.Bookmark.ID
}

// Title returns a display title for the item.
func (i Item) Title() string {
	if i.Kind == ItemCategory {
		return i.Category.Name
	}
	return i.Bookmark.Name
}

// IsCategory returns true if this item is a category.
func (i Item) IsCategory() bool {
	return i.Kind == ItemCategory
}

// itemsFor builds the rows of tab from a dashboard view.
func itemsFor(tab Tab, v dashboard.View) []Item {
	if tab == TabCategories {
		items := make([]Item, len(v.Categories))
		for i := range v.Categories {
			items[i] = Item{Kind: ItemCategory, Category: &v.Categories[i]}
		}
		return items
	}

	items := make([]Item, len(v.Bookmarks))
	for i := range v.Bookmarks {
		items[i] = Item{Kind: ItemBookmark, Bookmark: &v.Bookmarks[i]}
	}
	return items
}
