package dashboard

import (
	"fmt"

	"github.com/nikbrunner/bmdash/internal/model"
	"github.com/nikbrunner/bmdash/internal/search"
)

// BookmarkCard is a visible bookmark with its category resolved.
type BookmarkCard struct {
	model.Bookmark
	CategoryName  string
	CategoryColor string
}

// FilterOption is one entry of the filter bar.
type FilterOption struct {
	ID     string
	Label  string
	Color  string // empty for "all"
	Active bool
}

// CategoryOption is one entry of the category selector.
type CategoryOption struct {
	ID       string
	Name     string
	Selected bool
}

// CategoryCard is a category with its bookmark count.
type CategoryCard struct {
	model.Category
	Count      int
	CountLabel string // "1 Bookmark", "3 Bookmarks"
}

// View is the render-ready projection of the dashboard.
type View struct {
	Bookmarks       []BookmarkCard
	Filters         []FilterOption
	CategoryOptions []CategoryOption
	Categories      []CategoryCard
	Empty           bool
	Total           int
	Filter          string
	Query           string
	Mode            Mode
	Editing         *model.Bookmark // set in ModeEditing
}

// FormTitle is the heading of the bookmark form.
func (v View) FormTitle() string {
	if v.Mode == ModeEditing {
		return "Edit Bookmark"
	}
	return "Add Bookmark"
}

// View computes the current projection. It has no side effects.
func (d *Dashboard) View() View {
	v := View{
		Total:  len(d.data.Bookmarks),
		Filter: d.filter,
		Query:  d.query,
		Mode:   d.mode,
	}

	visible := search.FilterBookmarks(d.data.Bookmarks, d.filter, d.query)
	v.Bookmarks = make([]BookmarkCard, len(visible))
	for i, b := range visible {
		v.Bookmarks[i] = d.card(b)
	}
	v.Empty = len(visible) == 0

	v.Filters = append(v.Filters, FilterOption{
		ID:     model.FilterAll,
		Label:  "All",
		Active: d.filter == model.FilterAll,
	})
	for _, c := range d.data.Categories {
		v.Filters = append(v.Filters, FilterOption{
			ID:     c.ID,
			Label:  c.Name,
			Color:  c.Color,
			Active: d.filter == c.ID,
		})
	}

	selected := ""
	if len(d.data.Categories) > 0 {
		selected = d.data.Categories[0].ID
	}
	if d.mode == ModeEditing {
		if b := d.data.GetBookmarkByID(d.editingID); b != nil {
			edit := *b
			v.Editing = &edit
			selected = b.Category
		}
	}
	for _, c := range d.data.Categories {
		v.CategoryOptions = append(v.CategoryOptions, CategoryOption{
			ID:       c.ID,
			Name:     c.Name,
			Selected: c.ID == selected,
		})
	}

	counts := d.data.CountByCategory()
	for _, c := range d.data.Categories {
		v.Categories = append(v.Categories, CategoryCard{
			Category:   c,
			Count:      counts[c.ID],
			CountLabel: CountLabel(counts[c.ID]),
		})
	}

	return v
}

func (d *Dashboard) card(b model.Bookmark) BookmarkCard {
	card := BookmarkCard{
		Bookmark:      b,
		CategoryName:  b.Category,
		CategoryColor: model.DefaultColor,
	}
	if c := d.data.GetCategoryByID(b.Category); c != nil {
		card.CategoryName = c.Name
		card.CategoryColor = c.Color
	}
	return card
}

// CountLabel formats a bookmark count: "1 Bookmark", "0 Bookmarks".
func CountLabel(n int) string {
	if n == 1 {
		return "1 Bookmark"
	}
	return fmt.Sprintf("%d Bookmarks", n)
}
