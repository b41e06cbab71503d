package model

import "strings"

// Store holds the two persisted collections in display order.
type Store struct {
	Bookmarks  []Bookmark `json:"bookmarks"`
	Categories []Category `json:"categories"`
}

// NewStore creates a Store with the default categories and no bookmarks.
func NewStore() *Store {
	return &Store{
		Bookmarks:  []Bookmark{},
		Categories: DefaultCategories(),
	}
}

// Clone returns a deep copy of the store.
func (s *Store) Clone() *Store {
	out := &Store{
		Bookmarks:  make([]Bookmark, len(s.Bookmarks)),
		Categories: make([]Category, len(s.Categories)),
	}
	copy(out.Bookmarks, s.Bookmarks)
	copy(out.Categories, s.Categories)
	for i := range out.Bookmarks {
		if ts := out.Bookmarks[i].UpdatedAt; ts != nil {
			t := *ts
			out.Bookmarks[i].UpdatedAt = &t
		}
	}
	return out
}

// GetBookmarkByID finds a bookmark by ID, returns nil if not found.
func (s *Store) GetBookmarkByID(id string) *Bookmark {
	for i := range s.Bookmarks {
		if s.Bookmarks[i].ID == id {
			return &s.Bookmarks[i]
		}
	}
	return nil
}

// GetCategoryByID finds a category by ID, returns nil if not found.
func (s *Store) GetCategoryByID(id string) *Category {
	if i := s.categoryIndex(id); i >= 0 {
		return &s.Categories[i]
	}
	return nil
}

func (s *Store) categoryIndex(id string) int {
	for i := range s.Categories {
		if s.Categories[i].ID == id {
			return i
		}
	}
	return -1
}

// PrependBookmark inserts b at the front, most recent first.
func (s *Store) PrependBookmark(b Bookmark) {
	s.Bookmarks = append([]Bookmark{b}, s.Bookmarks...)
}

// RemoveBookmark deletes the bookmark with the given ID.
// Returns false when no bookmark matched.
func (s *Store) RemoveBookmark(id string) bool {
	for i := range s.Bookmarks {
		if s.Bookmarks[i].ID == id {
			s.Bookmarks = append(s.Bookmarks[:i], s.Bookmarks[i+1:]...)
			return true
		}
	}
	return false
}

// ReassignCategory moves every bookmark in category from to category to
// and returns how many were moved.
func (s *Store) ReassignCategory(from, to string) int {
	n := 0
	for i := range s.Bookmarks {
		if s.Bookmarks[i].Category == from {
			s.Bookmarks[i].Category = to
			n++
		}
	}
	return n
}

// RemoveCategory deletes the category with the given ID.
// Returns false when no category matched.
func (s *Store) RemoveCategory(id string) bool {
	i := s.categoryIndex(id)
	if i < 0 {
		return false
	}
	s.Categories = append(s.Categories[:i], s.Categories[i+1:]...)
	return true
}

// MoveCategory moves the dragged category into the target's position.
// The dragged entry is removed first and then inserted at the index the
// target held before the removal, so every other category keeps its
// relative order.
func (s *Store) MoveCategory(draggedID, targetID string) error {
	from := s.categoryIndex(draggedID)
	to := s.categoryIndex(targetID)
	if from < 0 || to < 0 {
		return ErrCategoryNotFound
	}
	if from == to {
		return nil
	}

	dragged := s.Categories[from]
	rest := append(s.Categories[:from:from], s.Categories[from+1:]...)

	out := make([]Category, 0, len(s.Categories))
	out = append(out, rest[:to]...)
	out = append(out, dragged)
	out = append(out, rest[to:]...)
	s.Categories = out
	return nil
}

// HasCategoryName reports whether another category already uses name,
// compared case-insensitively. The category with excludeID is ignored.
func (s *Store) HasCategoryName(name, excludeID string) bool {
	return s.categoryByName(name, excludeID) != nil
}

func (s *Store) categoryByName(name, excludeID string) *Category {
	name = strings.TrimSpace(name)
	for i := range s.Categories {
		c := &s.Categories[i]
		if c.ID == excludeID {
			continue
		}
		if strings.EqualFold(c.Name, name) {
			return c
		}
	}
	return nil
}

// EnsureGeneral puts the general category back at the front if it is
// missing and marks an existing one as default. Returns true when it had
// to be restored.
func (s *Store) EnsureGeneral() bool {
	if i := s.categoryIndex(GeneralCategoryID); i >= 0 {
		s.Categories[i].IsDefault = true
		return false
	}
	s.Categories = append([]Category{GeneralCategory()}, s.Categories...)
	return true
}

// ReconcileReferences points bookmarks with a missing or unknown category
// at general and returns how many were changed.
func (s *Store) ReconcileReferences() int {
	known := make(map[string]bool, len(s.Categories))
	for _, c := range s.Categories {
		known[c.ID] = true
	}

	n := 0
	for i := range s.Bookmarks {
		if !known[s.Bookmarks[i].Category] {
			s.Bookmarks[i].Category = GeneralCategoryID
			n++
		}
	}
	return n
}

// MergeResult reports how many records an ImportMerge added.
type MergeResult struct {
	BookmarksAdded  int
	CategoriesAdded int
}

// ImportMerge appends imported categories and bookmarks.
//
// Categories whose ID already exists are skipped. Categories whose name
// matches an existing one are folded into it and their bookmarks follow.
// Imported categories are never protected defaults. Bookmarks are
// appended in order; an empty or already used ID is replaced by newID().
func (s *Store) ImportMerge(categories []Category, bookmarks []Bookmark, newID func() string) MergeResult {
	var res MergeResult
	remap := make(map[string]string)

	for _, c := range categories {
		if c.ID == "" {
			c.ID = CategoryIDFromName(c.Name)
		}
		if s.categoryIndex(c.ID) >= 0 {
			continue
		}
		if existing := s.categoryByName(c.Name, ""); existing != nil {
			remap[c.ID] = existing.ID
			continue
		}
		if c.Color == "" {
			c.Color = DefaultColor
		}
		c.IsDefault = false
		s.Categories = append(s.Categories, c)
		res.CategoriesAdded++
	}

	used := make(map[string]bool, len(s.Bookmarks)+len(bookmarks))
	for _, b := range s.Bookmarks {
		used[b.ID] = true
	}

	for _, b := range bookmarks {
		if to, ok := remap[b.Category]; ok {
			b.Category = to
		}
		if b.ID == "" || used[b.ID] {
			b.ID = newID()
		}
		used[b.ID] = true
		s.Bookmarks = append(s.Bookmarks, b)
		res.BookmarksAdded++
	}

	s.ReconcileReferences()
	return res
}

// CountByCategory returns the number of bookmarks per category ID.
func (s *Store) CountByCategory() map[string]int {
	counts := make(map[string]int, len(s.Categories))
	for _, b := range s.Bookmarks {
		counts[b.Category]++
	}
	return counts
}
