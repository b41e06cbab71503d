package search

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/nikbrunner/bmdash/internal/model"
)

// NormalizeQuery lowercases and trims a search query.
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Matches reports whether b contains the normalized query in its name,
// URL or category ID. An empty query matches everything.
func Matches(b model.Bookmark, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(b.Name), query) ||
		strings.Contains(strings.ToLower(b.URL), query) ||
		strings.Contains(strings.ToLower(b.Category), query)
}

// FilterBookmarks narrows bookmarks to the category filter first and the
// search query second, keeping the original order. filter is a category
// ID or model.FilterAll; query must already be normalized.
func FilterBookmarks(bookmarks []model.Bookmark, filter, query string) []model.Bookmark {
	result := make([]model.Bookmark, 0, len(bookmarks))
	for _, b := range bookmarks {
		if filter != model.FilterAll && b.Category != filter {
			continue
		}
		if !Matches(b, query) {
			continue
		}
		result = append(result, b)
	}
	return result
}

// SearchResult represents a fuzzy search match.
type SearchResult struct {
	Bookmark       *model.Bookmark
	MatchedIndexes []int
	Score          int
}

// bookmarkNames implements fuzzy.Source for a bookmark slice.
type bookmarkNames []*model.Bookmark

func (bn bookmarkNames) String(i int) string {
	return bn[i].Name
}

func (bn bookmarkNames) Len() int {
	return len(bn)
}

// FuzzySearchBookmarks searches bookmarks by name using fuzzy matching.
// Returns results sorted by match score (best first).
func FuzzySearchBookmarks(bookmarks []model.Bookmark, query string) []SearchResult {
	if query == "" {
		return nil
	}

	source := make(bookmarkNames, len(bookmarks))
	for i := range bookmarks {
		source[i] = &bookmarks[i]
	}

	matches := fuzzy.FindFrom(query, source)

	results := make([]SearchResult, len(matches))
	for i, m := range matches {
		results[i] = SearchResult{
			Bookmark:       source[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return results
}
