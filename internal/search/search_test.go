package search

import (
	"testing"

	"github.com/nikbrunner/bmdash/internal/model"
)

func testBookmarks() []model.Bookmark {
	return []model.Bookmark{
		{ID: "1", Name: "Google", URL: "https://www.google.com", Category: "tools"},
		{ID: "2", Name: "GitHub", URL: "https://github.com", Category: "work"},
		{ID: "3", Name: "YouTube", URL: "https://www.youtube.com", Category: "entertainment"},
		{ID: "4", Name: "GitLab", URL: "https://gitlab.com", Category: "work"},
	}
}

func ids(bookmarks []model.Bookmark) []string {
	out := make([]string, len(bookmarks))
	for i, b := range bookmarks {
		out[i] = b.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNormalizeQuery(t *testing.T) {
	if got := NormalizeQuery("  GitHub "); got != "github" {
		t.Errorf("NormalizeQuery = %q, want %q", got, "github")
	}
}

func TestFilterBookmarks(t *testing.T) {
	tests := []struct {
		name   string
		filter string
		query  string
		want   []string
	}{
		{"all, no query", model.FilterAll, "", []string{"1", "2", "3", "4"}},
		{"category only", "work", "", []string{"2", "4"}},
		{"category without bookmarks", "news", "", []string{}},
		{"query matches name", model.FilterAll, "google", []string{"1"}},
		{"query matches url", model.FilterAll, "youtube.com", []string{"3"}},
		{"query matches category id", model.FilterAll, "entertain", []string{"3"}},
		{"query after category", "work", "lab", []string{"4"}},
		{"query excluded by category", "tools", "git", []string{}},
		{"no match", model.FilterAll, "zzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(FilterBookmarks(testBookmarks(), tt.filter, tt.query))
			if !equalIDs(got, tt.want) {
				t.Errorf("FilterBookmarks(%q, %q) = %v, want %v", tt.filter, tt.query, got, tt.want)
			}
		})
	}
}

func TestMatches_CaseInsensitive(t *testing.T) {
	b := model.Bookmark{Name: "GitHub", URL: "https://GitHub.com", Category: "work"}
	if !Matches(b, NormalizeQuery("GITHUB")) {
		t.Error("expected case-insensitive match")
	}
}

func TestFuzzySearchBookmarks_EmptyQuery(t *testing.T) {
	results := FuzzySearchBookmarks(testBookmarks(), "")
	if len(results) != 0 {
		t.Errorf("expected 0 results for empty query, got %d", len(results))
	}
}

func TestFuzzySearchBookmarks_ExactMatch(t *testing.T) {
	results := FuzzySearchBookmarks(testBookmarks(), "GitHub")

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Bookmark.Name != "GitHub" {
		t.Errorf("expected GitHub, got %s", results[0].Bookmark.Name)
	}
}

func TestFuzzySearchBookmarks_Subsequence(t *testing.T) {
	results := FuzzySearchBookmarks(testBookmarks(), "gt")

	found := map[string]bool{}
	for _, r := range results {
		found[r.Bookmark.Name] = true
	}
	if !found["GitHub"] || !found["GitLab"] {
		t.Errorf("expected GitHub and GitLab among results, got %v", found)
	}
	if found["YouTube"] {
		t.Error("YouTube should not match \"gt\"")
	}
}
