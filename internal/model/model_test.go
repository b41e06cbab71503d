package model_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gotest.tools/v3/assert"

	"github.com/nikbrunner/bmdash/internal/model"
)

func categoryIDs(cats []model.Category) []string {
	ids := make([]string, len(cats))
	for i, c := range cats {
		ids[i] = c.ID
	}
	return ids
}

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s%d", prefix, n)
	}
}

func TestCategoryIDFromName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Work", "work"},
		{"Side Projects", "side-projects"},
		{"  Read   Later  ", "read-later"},
		{"Tabs\tand\nLines", "tabs-and-lines"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := model.CategoryIDFromName(tt.name); got != tt.want {
				t.Errorf("CategoryIDFromName(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestNormalizeColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"#ff00aa", "#FF00AA"},
		{"ff00aa", "#FF00AA"},
		{" #abcdef ", "#ABCDEF"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := model.NormalizeColor(tt.in); got != tt.want {
			t.Errorf("NormalizeColor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidateColor(t *testing.T) {
	tests := []struct {
		color   string
		wantErr bool
	}{
		{"#FF00AA", false},
		{"#ff00aa", false},
		{"#FFF", true},
		{"#GGGGGG", true},
		{"FF00AA", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.color, func(t *testing.T) {
			err := model.ValidateColor(tt.color)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateColor(%q) error = %v, wantErr %v", tt.color, err, tt.wantErr)
			}
		})
	}
}

func TestBookmarkInput_Validate(t *testing.T) {
	tests := []struct {
		name      string
		input     model.BookmarkInput
		wantField string
	}{
		{"valid", model.BookmarkInput{Name: "Go", URL: "https://go.dev"}, ""},
		{"valid non-web scheme", model.BookmarkInput{Name: "Mail", URL: "mailto:me@example.com"}, ""},
		{"valid file url", model.BookmarkInput{Name: "Notes", URL: "file:///home/me/notes.txt"}, ""},
		{"empty name", model.BookmarkInput{Name: "", URL: "https://go.dev"}, "name"},
		{"empty url", model.BookmarkInput{Name: "Go", URL: ""}, "url"},
		{"relative url", model.BookmarkInput{Name: "Go", URL: "go.dev"}, "url"},
		{"missing host", model.BookmarkInput{Name: "Go", URL: "https://"}, "url"},
		{"space in host", model.BookmarkInput{Name: "Go", URL: "https://go dev"}, "url"},
		{"plain words", model.BookmarkInput{Name: "Go", URL: "not a url"}, "url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Normalize().Validate()
			if tt.wantField == "" {
				assert.NilError(t, err)
				return
			}

			var verrs validation.Errors
			assert.Assert(t, errors.As(err, &verrs), "got %v", err)
			_, ok := verrs[tt.wantField]
			assert.Assert(t, ok, "expected error on %q, got %v", tt.wantField, verrs)
		})
	}
}

func TestBookmarkInput_Normalize(t *testing.T) {
	in := model.BookmarkInput{Name: "  Go  ", URL: " https://go.dev ", Category: " work "}
	got := in.Normalize()
	assert.Equal(t, got, model.BookmarkInput{Name: "Go", URL: "https://go.dev", Category: "work"})
}

func TestCategoryInput_Validate(t *testing.T) {
	assert.NilError(t, model.CategoryInput{Name: "Reading", Color: "#112233"}.Validate())
	assert.NilError(t, model.CategoryInput{Name: "Reading"}.Validate())
	assert.ErrorContains(t, model.CategoryInput{Name: "  "}.Normalize().Validate(), "name")
	assert.ErrorContains(t, model.CategoryInput{Name: "Reading", Color: "#12"}.Validate(), "hex color")
}

func TestNewBookmark(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	b := model.NewBookmark(model.NewBookmarkParams{
		Name:     " Go ",
		URL:      " https://go.dev ",
		Category: "tools",
		Now:      now,
	})

	assert.Assert(t, b.ID != "")
	assert.Equal(t, b.Name, "Go")
	assert.Equal(t, b.URL, "https://go.dev")
	assert.Equal(t, b.Category, "tools")
	assert.Equal(t, b.CreatedAt, now)
	assert.Assert(t, b.UpdatedAt == nil)

	other := model.NewBookmark(model.NewBookmarkParams{Name: "x", URL: "https://x.io"})
	assert.Assert(t, other.ID != b.ID)
}

func TestDefaultCategories(t *testing.T) {
	cats := model.DefaultCategories()
	assert.DeepEqual(t, categoryIDs(cats), []string{"general", "work", "entertainment", "shopping", "news", "tools"})
	for _, c := range cats {
		if !c.IsDefault {
			t.Errorf("category %q should be a default", c.ID)
		}
		if err := model.ValidateColor(c.Color); err != nil {
			t.Errorf("category %q has invalid color %q", c.ID, c.Color)
		}
	}
}

func TestStore_PrependAndRemoveBookmark(t *testing.T) {
	store := model.NewStore()
	store.PrependBookmark(model.Bookmark{ID: "a", Category: "general"})
	store.PrependBookmark(model.Bookmark{ID: "b", Category: "general"})

	assert.Equal(t, store.Bookmarks[0].ID, "b")
	assert.Assert(t, store.GetBookmarkByID("a") != nil)

	assert.Assert(t, !store.RemoveBookmark("missing"))
	assert.Equal(t, len(store.Bookmarks), 2)

	assert.Assert(t, store.RemoveBookmark("b"))
	assert.Equal(t, len(store.Bookmarks), 1)
	assert.Assert(t, store.GetBookmarkByID("b") == nil)
}

func TestStore_MoveCategory(t *testing.T) {
	tests := []struct {
		name    string
		dragged string
		target  string
		want    []string
	}{
		{"forward", "a", "c", []string{"b", "c", "a", "d", "e"}},
		{"backward", "d", "b", []string{"a", "d", "b", "c", "e"}},
		{"to front", "e", "a", []string{"e", "a", "b", "c", "d"}},
		{"to end", "a", "e", []string{"b", "c", "d", "e", "a"}},
		{"adjacent", "b", "c", []string{"a", "c", "b", "d", "e"}},
		{"onto itself", "c", "c", []string{"a", "b", "c", "d", "e"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &model.Store{}
			for _, id := range []string{"a", "b", "c", "d", "e"} {
				store.Categories = append(store.Categories, model.Category{ID: id, Name: id})
			}

			assert.NilError(t, store.MoveCategory(tt.dragged, tt.target))
			assert.DeepEqual(t, categoryIDs(store.Categories), tt.want)
		})
	}
}

func TestStore_MoveCategory_PreservesOthers(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e", "f"}
	for _, dragged := range ids {
		for _, target := range ids {
			store := &model.Store{}
			for _, id := range ids {
				store.Categories = append(store.Categories, model.Category{ID: id})
			}
			assert.NilError(t, store.MoveCategory(dragged, target))

			var rest []string
			for _, id := range categoryIDs(store.Categories) {
				if id != dragged {
					rest = append(rest, id)
				}
			}
			var want []string
			for _, id := range ids {
				if id != dragged {
					want = append(want, id)
				}
			}
			assert.DeepEqual(t, rest, want)
		}
	}
}

func TestStore_MoveCategory_Unknown(t *testing.T) {
	store := model.NewStore()
	err := store.MoveCategory("nope", "work")
	assert.Assert(t, errors.Is(err, model.ErrCategoryNotFound))
}

func TestStore_HasCategoryName(t *testing.T) {
	store := model.NewStore()

	assert.Assert(t, store.HasCategoryName("WORK", ""))
	assert.Assert(t, store.HasCategoryName(" work ", ""))
	assert.Assert(t, !store.HasCategoryName("Work", "work"))
	assert.Assert(t, !store.HasCategoryName("Reading", ""))
}

func TestStore_ReassignAndRemoveCategory(t *testing.T) {
	store := model.NewStore()
	store.Categories = append(store.Categories, model.Category{ID: "reading", Name: "Reading"})
	store.Bookmarks = []model.Bookmark{
		{ID: "1", Category: "reading"},
		{ID: "2", Category: "work"},
		{ID: "3", Category: "reading"},
	}

	assert.Equal(t, store.ReassignCategory("reading", model.GeneralCategoryID), 2)
	assert.Assert(t, store.RemoveCategory("reading"))
	assert.Assert(t, store.GetCategoryByID("reading") == nil)
	assert.Equal(t, store.CountByCategory()[model.GeneralCategoryID], 2)
	assert.Equal(t, store.CountByCategory()["work"], 1)
}

func TestStore_ReconcileReferences(t *testing.T) {
	store := model.NewStore()
	store.Bookmarks = []model.Bookmark{
		{ID: "1", Category: "work"},
		{ID: "2", Category: "gone"},
		{ID: "3", Category: ""},
	}

	assert.Equal(t, store.ReconcileReferences(), 2)
	assert.Equal(t, store.Bookmarks[0].Category, "work")
	assert.Equal(t, store.Bookmarks[1].Category, model.GeneralCategoryID)
	assert.Equal(t, store.Bookmarks[2].Category, model.GeneralCategoryID)
}

func TestStore_EnsureGeneral(t *testing.T) {
	store := &model.Store{Categories: []model.Category{{ID: "work", Name: "Work"}}}

	assert.Assert(t, store.EnsureGeneral())
	assert.DeepEqual(t, categoryIDs(store.Categories), []string{"general", "work"})
	assert.Assert(t, !store.EnsureGeneral())
}

func TestStore_EnsureGeneral_RestoresDefaultFlag(t *testing.T) {
	store := &model.Store{Categories: []model.Category{
		{ID: "work", Name: "Work"},
		{ID: "general", Name: "General"},
	}}

	assert.Assert(t, !store.EnsureGeneral())
	assert.DeepEqual(t, categoryIDs(store.Categories), []string{"work", "general"})
	assert.Assert(t, store.Categories[1].IsDefault)
}

func TestStore_ImportMerge(t *testing.T) {
	store := model.NewStore()
	store.Bookmarks = []model.Bookmark{{ID: "1", Name: "Existing", Category: "work"}}

	res := store.ImportMerge(
		[]model.Category{
			{ID: "work", Name: "Work", IsDefault: true},
			{ID: "reading", Name: "Reading", Color: "#123456", IsDefault: true},
			{ID: "jobs", Name: "WORK"},
			{Name: "No Id"},
		},
		[]model.Bookmark{
			{ID: "1", Name: "Clash", Category: "reading"},
			{ID: "9", Name: "Job", Category: "jobs"},
			{ID: "", Name: "Blank", Category: "nowhere"},
			{ID: "10", Name: "Derived", Category: "no-id"},
		},
		sequentialIDs("new-"),
	)

	assert.Equal(t, res.CategoriesAdded, 2)
	assert.Equal(t, res.BookmarksAdded, 4)
	assert.DeepEqual(t, categoryIDs(store.Categories),
		[]string{"general", "work", "entertainment", "shopping", "news", "tools", "reading", "no-id"})

	reading := store.GetCategoryByID("reading")
	assert.Assert(t, reading != nil)
	assert.Assert(t, !reading.IsDefault)
	assert.Equal(t, store.GetCategoryByID("no-id").Color, model.DefaultColor)

	assert.Equal(t, len(store.Bookmarks), 5)
	assert.Equal(t, store.Bookmarks[0].ID, "1")
	assert.Equal(t, store.Bookmarks[1].ID, "new-1")
	assert.Equal(t, store.Bookmarks[1].Category, "reading")
	assert.Equal(t, store.Bookmarks[2].ID, "9")
	assert.Equal(t, store.Bookmarks[2].Category, "work")
	assert.Equal(t, store.Bookmarks[3].ID, "new-2")
	assert.Equal(t, store.Bookmarks[3].Category, model.GeneralCategoryID)
	assert.Equal(t, store.Bookmarks[4].Category, "no-id")
}

func TestStore_Clone(t *testing.T) {
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store := model.NewStore()
	store.Bookmarks = []model.Bookmark{{ID: "1", Name: "a", UpdatedAt: &ts}}

	clone := store.Clone()
	clone.Bookmarks[0].Name = "b"
	*clone.Bookmarks[0].UpdatedAt = ts.Add(time.Hour)
	clone.Categories[0].Name = "Changed"

	assert.Equal(t, store.Bookmarks[0].Name, "a")
	assert.Equal(t, *store.Bookmarks[0].UpdatedAt, ts)
	assert.Equal(t, store.Categories[0].Name, "General")
}
