package exporter

import (
	"strings"
	"testing"
	"time"

	"github.com/nikbrunner/bmdash/internal/model"
)

func TestExportHTML_EmptyStore(t *testing.T) {
	html := ExportHTML(&model.Store{})

	if !strings.Contains(html, "<!DOCTYPE NETSCAPE-Bookmark-file-1>") {
		t.Error("expected DOCTYPE declaration")
	}
	if !strings.Contains(html, "<TITLE>Bookmarks</TITLE>") {
		t.Error("expected TITLE element")
	}
	if !strings.Contains(html, "<H1>Bookmarks</H1>") {
		t.Error("expected H1 element")
	}
}

func TestExportHTML_BookmarkInCategory(t *testing.T) {
	store := model.NewStore()
	store.Bookmarks = []model.Bookmark{{
		ID:        "b1",
		Name:      "GitHub",
		URL:       "https://github.com",
		Category:  "work",
		CreatedAt: time.Unix(1700000000, 0),
	}}

	html := ExportHTML(store)

	if !strings.Contains(html, `<A HREF="https://github.com" ADD_DATE="1700000000">GitHub</A>`) {
		t.Error("expected bookmark line")
	}

	work := strings.Index(html, "<H3>Work</H3>")
	link := strings.Index(html, "GitHub</A>")
	shopping := strings.Index(html, "<H3>Shopping</H3>")
	if work < 0 || link < work || shopping < link {
		t.Errorf("expected bookmark inside the Work folder, got:\n%s", html)
	}
}

func TestExportHTML_CategoryOrder(t *testing.T) {
	store := &model.Store{Categories: []model.Category{
		{ID: "b", Name: "Beta"},
		{ID: "a", Name: "Alpha"},
	}}

	html := ExportHTML(store)

	if strings.Index(html, "Beta") > strings.Index(html, "Alpha") {
		t.Error("expected folders in display order")
	}
}

func TestExportHTML_OrphansAtTopLevel(t *testing.T) {
	store := &model.Store{
		Categories: []model.Category{{ID: "general", Name: "General"}},
		Bookmarks: []model.Bookmark{
			{ID: "1", Name: "Lost", URL: "https://lost.example", Category: "gone"},
		},
	}

	html := ExportHTML(store)

	closeGeneral := strings.Index(html, "    </DL><p>")
	lost := strings.Index(html, "Lost</A>")
	if lost < closeGeneral {
		t.Errorf("expected orphan after the last folder, got:\n%s", html)
	}
}

func TestExportHTML_EscapesSpecialCharacters(t *testing.T) {
	store := &model.Store{
		Categories: []model.Category{{ID: "r-d", Name: "R&D <Lab>"}},
		Bookmarks: []model.Bookmark{
			{ID: "1", Name: `Tom & "Jerry"`, URL: "https://example.com/?a=1&b=2", Category: "r-d"},
		},
	}

	html := ExportHTML(store)

	if !strings.Contains(html, "R&amp;D &lt;Lab&gt;") {
		t.Error("expected escaped folder name")
	}
	if !strings.Contains(html, "Tom &amp; &#34;Jerry&#34;") {
		t.Error("expected escaped bookmark name")
	}
	if !strings.Contains(html, "https://example.com/?a=1&amp;b=2") {
		t.Error("expected escaped URL")
	}
}
