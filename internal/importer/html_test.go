package importer_test

import (
	"strings"
	"testing"
	"time"

	"github.com/nikbrunner/bmdash/internal/importer"
	"github.com/nikbrunner/bmdash/internal/model"
)

func TestParseHTML_SingleBookmark(t *testing.T) {
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
    <DT><A HREF="https://example.com" ADD_DATE="1234567890">Example Site</A>
</DL><p>`

	p, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(p.Categories) != 0 {
		t.Errorf("expected 0 categories, got %d", len(p.Categories))
	}
	if len(p.Bookmarks) != 1 {
		t.Fatalf("expected 1 bookmark, got %d", len(p.Bookmarks))
	}

	b := p.Bookmarks[0]
	if b.Name != "Example Site" {
		t.Errorf("expected name 'Example Site', got %q", b.Name)
	}
	if b.URL != "https://example.com" {
		t.Errorf("expected URL 'https://example.com', got %q", b.URL)
	}
	if b.Category != model.GeneralCategoryID {
		t.Errorf("expected root bookmark in general, got %q", b.Category)
	}
	if b.ID == "" {
		t.Error("expected non-empty ID")
	}
}

func TestParseHTML_NestedFolders(t *testing.T) {
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
    <DT><H3 ADD_DATE="1234567890">Development</H3>
    <DL><p>
        <DT><H3 ADD_DATE="1234567890">Side Projects</H3>
        <DL><p>
            <DT><A HREF="https://react.dev" ADD_DATE="1234567890">React Docs</A>
        </DL><p>
        <DT><A HREF="https://github.com" ADD_DATE="1234567890">GitHub</A>
    </DL><p>
    <DT><A HREF="https://google.com" ADD_DATE="1234567890">Google</A>
</DL><p>`

	p, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(p.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(p.Categories))
	}
	if p.Categories[0].ID != "development" || p.Categories[1].ID != "side-projects" {
		t.Errorf("unexpected category ids: %q, %q", p.Categories[0].ID, p.Categories[1].ID)
	}
	if p.Categories[1].Name != "Side Projects" {
		t.Errorf("expected name 'Side Projects', got %q", p.Categories[1].Name)
	}

	want := map[string]string{
		"React Docs": "side-projects",
		"GitHub":     "development",
		"Google":     model.GeneralCategoryID,
	}
	if len(p.Bookmarks) != len(want) {
		t.Fatalf("expected %d bookmarks, got %d", len(want), len(p.Bookmarks))
	}
	for _, b := range p.Bookmarks {
		if want[b.Name] != b.Category {
			t.Errorf("bookmark %q: expected category %q, got %q", b.Name, want[b.Name], b.Category)
		}
	}
}

func TestParseHTML_DuplicateFolderNames(t *testing.T) {
	html := `<DL><p>
    <DT><H3>News</H3>
    <DL><p><DT><A HREF="https://a.example">A</A></DL><p>
    <DT><H3>news</H3>
    <DL><p><DT><A HREF="https://b.example">B</A></DL><p>
</DL><p>`

	p, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Categories) != 1 {
		t.Errorf("expected folders with the same id to collapse, got %d categories", len(p.Categories))
	}
	for _, b := range p.Bookmarks {
		if b.Category != "news" {
			t.Errorf("bookmark %q: expected news, got %q", b.Name, b.Category)
		}
	}
}

func TestParseHTML_EmptyFile(t *testing.T) {
	p, err := importer.ParseHTMLBookmarks(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Bookmarks) != 0 || len(p.Categories) != 0 {
		t.Errorf("expected empty payload, got %d bookmarks, %d categories", len(p.Bookmarks), len(p.Categories))
	}
}

func TestParseHTML_Timestamps(t *testing.T) {
	html := `<DL><p>
    <DT><A HREF="https://example.com" ADD_DATE="1700000000">Example</A>
</DL><p>`

	p, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := time.Unix(1700000000, 0)
	if !p.Bookmarks[0].CreatedAt.Equal(want) {
		t.Errorf("expected CreatedAt %v, got %v", want, p.Bookmarks[0].CreatedAt)
	}
}

func TestParseHTML_SkipsUnusableLinks(t *testing.T) {
	html := `<DL><p>
    <DT><A>No href</A>
    <DT><A HREF="relative/path">Relative</A>
    <DT><A HREF="https://valid.com">Valid</A>
    <DT><A HREF="https://untitled.example"></A>
</DL><p>`

	p, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(p.Bookmarks) != 2 {
		t.Fatalf("expected 2 bookmarks, got %d", len(p.Bookmarks))
	}
	if p.Skipped != 1 {
		t.Errorf("expected 1 skipped link, got %d", p.Skipped)
	}
	if p.Bookmarks[1].Name != "https://untitled.example" {
		t.Errorf("expected URL as fallback name, got %q", p.Bookmarks[1].Name)
	}
}
