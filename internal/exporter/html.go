package exporter

import (
	"fmt"
	"html"
	"strings"

	"github.com/nikbrunner/bmdash/internal/model"
)

// ExportHTML exports the store to Netscape bookmark HTML format.
// Each category becomes a folder in display order; bookmarks whose
// category is unknown are written at the top level.
func ExportHTML(store *model.Store) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	byCategory := make(map[string][]model.Bookmark)
	for _, bm := range store.Bookmarks {
		byCategory[bm.Category] = append(byCategory[bm.Category], bm)
	}

	prefix := "    "
	for _, c := range store.Categories {
		fmt.Fprintf(&b, "%s<DT><H3>%s</H3>\n", prefix, html.EscapeString(c.Name))
		fmt.Fprintf(&b, "%s<DL><p>\n", prefix)
		writeBookmarks(&b, byCategory[c.ID], prefix+"    ")
		fmt.Fprintf(&b, "%s</DL><p>\n", prefix)
		delete(byCategory, c.ID)
	}

	// Orphans keep their relative order.
	var orphans []model.Bookmark
	for _, bm := range store.Bookmarks {
		if _, ok := byCategory[bm.Category]; ok {
			orphans = append(orphans, bm)
		}
	}
	writeBookmarks(&b, orphans, prefix)

	b.WriteString("</DL><p>\n")
	return b.String()
}

func writeBookmarks(b *strings.Builder, bookmarks []model.Bookmark, prefix string) {
	for _, bm := range bookmarks {
		fmt.Fprintf(b,
			"%s<DT><A HREF=\"%s\" ADD_DATE=\"%d\">%s</A>\n",
			prefix,
			html.EscapeString(bm.URL),
			bm.CreatedAt.Unix(),
			html.EscapeString(bm.Name),
		)
	}
}
