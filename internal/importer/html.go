package importer

import (
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/nikbrunner/bmdash/internal/model"
)

// ParseHTMLBookmarks parses a Netscape bookmark file. Every folder becomes
// a category; nested folders are flattened onto the innermost folder and
// bookmarks outside any folder land in general. Links without a usable
// URL are skipped and counted.
func ParseHTMLBookmarks(r io.Reader) (Payload, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return Payload{}, invalid(err.Error())
	}

	payload := Payload{Format: FormatHTML}
	seen := make(map[string]bool)

	var folderStack []string // category IDs, empty = root
	pendingFolder := ""      // category waiting for its DL

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				name := getTextContent(n)
				if name == "" {
					return
				}
				id := model.CategoryIDFromName(name)
				if !seen[id] {
					seen[id] = true
					payload.Categories = append(payload.Categories, model.Category{
						ID:    id,
						Name:  name,
						Color: model.DefaultColor,
					})
				}
				pendingFolder = id
				return

			case "a":
				href := getAttr(n, "href")
				if href == "" {
					return
				}

				name := getTextContent(n)
				if name == "" {
					name = href
				}

				category := model.GeneralCategoryID
				if len(folderStack) > 0 {
					category = folderStack[len(folderStack)-1]
				}

				in := model.BookmarkInput{Name: name, URL: href, Category: category}.Normalize()
				if err := in.Validate(); err != nil {
					payload.Skipped++
					return
				}

				createdAt := time.Now()
				if addDate := getAttr(n, "add_date"); addDate != "" {
					if ts, err := strconv.ParseInt(addDate, 10, 64); err == nil {
						createdAt = time.Unix(ts, 0)
					}
				}

				payload.Bookmarks = append(payload.Bookmarks, model.Bookmark{
					ID:        model.GenerateID(),
					Name:      in.Name,
					URL:       in.URL,
					Category:  in.Category,
					CreatedAt: createdAt,
				})
				return

			case "dl":
				pushed := false
				if pendingFolder != "" {
					folderStack = append(folderStack, pendingFolder)
					pendingFolder = ""
					pushed = true
				}

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushed {
					folderStack = folderStack[:len(folderStack)-1]
				}
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return payload, nil
}

// getTextContent returns the trimmed text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if strings.EqualFold(attr.Key, key) {
			return attr.Val
		}
	}
	return ""
}
