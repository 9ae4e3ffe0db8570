package document

import (
	"fmt"
	"unicode/utf8"
)

// Excerpt defaults used by search result rendering.
const (
	// ExcerptLength is the number of body characters kept in an excerpt.
	ExcerptLength = 160
	// ExcerptMarker is appended to every excerpt.
	ExcerptMarker = "..."
)

// Document is a single searchable page of the site (immutable value object).
type Document struct {
	id    int
	url   string
	title string
	body  string
}

// New validates and creates a Document.
// ID must be non-negative and URL non-empty. Title and body may be empty.
func New(id int, url, title, body string) (Document, error) {
	if id < 0 {
		return Document{}, fmt.Errorf("document ID must be non-negative, got %d", id)
	}
	if url == "" {
		return Document{}, fmt.Errorf("document %d: url is required", id)
	}
	return Document{id: id, url: url, title: title, body: body}, nil
}

// Reconstruct creates a Document without validation.
func Reconstruct(id int, url, title, body string) Document {
	return Document{id: id, url: url, title: title, body: body}
}

// ID returns the document identifier (the index reference field).
func (d *Document) ID() int { return d.id }

// URL returns the site-relative link to the page.
func (d *Document) URL() string { return d.url }

// Title returns the page title.
func (d *Document) Title() string { return d.title }

// Body returns the plain page text.
func (d *Document) Body() string { return d.body }

// Excerpt returns the first n characters of the body followed by ExcerptMarker.
// Characters are counted as Unicode code points, so multi-byte text is never split.
func (d *Document) Excerpt(n int) string {
	return truncate(d.body, n) + ExcerptMarker
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
