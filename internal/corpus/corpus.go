// Package corpus holds the fixed, ordered collection of site documents that the
// search index is built from.
package corpus

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kailas-cloud/sitesearch/internal/domain"
	"github.com/kailas-cloud/sitesearch/internal/domain/document"
)

//go:embed documents.json
var embedded []byte

// record is the on-disk shape of a document produced by the site build.
type record struct {
	ID    int    `json:"id"`
	URL   string `json:"url"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Corpus is an immutable, ordered document collection.
type Corpus struct {
	docs []document.Document
	byID map[int]int
}

// New builds a Corpus from documents in ingestion order. IDs must be unique.
func New(docs []document.Document) (*Corpus, error) {
	c := &Corpus{
		docs: make([]document.Document, len(docs)),
		byID: make(map[int]int, len(docs)),
	}
	for i := range docs {
		id := docs[i].ID()
		if _, dup := c.byID[id]; dup {
			return nil, fmt.Errorf("%w: duplicate document id %d", domain.ErrInvalidCorpus, id)
		}
		c.docs[i] = docs[i]
		c.byID[id] = i
	}
	return c, nil
}

// Load decodes a JSON array of {id, url, title, body} records. Titles and
// bodies are stripped of markup and their whitespace is collapsed.
func Load(r io.Reader) (*Corpus, error) {
	var records []record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", domain.ErrInvalidCorpus, err)
	}

	docs := make([]document.Document, 0, len(records))
	for _, rec := range records {
		doc, err := document.New(rec.ID, rec.URL, plainText(rec.Title), plainText(rec.Body))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidCorpus, err)
		}
		docs = append(docs, doc)
	}
	return New(docs)
}

// LoadFile reads a corpus from a JSON file written by the site build.
func LoadFile(path string) (*Corpus, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open corpus %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return Load(f)
}

// Default returns the corpus embedded into the binary at build time.
func Default() (*Corpus, error) {
	return Load(bytes.NewReader(embedded))
}

// Documents returns the documents in ingestion order.
// The returned slice must not be modified.
func (c *Corpus) Documents() []document.Document { return c.docs }

// Lookup returns the document with the given id.
func (c *Corpus) Lookup(id int) (document.Document, bool) {
	i, ok := c.byID[id]
	if !ok {
		return document.Document{}, false
	}
	return c.docs[i], true
}

// Len returns the number of documents.
func (c *Corpus) Len() int { return len(c.docs) }
