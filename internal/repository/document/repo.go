package document

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/sitesearch/internal/db"
	"github.com/kailas-cloud/sitesearch/internal/domain"
	domdoc "github.com/kailas-cloud/sitesearch/internal/domain/document"
)

// store is the consumer interface for building the index (ISP).
type store interface {
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	IndexDocuments(ctx context.Context, index string, docs []map[string]any) error
}

// source is the ordered, immutable document collection.
type source interface {
	Documents() []domdoc.Document
	Lookup(id int) (domdoc.Document, bool)
}

// Repo resolves documents by id and loads them into the search index.
type Repo struct {
	store  store
	source source
	cfg    domain.IndexConfig
}

// New creates a document repository over the given source.
func New(s store, src source, cfg domain.IndexConfig) *Repo {
	return &Repo{store: s, source: src, cfg: cfg}
}

// Definition returns the index definition derived from the configured schema.
// A title field gets TitleBoost when it is set.
func (r *Repo) Definition() (*db.IndexDefinition, error) {
	b := db.NewIndex(r.cfg.Name).Ref(r.cfg.RefField)
	for _, f := range r.cfg.Fields {
		if f == "title" && r.cfg.TitleBoost > 0 {
			b.TextWithBoost(f, r.cfg.TitleBoost)
			continue
		}
		b.Text(f)
	}
	def, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("index definition: %w", err)
	}
	return def, nil
}

// BuildIndex creates the index and bulk-loads every document. Returns the number
// of documents loaded.
func (r *Repo) BuildIndex(ctx context.Context) (int, error) {
	def, err := r.Definition()
	if err != nil {
		return 0, err
	}

	exists, err := r.store.IndexExists(ctx, def.Name)
	if err != nil {
		return 0, fmt.Errorf("check index %s: %w", def.Name, err)
	}
	if exists {
		return 0, fmt.Errorf("build index %s: %w", def.Name, db.ErrIndexExists)
	}

	if err := r.store.CreateIndex(ctx, def); err != nil {
		return 0, fmt.Errorf("create index %s: %w", def.Name, err)
	}

	docs := r.source.Documents()
	items := make([]map[string]any, len(docs))
	for i := range docs {
		items[i] = toIndexItem(r.cfg.RefField, &docs[i])
	}

	if err := r.store.IndexDocuments(ctx, def.Name, items); err != nil {
		return 0, fmt.Errorf("load index %s: %w", def.Name, err)
	}
	return len(items), nil
}

// Get returns a document by id.
func (r *Repo) Get(_ context.Context, id int) (domdoc.Document, error) {
	doc, ok := r.source.Lookup(id)
	if !ok {
		return domdoc.Document{}, fmt.Errorf("document %d: %w", id, domain.ErrDocumentNotFound)
	}
	return doc, nil
}

func toIndexItem(refField string, doc *domdoc.Document) map[string]any {
	return map[string]any{
		refField: doc.ID(),
		"url":    doc.URL(),
		"title":  doc.Title(),
		"body":   doc.Body(),
	}
}
