package document

import (
	"context"
	"testing"

	"github.com/kailas-cloud/sitesearch/internal/db"
	"github.com/kailas-cloud/sitesearch/internal/domain"
	domdoc "github.com/kailas-cloud/sitesearch/internal/domain/document"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	createIndexFn    func(ctx context.Context, def *db.IndexDefinition) error
	indexExistsFn    func(ctx context.Context, name string) (bool, error)
	indexDocumentsFn func(ctx context.Context, index string, docs []map[string]any) error
}

func (m *mockStore) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if m.createIndexFn != nil {
		return m.createIndexFn(ctx, def)
	}
	return nil
}

func (m *mockStore) IndexExists(ctx context.Context, name string) (bool, error) {
	if m.indexExistsFn != nil {
		return m.indexExistsFn(ctx, name)
	}
	return false, nil
}

func (m *mockStore) IndexDocuments(ctx context.Context, index string, docs []map[string]any) error {
	if m.indexDocumentsFn != nil {
		return m.indexDocumentsFn(ctx, index, docs)
	}
	return nil
}

// mockSource is a fixed, ordered document list.
type mockSource struct {
	docs []domdoc.Document
}

func (m *mockSource) Documents() []domdoc.Document { return m.docs }

func (m *mockSource) Lookup(id int) (domdoc.Document, bool) {
	for _, d := range m.docs {
		if d.ID() == id {
			return d, true
		}
	}
	return domdoc.Document{}, false
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	src := &mockSource{docs: []domdoc.Document{
		domdoc.Reconstruct(0, "/a", "Alpha", "first body"),
		domdoc.Reconstruct(1, "/b", "Beta", ""),
	}}
	return New(ms, src, domain.DefaultIndexConfig()), ms
}
