package search

import (
	"context"
	"testing"

	"github.com/kailas-cloud/sitesearch/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	searchTextFn func(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
	docCountFn   func(ctx context.Context, index string) (uint64, error)
}

func (m *mockStore) SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error) {
	if m.searchTextFn != nil {
		return m.searchTextFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) DocCount(ctx context.Context, index string) (uint64, error) {
	if m.docCountFn != nil {
		return m.docCountFn(ctx, index)
	}
	return 0, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, "site"), ms
}
