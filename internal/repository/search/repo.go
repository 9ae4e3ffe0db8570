package search

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kailas-cloud/sitesearch/internal/db"
	"github.com/kailas-cloud/sitesearch/internal/domain"
	"github.com/kailas-cloud/sitesearch/internal/domain/search/result"
)

// store is the consumer interface for search operations (ISP).
type store interface {
	SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
	DocCount(ctx context.Context, index string) (uint64, error)
}

// Repo implements usecase/search.Index.
type Repo struct {
	store     store
	indexName string
}

// New creates a search repository over the named index.
func New(s store, indexName string) *Repo {
	return &Repo{store: s, indexName: indexName}
}

// Search returns every match for term in engine rank order.
func (r *Repo) Search(ctx context.Context, term string) ([]result.Result, error) {
	sr, err := r.store.SearchText(ctx, &db.TextQuery{
		IndexName: r.indexName,
		Query:     term,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: search %s: %w", domain.ErrIndexUnavailable, r.indexName, err)
	}
	return parseResults(sr)
}

// DocCount returns the number of indexed documents.
func (r *Repo) DocCount(ctx context.Context) (uint64, error) {
	n, err := r.store.DocCount(ctx, r.indexName)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrIndexUnavailable, err)
	}
	return n, nil
}

// parseResults converts db.SearchResult into []result.Result, preserving order.
func parseResults(sr *db.SearchResult) ([]result.Result, error) {
	if sr == nil || len(sr.Entries) == 0 {
		return nil, nil
	}

	results := make([]result.Result, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		ref, err := strconv.Atoi(entry.Key)
		if err != nil {
			return nil, fmt.Errorf("parse reference %q: %w", entry.Key, err)
		}
		results = append(results, result.New(ref, entry.Score))
	}
	return results, nil
}
