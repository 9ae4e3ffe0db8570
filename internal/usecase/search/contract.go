package search

import (
	"context"
	"time"

	domdoc "github.com/kailas-cloud/sitesearch/internal/domain/document"
	"github.com/kailas-cloud/sitesearch/internal/domain/search/result"
)

// Index answers full-text queries with hits in rank order.
type Index interface {
	Search(ctx context.Context, term string) ([]result.Result, error)
}

// DocumentReader resolves hit references to corpus documents.
type DocumentReader interface {
	Get(ctx context.Context, id int) (domdoc.Document, error)
}

// Observer records search outcomes. Optional.
type Observer interface {
	ObserveSearch(outcome string, elapsed time.Duration)
	// ObserveDanglingReference is called once per hit whose reference is not
	// in the corpus.
	ObserveDanglingReference(ref int)
}
