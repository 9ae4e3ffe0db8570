package db

import "context"

// Store is the search engine facade combining all sub-interfaces.
type Store interface {
	Pinger
	IndexManager
	Indexer
	Searcher
	Close() error
}

// Pinger checks that the engine can serve requests.
type Pinger interface {
	Ping(ctx context.Context) error
}

// IndexManager provides index lifecycle operations.
type IndexManager interface {
	CreateIndex(ctx context.Context, def *IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Indexer bulk-loads documents into an index.
// Each document is keyed by the value of the index's reference field.
type Indexer interface {
	IndexDocuments(ctx context.Context, index string, docs []map[string]any) error
}

// Searcher provides query operations over indexes.
type Searcher interface {
	SearchText(ctx context.Context, q *TextQuery) (*SearchResult, error)
	DocCount(ctx context.Context, index string) (uint64, error)
}
