package health

import "context"

// IndexPinger checks index store availability.
type IndexPinger interface {
	Ping(ctx context.Context) error
}

// DocCounter reports how many documents the search index holds.
type DocCounter interface {
	DocCount(ctx context.Context) (uint64, error)
}
