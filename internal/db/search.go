package db

// TextQuery is the input for full-text search.
type TextQuery struct {
	IndexName string
	Query     string
	// Size caps the number of hits. Zero returns every match.
	Size int
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit, in engine rank order.
type SearchEntry struct {
	Key   string
	Score float64
}
