package sitesearch

import "github.com/kailas-cloud/sitesearch/internal/domain/search/view"

// View selects how Render presents results.
type View string

// View constants.
const (
	ViewModal View = View(view.Modal)
	ViewList  View = View(view.List)
)

// Document is a page to index.
type Document struct {
	ID    int
	URL   string
	Title string
	Body  string
}

// Hit is one search match in rank order.
type Hit struct {
	Ref     int
	Score   float64
	URL     string
	Title   string
	Excerpt string
}

// HealthStatus represents the aggregated index health.
type HealthStatus struct {
	Status    string            // "ok", "degraded", "error"
	Checks    map[string]string // component -> "ok"/"error"
	Documents uint64
}
