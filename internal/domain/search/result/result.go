package result

// Result is a single search hit as ranked by the index.
type Result struct {
	ref   int
	score float64
}

// New creates a search result.
func New(ref int, score float64) Result {
	return Result{ref: ref, score: score}
}

// Ref returns the referenced document identifier.
func (r *Result) Ref() int { return r.ref }

// Score returns the engine-assigned relevance score. Opaque outside the index.
func (r *Result) Score() float64 { return r.score }
