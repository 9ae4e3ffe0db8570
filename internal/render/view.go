package render

// State is the outcome being presented.
type State string

// State constants.
const (
	// StateEmpty is a blank query: the container is left without entries.
	StateEmpty State = "empty"
	// StateNoResults is a query with zero matches: one placeholder entry.
	StateNoResults State = "no_results"
	// StateResults is a query with one or more matches.
	StateResults State = "results"
)

// Entry is a single rendered search hit.
type Entry struct {
	Title   string
	URL     string
	Excerpt string
}

// View is the structured input to a Renderer.
type View struct {
	Term    string
	State   State
	Entries []Entry
}

// IsEmpty reports a blank query.
func (v View) IsEmpty() bool { return v.State == StateEmpty }

// NoResults reports a query without matches.
func (v View) NoResults() bool { return v.State == StateNoResults }

// NewView classifies entries for term. A blank term always yields StateEmpty.
func NewView(term string, blank bool, entries []Entry) View {
	switch {
	case blank:
		return View{Term: term, State: StateEmpty}
	case len(entries) == 0:
		return View{Term: term, State: StateNoResults}
	default:
		return View{Term: term, State: StateResults, Entries: entries}
	}
}
