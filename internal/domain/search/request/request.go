package request

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/sitesearch/internal/domain"
	"github.com/kailas-cloud/sitesearch/internal/domain/search/view"
)

// MaxQueryLength is the maximum allowed search term length in bytes.
const MaxQueryLength = 1024

// Request is a validated search query.
type Request struct {
	term        string
	resultsView view.View
}

// New validates search parameters. An empty term is valid and renders an empty
// results container. An empty view falls back to def.
func New(term string, v, def view.View) (Request, error) {
	if len(term) > MaxQueryLength {
		return Request{}, fmt.Errorf("%w (max %d bytes)", domain.ErrQueryTooLong, MaxQueryLength)
	}
	if v == "" {
		v = def
	}
	if !v.IsValid() {
		return Request{}, fmt.Errorf("%w: %q", domain.ErrUnknownView, v)
	}
	return Request{term: term, resultsView: v}, nil
}

// Term returns the raw search term as typed by the user.
func (r *Request) Term() string { return r.term }

// View returns the requested results presentation.
func (r *Request) View() view.View { return r.resultsView }

// IsBlank reports whether the term is empty or whitespace only.
func (r *Request) IsBlank() bool { return strings.TrimSpace(r.term) == "" }
