package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/sitesearch/internal/domain"
	domdoc "github.com/kailas-cloud/sitesearch/internal/domain/document"
	"github.com/kailas-cloud/sitesearch/internal/logger"
	"github.com/kailas-cloud/sitesearch/internal/render"
)

// Search outcome labels.
const (
	OutcomeEmpty     = "empty"
	OutcomeNoResults = "no_results"
	OutcomeResults   = "results"
	OutcomeError     = "error"
)

// Outcome summarizes a single Resolve or HandleSearch call.
type Outcome struct {
	// Queried is false for blank terms.
	Queried bool
	// Matched is the number of hits returned by the index.
	Matched int
	// Rendered is the number of hits that resolved to a document; HandleSearch
	// writes exactly these entries to the surface.
	Rendered int
	// Skipped counts hits whose reference did not resolve to a document.
	Skipped int
}

// Hit is an index match resolved against the corpus.
type Hit struct {
	Ref     int
	Score   float64
	URL     string
	Title   string
	Excerpt string
}

// Service handles search-and-render requests.
type Service struct {
	index         Index
	docs          DocumentReader
	observer      Observer
	excerptLength int
}

// New creates a search service.
func New(index Index, docs DocumentReader) *Service {
	return &Service{index: index, docs: docs, excerptLength: domdoc.ExcerptLength}
}

// WithObserver sets the outcome observer.
func (s *Service) WithObserver(o Observer) *Service {
	s.observer = o
	return s
}

// WithExcerptLength overrides the excerpt length in characters.
func (s *Service) WithExcerptLength(n int) *Service {
	if n > 0 {
		s.excerptLength = n
	}
	return s
}

// Resolve queries the index for term and resolves every hit to its document,
// keeping index order. A blank term returns no hits without querying. Hits whose
// reference is not in the corpus are skipped, logged and reported to the
// observer.
func (s *Service) Resolve(ctx context.Context, term string) ([]Hit, Outcome, error) {
	start := time.Now()
	hits, out, err := s.resolve(ctx, term)
	switch {
	case err != nil:
		s.observe(OutcomeError, start)
	case !out.Queried:
		s.observe(OutcomeEmpty, start)
	case len(hits) == 0:
		s.observe(OutcomeNoResults, start)
	default:
		s.observe(OutcomeResults, start)
	}
	return hits, out, err
}

// HandleSearch resets the surface, resolves term and renders the hits with r in
// index order. A blank term renders an empty container without querying.
func (s *Service) HandleSearch(
	ctx context.Context, term string, surface *render.Surface, r render.Renderer,
) (Outcome, error) {
	start := time.Now()
	surface.Reset()

	hits, out, err := s.resolve(ctx, term)
	if err != nil {
		s.observe(OutcomeError, start)
		return out, err
	}

	var entries []render.Entry
	if out.Queried {
		entries = make([]render.Entry, len(hits))
		for i, h := range hits {
			entries[i] = render.Entry{Title: h.Title, URL: h.URL, Excerpt: h.Excerpt}
		}
	}
	if err := r.Render(surface, render.NewView(term, !out.Queried, entries)); err != nil {
		s.observe(OutcomeError, start)
		return out, err
	}

	switch {
	case !out.Queried:
		s.observe(OutcomeEmpty, start)
	case len(hits) == 0:
		s.observe(OutcomeNoResults, start)
	default:
		s.observe(OutcomeResults, start)
	}
	return out, nil
}

// resolve looks up every hit. Dangling references are dropped; other lookup
// failures abort.
func (s *Service) resolve(ctx context.Context, term string) ([]Hit, Outcome, error) {
	if strings.TrimSpace(term) == "" {
		return nil, Outcome{}, nil
	}

	results, err := s.index.Search(ctx, term)
	if err != nil {
		return nil, Outcome{Queried: true}, fmt.Errorf("search %q: %w", term, err)
	}

	out := Outcome{Queried: true, Matched: len(results)}
	hits := make([]Hit, 0, len(results))
	for i := range results {
		ref := results[i].Ref()
		doc, err := s.docs.Get(ctx, ref)
		if errors.Is(err, domain.ErrDocumentNotFound) {
			out.Skipped++
			logger.FromContext(ctx).Warn("skipping search hit",
				zap.Error(domain.NewDanglingReference(ref)),
				zap.Int("reference", ref),
				zap.Float64("score", results[i].Score()),
			)
			if s.observer != nil {
				s.observer.ObserveDanglingReference(ref)
			}
			continue
		}
		if err != nil {
			return nil, out, fmt.Errorf("get document %d: %w", ref, err)
		}

		hits = append(hits, Hit{
			Ref:     ref,
			Score:   results[i].Score(),
			URL:     doc.URL(),
			Title:   doc.Title(),
			Excerpt: doc.Excerpt(s.excerptLength),
		})
	}
	out.Rendered = len(hits)
	return hits, out, nil
}

func (s *Service) observe(outcome string, start time.Time) {
	if s.observer != nil {
		s.observer.ObserveSearch(outcome, time.Since(start))
	}
}
