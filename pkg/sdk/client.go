package sitesearch

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/sitesearch/internal/corpus"
	bleveStore "github.com/kailas-cloud/sitesearch/internal/db/bleve"
	"github.com/kailas-cloud/sitesearch/internal/domain"
	domdoc "github.com/kailas-cloud/sitesearch/internal/domain/document"
	"github.com/kailas-cloud/sitesearch/internal/domain/search/request"
	"github.com/kailas-cloud/sitesearch/internal/domain/search/view"
	"github.com/kailas-cloud/sitesearch/internal/render"
	documentrepo "github.com/kailas-cloud/sitesearch/internal/repository/document"
	searchrepo "github.com/kailas-cloud/sitesearch/internal/repository/search"
	healthuc "github.com/kailas-cloud/sitesearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/sitesearch/internal/usecase/search"
)

// Client is the sitesearch SDK entry point. Safe for concurrent use.
type Client struct {
	store     *bleveStore.Store
	size      int
	searchSvc *searchuc.Service
	healthSvc healthUseCase
	obs       *observer
}

// New loads the corpus and builds the in-memory index.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		indexName:     domain.DefaultIndexConfig().Name,
		excerptLength: domdoc.ExcerptLength,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	src, err := loadCorpus(cfg)
	if err != nil {
		return nil, err
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	indexCfg := domain.DefaultIndexConfig()
	indexCfg.Name = cfg.indexName
	indexCfg.TitleBoost = cfg.titleBoost

	store := bleveStore.NewStore()
	docRepo := documentrepo.New(store, src, indexCfg)

	done := obs.track("build_index")
	_, err = docRepo.BuildIndex(ctx)
	done(err)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("sitesearch: %w", err)
	}

	searchRepo := searchrepo.New(store, indexCfg.Name)
	return &Client{
		store: store,
		size:  src.Len(),
		searchSvc: searchuc.New(searchRepo, docRepo).
			WithObserver(obs).
			WithExcerptLength(cfg.excerptLength),
		healthSvc: healthuc.New(store, searchRepo, src.Len()),
		obs:       obs,
	}, nil
}

func loadCorpus(cfg *clientConfig) (*corpus.Corpus, error) {
	switch {
	case cfg.documents != nil:
		docs := make([]domdoc.Document, 0, len(cfg.documents))
		for _, d := range cfg.documents {
			doc, err := domdoc.New(d.ID, d.URL, d.Title, d.Body)
			if err != nil {
				return nil, fmt.Errorf("sitesearch: %w: document %d: %w", domain.ErrInvalidCorpus, d.ID, err)
			}
			docs = append(docs, doc)
		}
		c, err := corpus.New(docs)
		if err != nil {
			return nil, fmt.Errorf("sitesearch: %w", err)
		}
		return c, nil
	case cfg.corpusPath != "":
		c, err := corpus.LoadFile(cfg.corpusPath)
		if err != nil {
			return nil, fmt.Errorf("sitesearch: %w", err)
		}
		return c, nil
	default:
		c, err := corpus.Default()
		if err != nil {
			return nil, fmt.Errorf("sitesearch: %w", err)
		}
		return c, nil
	}
}

// Close releases the index.
func (c *Client) Close() error {
	if err := c.store.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}

// Len returns the number of indexed documents.
func (c *Client) Len() int { return c.size }

// Search returns the matches for term in rank order. A blank term returns no
// hits without querying. Hits that do not resolve to a document are skipped
// and reported through the configured logger and metrics.
func (c *Client) Search(ctx context.Context, term string) (hits []Hit, err error) {
	done := c.obs.track("search")
	defer func() { done(err) }()

	req, err := request.New(term, view.Modal, view.Modal)
	if err != nil {
		return nil, err
	}

	resolved, _, err := c.searchSvc.Resolve(ctx, req.Term())
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	if len(resolved) == 0 {
		return nil, nil
	}

	hits = make([]Hit, len(resolved))
	for i, h := range resolved {
		hits[i] = Hit{Ref: h.Ref, Score: h.Score, URL: h.URL, Title: h.Title, Excerpt: h.Excerpt}
	}
	return hits, nil
}

// Render returns the results container HTML for term in the given view.
// An empty view renders the modal.
func (c *Client) Render(ctx context.Context, term string, v View) (html string, err error) {
	done := c.obs.track("render")
	defer func() { done(err) }()

	req, err := request.New(term, view.View(v), view.Modal)
	if err != nil {
		return "", err
	}
	renderer, err := render.For(req.View())
	if err != nil {
		return "", err
	}

	surface := render.NewSurface(render.DefaultOptions())
	if _, err := c.searchSvc.HandleSearch(ctx, req.Term(), surface, renderer); err != nil {
		return "", fmt.Errorf("render: %w", err)
	}

	var b strings.Builder
	if err := render.WriteFragment(&b, surface); err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	return b.String(), nil
}
