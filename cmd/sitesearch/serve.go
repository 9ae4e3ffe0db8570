package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/sitesearch/internal/config"
	"github.com/kailas-cloud/sitesearch/internal/corpus"
	bleveStore "github.com/kailas-cloud/sitesearch/internal/db/bleve"
	"github.com/kailas-cloud/sitesearch/internal/domain"
	"github.com/kailas-cloud/sitesearch/internal/domain/search/view"
	logpkg "github.com/kailas-cloud/sitesearch/internal/logger"
	"github.com/kailas-cloud/sitesearch/internal/metrics"
	"github.com/kailas-cloud/sitesearch/internal/render"
	documentrepo "github.com/kailas-cloud/sitesearch/internal/repository/document"
	searchrepo "github.com/kailas-cloud/sitesearch/internal/repository/search"
	chiTransport "github.com/kailas-cloud/sitesearch/internal/transport/chi"
	healthuc "github.com/kailas-cloud/sitesearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/sitesearch/internal/usecase/search"
	"github.com/kailas-cloud/sitesearch/internal/version"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Build the index and serve the search page over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), opts.env)
		},
	}
}

func serve(ctx context.Context, env string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting sitesearch server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("default_view", cfg.Render.DefaultView),
	)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Server exited with error", zap.Error(err))
		return err
	}
	logger.Info("Server stopped gracefully")
	return nil
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	docs, err := loadCorpus(cfg.Corpus)
	if err != nil {
		return err
	}
	logger.Info("Corpus loaded", zap.Int("documents", docs.Len()), zap.String("path", cfg.Corpus.Path))

	store := bleveStore.NewStore()
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("Error closing index store", zap.Error(err))
		}
	}()

	metrics.RegisterSearchMetrics()

	// The index is built once, before the listener starts.
	indexCfg := domain.DefaultIndexConfig()
	indexCfg.Name = cfg.Search.IndexName
	indexCfg.TitleBoost = cfg.Search.TitleBoost

	docRepo := documentrepo.New(store, docs, indexCfg)
	indexed, err := docRepo.BuildIndex(ctx)
	if err != nil {
		return fmt.Errorf("build index: %w", err)
	}
	metrics.IndexedDocuments.Set(float64(indexed))
	logger.Info("Search index built", zap.String("index", indexCfg.Name), zap.Int("documents", indexed))

	searchRepo := searchrepo.New(store, indexCfg.Name)

	searchSvc := searchuc.New(searchRepo, docRepo).
		WithObserver(metrics.SearchObserver{}).
		WithExcerptLength(cfg.Search.ExcerptLength)
	healthSvc := healthuc.New(store, searchRepo, docs.Len())

	renderOpts := render.DefaultOptions()
	renderOpts.ContainerID = cfg.Render.ContainerID
	renderOpts.OpenClass = cfg.Render.OpenClass
	renderOpts.DismissID = cfg.Render.DismissID
	renderOpts.SiteTitle = cfg.Render.SiteTitle

	server := chiTransport.NewServer(searchSvc, healthSvc, logger, chiTransport.Options{
		Render:         renderOpts,
		DefaultView:    view.View(cfg.Render.DefaultView),
		SearchTimeout:  time.Duration(cfg.Search.TimeoutMs) * time.Millisecond,
		MetricsAPIKeys: cfg.Metrics.APIKeys,
	})

	handler, err := chiTransport.NewRouter(server, logger, cfg.HTTP.Gzip)
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

func loadCorpus(cfg config.CorpusConfig) (*corpus.Corpus, error) {
	if cfg.Path == "" {
		c, err := corpus.Default()
		if err != nil {
			return nil, fmt.Errorf("load embedded corpus: %w", err)
		}
		return c, nil
	}
	c, err := corpus.LoadFile(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("load corpus %s: %w", cfg.Path, err)
	}
	return c, nil
}
