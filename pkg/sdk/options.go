package sitesearch

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	corpusPath string
	documents  []Document

	indexName     string
	titleBoost    float64
	excerptLength int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithCorpusFile indexes the JSON corpus at path instead of the bundled one.
func WithCorpusFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.corpusPath = path
	})
}

// WithDocuments indexes docs instead of the bundled corpus.
// Takes precedence over WithCorpusFile.
func WithDocuments(docs []Document) Option {
	return optionFunc(func(c *clientConfig) {
		c.documents = docs
	})
}

// WithIndexName names the in-memory index. Default: "site".
func WithIndexName(name string) Option {
	return optionFunc(func(c *clientConfig) {
		c.indexName = name
	})
}

// WithTitleBoost weights title matches above body matches.
// Default: no boost.
func WithTitleBoost(boost float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.titleBoost = boost
	})
}

// WithExcerptLength sets the excerpt length in characters. Default: 160.
func WithExcerptLength(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.excerptLength = n
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (call counts, latency, query outcomes
// and skipped references)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
