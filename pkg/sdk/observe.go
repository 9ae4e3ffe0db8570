package sitesearch

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	searchuc "github.com/kailas-cloud/sitesearch/internal/usecase/search"
)

var _ searchuc.Observer = (*observer)(nil)

// clientMetrics are the collectors behind WithPrometheus.
type clientMetrics struct {
	calls    *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	outcomes *prometheus.CounterVec
	dangling prometheus.Counter
}

func newClientMetrics(reg prometheus.Registerer) (*clientMetrics, error) {
	const ns, sub = "sitesearch", "sdk"

	var (
		m   clientMetrics
		err error
	)
	if m.calls, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns, Subsystem: sub,
		Name: "calls_total",
		Help: "Client method calls by method and result (ok, error).",
	}, []string{"method", "result"})); err != nil {
		return nil, err
	}
	if m.latency, err = register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: ns, Subsystem: sub,
		Name:    "call_duration_seconds",
		Help:    "Client method latency in seconds.",
		Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	}, []string{"method"})); err != nil {
		return nil, err
	}
	if m.outcomes, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns, Subsystem: sub,
		Name: "search_outcomes_total",
		Help: "Queries by outcome (empty, no_results, results, error).",
	}, []string{"outcome"})); err != nil {
		return nil, err
	}
	if m.dangling, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: ns, Subsystem: sub,
		Name: "dangling_references_total",
		Help: "Index hits skipped because their reference is not in the corpus.",
	})); err != nil {
		return nil, err
	}
	return &m, nil
}

// register adds c to reg. When an identical collector is already registered
// (a second client on the same registry) the existing one is returned.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if !errors.As(err, &are) {
		return c, fmt.Errorf("sitesearch: register metric: %w", err)
	}
	existing, ok := are.ExistingCollector.(T)
	if !ok {
		return c, fmt.Errorf("sitesearch: metric already registered as %T", are.ExistingCollector)
	}
	return existing, nil
}

// observer logs and counts client calls and query outcomes. Both sinks are
// optional; a nil observer records nothing.
type observer struct {
	logger  *slog.Logger
	metrics *clientMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	o := &observer{logger: logger}
	if reg != nil {
		m, err := newClientMetrics(reg)
		if err != nil {
			return nil, err
		}
		o.metrics = m
	}
	return o, nil
}

// track starts timing a client method; call the returned func with its error.
func (o *observer) track(method string) func(error) {
	start := time.Now()
	return func(err error) {
		if o == nil {
			return
		}
		elapsed := time.Since(start)
		result := "ok"
		if err != nil {
			result = "error"
		}
		if o.metrics != nil {
			o.metrics.calls.WithLabelValues(method, result).Inc()
			o.metrics.latency.WithLabelValues(method).Observe(elapsed.Seconds())
		}
		if o.logger == nil {
			return
		}
		if err != nil {
			o.logger.Warn("sitesearch call failed", "method", method, "elapsed", elapsed, "error", err)
			return
		}
		o.logger.Debug("sitesearch call", "method", method, "elapsed", elapsed)
	}
}

// ObserveSearch implements search.Observer.
func (o *observer) ObserveSearch(outcome string, _ time.Duration) {
	if o == nil || o.metrics == nil {
		return
	}
	o.metrics.outcomes.WithLabelValues(outcome).Inc()
}

// ObserveDanglingReference implements search.Observer.
func (o *observer) ObserveDanglingReference(ref int) {
	if o == nil {
		return
	}
	if o.metrics != nil {
		o.metrics.dangling.Inc()
	}
	if o.logger != nil {
		o.logger.Warn("skipping search hit: reference not in corpus", "reference", ref)
	}
}
