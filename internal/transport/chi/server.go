package chi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	gochi "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/sitesearch/internal/domain"
	"github.com/kailas-cloud/sitesearch/internal/domain/search/request"
	"github.com/kailas-cloud/sitesearch/internal/domain/search/view"
	"github.com/kailas-cloud/sitesearch/internal/render"
	healthuc "github.com/kailas-cloud/sitesearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/sitesearch/internal/usecase/search"
	"github.com/kailas-cloud/sitesearch/internal/version"
)

// ErrorCode identifies an error class in JSON error responses.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest       ErrorCode = "bad_request"
	ErrorCodeQueryTooLong     ErrorCode = "query_too_long"
	ErrorCodeUnknownView      ErrorCode = "unknown_view"
	ErrorCodeIndexUnavailable ErrorCode = "index_unavailable"
	ErrorCodeTimeout          ErrorCode = "timeout"
	ErrorCodeUnauthorized     ErrorCode = "unauthorized"
	ErrorCodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

type healthResponse struct {
	Status    healthuc.Status                 `json:"status"`
	Checks    map[string]healthuc.CheckResult `json:"checks"`
	Documents uint64                          `json:"documents"`
	Version   string                          `json:"version"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Options configures the HTTP server.
type Options struct {
	Render         render.Options
	DefaultView    view.View
	SearchTimeout  time.Duration
	MetricsAPIKeys []string
}

// Server serves the search page, result fragments, health and metrics.
type Server struct {
	search        *searchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	opts          Options
	errorHandlers []errorHandler
}

// NewServer creates the HTTP server.
func NewServer(search *searchuc.Service, health *healthuc.Service, logger *zap.Logger, opts Options) *Server {
	if opts.DefaultView == "" {
		opts.DefaultView = view.Modal
	}
	s := &Server{
		search: search,
		health: health,
		logger: logger,
		opts:   opts,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrQueryTooLong, http.StatusBadRequest, ErrorCodeQueryTooLong),
		sentinelHandler(domain.ErrUnknownView, http.StatusBadRequest, ErrorCodeUnknownView),
		sentinelHandler(context.DeadlineExceeded, http.StatusGatewayTimeout, ErrorCodeTimeout),
		sentinelHandler(domain.ErrIndexUnavailable, http.StatusServiceUnavailable, ErrorCodeIndexUnavailable),
	}
	return s
}

// Register mounts the routes on r.
func (s *Server) Register(r gochi.Router) {
	r.Get("/", s.Index)
	r.Get("/search", s.SearchPage)
	r.Get("/search/results", s.SearchResults)
	r.Get("/search/dismiss", s.Dismiss)
	r.Get("/health", s.HealthCheck)
	r.With(BearerAuthMiddleware(s.opts.MetricsAPIKeys)).Get("/metrics", s.Metrics)
}

// Index handles GET /: the search page with an empty results container.
func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	surface := render.NewSurface(s.opts.Render)
	s.writePage(w, render.PageData{Surface: surface})
}

// SearchPage handles GET /search: the full page with rendered results.
func (s *Server) SearchPage(w http.ResponseWriter, r *http.Request) {
	req, surface, ok := s.runSearch(w, r)
	if !ok {
		return
	}
	s.writePage(w, render.PageData{
		Term:    req.Term(),
		View:    view.View(r.URL.Query().Get("view")),
		Surface: surface,
	})
}

// SearchResults handles GET /search/results: the results container only.
func (s *Server) SearchResults(w http.ResponseWriter, r *http.Request) {
	_, surface, ok := s.runSearch(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := render.WriteFragment(&buf, surface); err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeHTML(w, http.StatusOK, buf.Bytes())
}

// Dismiss handles GET /search/dismiss: the page with the results panel closed.
func (s *Server) Dismiss(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	if len(term) > request.MaxQueryLength {
		term = ""
	}
	surface := render.NewSurface(s.opts.Render)
	render.Dismiss(surface)
	s.writePage(w, render.PageData{Term: term, Surface: surface})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status:    report.Status,
		Checks:    report.Checks,
		Documents: report.Documents,
		Version:   version.String(),
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// runSearch validates the query, picks the renderer and renders into a fresh
// surface. On failure the error response is already written.
func (s *Server) runSearch(w http.ResponseWriter, r *http.Request) (request.Request, *render.Surface, bool) {
	q := r.URL.Query()
	req, err := request.New(q.Get("q"), view.View(q.Get("view")), s.opts.DefaultView)
	if err != nil {
		s.handleDomainError(w, err)
		return request.Request{}, nil, false
	}

	renderer, err := render.For(req.View())
	if err != nil {
		s.handleDomainError(w, err)
		return request.Request{}, nil, false
	}

	ctx := r.Context()
	if s.opts.SearchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.SearchTimeout)
		defer cancel()
	}

	surface := render.NewSurface(s.opts.Render)
	out, err := s.search.HandleSearch(ctx, req.Term(), surface, renderer)
	if err != nil {
		s.handleDomainError(w, err)
		return request.Request{}, nil, false
	}

	setSearchHeaders(w, out)
	return req, surface, true
}

func (s *Server) writePage(w http.ResponseWriter, data render.PageData) {
	var buf bytes.Buffer
	if err := render.WritePage(&buf, data); err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeHTML(w, http.StatusOK, buf.Bytes())
}

func setSearchHeaders(w http.ResponseWriter, out searchuc.Outcome) {
	if out.Queried {
		w.Header().Set("X-Search-Matches", strconv.Itoa(out.Matched))
		w.Header().Set("X-Search-Rendered", strconv.Itoa(out.Rendered))
	}
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrQueryTooLong,
		domain.ErrUnknownView,
		context.DeadlineExceeded,
		domain.ErrIndexUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			s.logger.Warn("domain error", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
