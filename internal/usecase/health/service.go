package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates total failure.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status    Status
	Checks    map[string]CheckResult
	Documents uint64
}

// Service coordinates health checks.
type Service struct {
	store    IndexPinger
	index    DocCounter
	expected int
}

// New creates a Service. expected is the corpus size the index must hold.
func New(store IndexPinger, index DocCounter, expected int) *Service {
	return &Service{store: store, index: index, expected: expected}
}

// Check pings the index store and verifies the index covers the whole corpus.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, 2)
	var docs uint64

	if err := s.store.Ping(ctx); err != nil {
		checks["index"] = CheckError
	} else {
		checks["index"] = CheckOK
	}

	n, err := s.index.DocCount(ctx)
	switch {
	case err != nil, n != uint64(s.expected): //nolint:gosec // corpus size is never negative
		checks["corpus"] = CheckError
	default:
		checks["corpus"] = CheckOK
	}
	if err == nil {
		docs = n
	}

	failed := 0
	for _, v := range checks {
		if v == CheckError {
			failed++
		}
	}

	status := Healthy
	switch {
	case failed == len(checks):
		status = Unhealthy
	case failed > 0:
		status = Degraded
	}

	return Report{Status: status, Checks: checks, Documents: docs}
}
