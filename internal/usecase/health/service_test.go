package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

type mockCounter struct {
	n   uint64
	err error
}

func (m *mockCounter) DocCount(_ context.Context) (uint64, error) { return m.n, m.err }

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockPinger{}, &mockCounter{n: 6}, 6)
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks["index"] != CheckOK {
		t.Errorf("expected index %q, got %q", CheckOK, r.Checks["index"])
	}
	if r.Checks["corpus"] != CheckOK {
		t.Errorf("expected corpus %q, got %q", CheckOK, r.Checks["corpus"])
	}
	if r.Documents != 6 {
		t.Errorf("expected 6 documents, got %d", r.Documents)
	}
}

func TestCheck_PingError(t *testing.T) {
	svc := New(&mockPinger{err: errors.New("closed")}, &mockCounter{n: 6}, 6)
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["index"] != CheckError {
		t.Errorf("expected index %q, got %q", CheckError, r.Checks["index"])
	}
}

func TestCheck_PartialIndex(t *testing.T) {
	svc := New(&mockPinger{}, &mockCounter{n: 4}, 6)
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["corpus"] != CheckError {
		t.Errorf("expected corpus %q, got %q", CheckError, r.Checks["corpus"])
	}
	if r.Documents != 4 {
		t.Errorf("expected 4 documents, got %d", r.Documents)
	}
}

func TestCheck_AllFail(t *testing.T) {
	svc := New(
		&mockPinger{err: errors.New("closed")},
		&mockCounter{err: errors.New("index not found")},
		6,
	)
	r := svc.Check(context.Background())

	if r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
	if r.Documents != 0 {
		t.Errorf("expected 0 documents, got %d", r.Documents)
	}
}
