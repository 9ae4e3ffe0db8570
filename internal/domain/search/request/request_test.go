package request

import (
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/sitesearch/internal/domain"
	"github.com/kailas-cloud/sitesearch/internal/domain/search/view"
)

func TestNew_Defaults(t *testing.T) {
	r, err := New("hello", "", view.Modal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Term() != "hello" {
		t.Errorf("Term() = %q", r.Term())
	}
	if r.View() != view.Modal {
		t.Errorf("View() = %q, want modal (default)", r.View())
	}
	if r.IsBlank() {
		t.Error("IsBlank() = true")
	}
}

func TestNew_ExplicitView(t *testing.T) {
	r, err := New("hello", view.List, view.Modal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.View() != view.List {
		t.Errorf("View() = %q", r.View())
	}
}

func TestNew_Blank(t *testing.T) {
	for _, term := range []string{"", " ", "\t\n  "} {
		r, err := New(term, "", view.List)
		if err != nil {
			t.Fatalf("New(%q): %v", term, err)
		}
		if !r.IsBlank() {
			t.Errorf("IsBlank(%q) = false", term)
		}
	}
}

func TestNew_TooLong(t *testing.T) {
	_, err := New(strings.Repeat("x", MaxQueryLength+1), "", view.Modal)
	if !errors.Is(err, domain.ErrQueryTooLong) {
		t.Fatalf("expected ErrQueryTooLong, got %v", err)
	}
}

func TestNew_MaxLengthAllowed(t *testing.T) {
	if _, err := New(strings.Repeat("x", MaxQueryLength), "", view.Modal); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNew_UnknownView(t *testing.T) {
	_, err := New("hello", "grid", view.Modal)
	if !errors.Is(err, domain.ErrUnknownView) {
		t.Fatalf("expected ErrUnknownView, got %v", err)
	}
}
