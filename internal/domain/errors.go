package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrDocumentNotFound signals a missing corpus document.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrInvalidCorpus signals a corpus that cannot be indexed.
	ErrInvalidCorpus = errors.New("invalid corpus")
	// ErrIndexUnavailable signals that the search index cannot serve queries.
	ErrIndexUnavailable = errors.New("search index unavailable")
	// ErrQueryTooLong signals a search term over the length limit.
	ErrQueryTooLong = errors.New("query too long")
	// ErrUnknownView signals an unsupported results presentation.
	ErrUnknownView = errors.New("unknown results view")
	// ErrDanglingReference signals a search hit with no matching corpus document.
	ErrDanglingReference = errors.New("dangling document reference")
)

// DanglingReferenceError wraps ErrDanglingReference with the unresolved reference.
type DanglingReferenceError struct {
	Reference int
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("%s: %d", ErrDanglingReference.Error(), e.Reference)
}

func (e *DanglingReferenceError) Unwrap() error { return ErrDanglingReference }

// NewDanglingReference creates a dangling reference error.
func NewDanglingReference(ref int) error {
	return &DanglingReferenceError{Reference: ref}
}
