package db

import "errors"

var (
	// ErrIndexNotFound signals an operation on an index that was never created.
	ErrIndexNotFound = errors.New("index not found")
	// ErrIndexExists signals a duplicate CreateIndex.
	ErrIndexExists = errors.New("index already exists")
	// ErrMissingRef signals a document without a reference field value.
	ErrMissingRef = errors.New("document is missing reference field")
)
