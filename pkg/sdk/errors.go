package sitesearch

import "github.com/kailas-cloud/sitesearch/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidCorpus    = domain.ErrInvalidCorpus
	ErrIndexUnavailable = domain.ErrIndexUnavailable
	ErrQueryTooLong     = domain.ErrQueryTooLong
	ErrUnknownView      = domain.ErrUnknownView
)
