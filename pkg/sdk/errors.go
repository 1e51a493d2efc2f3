package moviedex

import "github.com/kailas-cloud/moviedex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound            = domain.ErrNotFound
	ErrInvalidRequest      = domain.ErrInvalidRequest
	ErrUpstreamUnavailable = domain.ErrUpstreamUnavailable
)
