package domain

import "errors"

var (
	// ErrNotFound signals that no document matches the requested identifier.
	ErrNotFound = errors.New("not found")
	// ErrInvalidRequest signals a malformed query request.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrUpstreamUnavailable signals that the search engine could not serve the request.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
