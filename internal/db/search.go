package db

import "github.com/kailas-cloud/moviedex/internal/domain/query"

// SearchQuery is the input of a paginated FT.SEARCH.
type SearchQuery struct {
	IndexName    string
	Body         query.Body
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Fields map[string]string
}
