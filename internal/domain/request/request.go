// Package request holds the validated query request shared by all list and search reads.
package request

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/kailas-cloud/moviedex/internal/domain"
	"github.com/kailas-cloud/moviedex/internal/domain/query"
)

// Request parameter limits.
const (
	DefaultPage = 1
	DefaultSize = 25
	// MaxQueryLength is the maximum allowed free-text query length.
	MaxQueryLength = 1024
)

// Request describes a page of list or search results.
// Page is not range-checked here: the retrieval engine clamps it against the result count.
type Request struct {
	page     int
	size     int
	sort     query.Order
	genreID  string
	personID string
	text     string
}

// New validates page size and creates a request for the given page.
func New(page, size int) (Request, error) {
	if size < 1 {
		return Request{}, fmt.Errorf("%w: page size must be positive, got %d", domain.ErrInvalidRequest, size)
	}
	return Request{page: page, size: size}, nil
}

// WithSort returns a copy ordered in direction o.
func (r Request) WithSort(o query.Order) (Request, error) {
	if !o.IsValid() {
		return Request{}, fmt.Errorf("%w: unknown sort direction %q", domain.ErrInvalidRequest, o)
	}
	r.sort = o
	return r, nil
}

// WithGenre returns a copy filtered to one genre.
func (r Request) WithGenre(id string) Request {
	r.genreID = id
	return r
}

// WithPerson returns a copy filtered to one person.
func (r Request) WithPerson(id string) Request {
	r.personID = id
	return r
}

// WithQuery returns a copy carrying a free-text query with at least one searchable term.
func (r Request) WithQuery(text string) (Request, error) {
	if len(text) > MaxQueryLength {
		return Request{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidRequest, MaxQueryLength)
	}
	if len(query.Terms(text)) == 0 {
		return Request{}, fmt.Errorf("%w: query has no searchable terms", domain.ErrInvalidRequest)
	}
	r.text = text
	return r, nil
}

// WithPage returns a copy pointing at another page.
func (r Request) WithPage(page int) Request {
	r.page = page
	return r
}

// Page returns the requested 1-based page.
func (r Request) Page() int { return r.page }

// Size returns the page size.
func (r Request) Size() int { return r.size }

// Sort returns the sort direction, "" when unsorted.
func (r Request) Sort() query.Order { return r.sort }

// GenreID returns the genre filter, "" when absent.
func (r Request) GenreID() string { return r.genreID }

// PersonID returns the person filter, "" when absent.
func (r Request) PersonID() string { return r.personID }

// Query returns the free-text query, "" for plain listings.
func (r Request) Query() string { return r.text }

// canonical fixes the field order of the cache key encoding. Keep fields alphabetical.
type canonical struct {
	GenreID  string      `json:"genre_id,omitempty"`
	Page     int         `json:"page"`
	PersonID string      `json:"person_id,omitempty"`
	Query    string      `json:"query,omitempty"`
	Size     int         `json:"size"`
	Sort     query.Order `json:"sort,omitempty"`
}

// Canonical returns a compact, deterministic JSON encoding of the request.
// Equal requests always produce byte-identical output.
func (r Request) Canonical() string {
	data, err := json.Marshal(canonical{
		GenreID:  r.genreID,
		Page:     r.page,
		PersonID: r.personID,
		Query:    r.text,
		Size:     r.size,
		Sort:     r.sort,
	})
	if err != nil {
		// Only strings and ints: marshalling cannot fail.
		panic(fmt.Sprintf("canonical request: %v", err))
	}
	return string(data)
}
