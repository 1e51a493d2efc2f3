package moviedex

import (
	"fmt"

	"github.com/kailas-cloud/moviedex/internal/domain"
	"github.com/kailas-cloud/moviedex/internal/domain/document"
	"github.com/kailas-cloud/moviedex/internal/domain/query"
	"github.com/kailas-cloud/moviedex/internal/domain/request"
)

// Document is one film, person or genre exactly as stored in the search engine.
type Document = document.Document

// SortOrder orders films by rating.
type SortOrder string

// Sort orders.
const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// DefaultPageSize applies when a page size is left at zero.
const DefaultPageSize = request.DefaultSize

// Page selects one page of results. Zero values mean the first page of DefaultPageSize.
// Pages past the end return the last page.
type Page struct {
	Number int
	Size   int
}

// ListOptions select and order a film listing.
type ListOptions struct {
	Page
	// Sort defaults to SortDesc.
	Sort    SortOrder
	GenreID string
}

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            // "ok", "degraded", "error"
	Checks map[string]string // component → "ok"/"error"/"missing"
}

func (p Page) request() (request.Request, error) {
	number, size := p.Number, p.Size
	if number == 0 {
		number = request.DefaultPage
	}
	if size == 0 {
		size = DefaultPageSize
	}
	req, err := request.New(number, size)
	if err != nil {
		return request.Request{}, fmt.Errorf("page: %w", err)
	}
	return req, nil
}

func (o ListOptions) request() (request.Request, error) {
	req, err := o.Page.request()
	if err != nil {
		return request.Request{}, err
	}
	sort := o.Sort
	if sort == "" {
		sort = SortDesc
	}
	if req, err = req.WithSort(query.Order(sort)); err != nil {
		return request.Request{}, fmt.Errorf("list options: %w", err)
	}
	if o.GenreID != "" {
		req = req.WithGenre(o.GenreID)
	}
	return req, nil
}

func searchRequest(text string, p Page) (request.Request, error) {
	req, err := p.request()
	if err != nil {
		return request.Request{}, err
	}
	if text == "" {
		return request.Request{}, fmt.Errorf("%w: query is required", domain.ErrInvalidRequest)
	}
	if req, err = req.WithQuery(text); err != nil {
		return request.Request{}, fmt.Errorf("search: %w", err)
	}
	return req, nil
}
