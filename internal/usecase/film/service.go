// Package film serves film lookups, listings and searches.
package film

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/moviedex/internal/domain"
	"github.com/kailas-cloud/moviedex/internal/domain/document"
	"github.com/kailas-cloud/moviedex/internal/domain/request"
)

// Service reads films.
type Service struct {
	retriever Retriever
}

// New creates a film service.
func New(r Retriever) *Service {
	return &Service{retriever: r}
}

// Get returns one film.
func (s *Service) Get(ctx context.Context, id string) (document.Document, error) {
	doc, err := s.retriever.GetOne(ctx, domain.Films, id)
	if err != nil {
		return nil, fmt.Errorf("get film %s: %w", id, err)
	}
	return doc, nil
}

// List returns one page of films ordered by rating.
func (s *Service) List(ctx context.Context, req request.Request) ([]document.Document, error) {
	docs, err := s.retriever.GetList(ctx, domain.Films, req, ListQuery)
	if err != nil {
		return nil, fmt.Errorf("list films: %w", err)
	}
	return docs, nil
}

// Search returns one page of films matching req's free-text query.
func (s *Service) Search(ctx context.Context, req request.Request) ([]document.Document, error) {
	if req.Query() == "" {
		return nil, fmt.Errorf("search films: %w: query is required", domain.ErrInvalidRequest)
	}
	docs, err := s.retriever.GetList(ctx, domain.Films, req, SearchQuery)
	if err != nil {
		return nil, fmt.Errorf("search films: %w", err)
	}
	return docs, nil
}
