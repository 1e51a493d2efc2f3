// Package person serves person lookups, searches and filmographies.
package person

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/moviedex/internal/domain"
	"github.com/kailas-cloud/moviedex/internal/domain/document"
	"github.com/kailas-cloud/moviedex/internal/domain/request"
	"github.com/kailas-cloud/moviedex/internal/usecase/film"
)

// Service reads persons and the films they took part in.
type Service struct {
	retriever Retriever
}

// New creates a person service.
func New(r Retriever) *Service {
	return &Service{retriever: r}
}

// Get returns one person.
func (s *Service) Get(ctx context.Context, id string) (document.Document, error) {
	doc, err := s.retriever.GetOne(ctx, domain.Persons, id)
	if err != nil {
		return nil, fmt.Errorf("get person %s: %w", id, err)
	}
	return doc, nil
}

// Search returns one page of persons whose name matches req's query.
func (s *Service) Search(ctx context.Context, req request.Request) ([]document.Document, error) {
	if req.Query() == "" {
		return nil, fmt.Errorf("search persons: %w: query is required", domain.ErrInvalidRequest)
	}
	docs, err := s.retriever.GetList(ctx, domain.Persons, req, SearchQuery)
	if err != nil {
		return nil, fmt.Errorf("search persons: %w", err)
	}
	return docs, nil
}

// Films returns one page of the films person id acted in, wrote or directed,
// ordered by rating. Unknown persons yield domain.ErrNotFound.
func (s *Service) Films(ctx context.Context, id string, req request.Request) ([]document.Document, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	docs, err := s.retriever.GetList(ctx, domain.Films, req.WithPerson(id), film.ListQuery)
	if err != nil {
		return nil, fmt.Errorf("films of person %s: %w", id, err)
	}
	return docs, nil
}
