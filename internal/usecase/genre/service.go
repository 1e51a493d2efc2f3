// Package genre serves genre lookups and listings.
package genre

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/moviedex/internal/domain"
	"github.com/kailas-cloud/moviedex/internal/domain/document"
	"github.com/kailas-cloud/moviedex/internal/domain/request"
)

// Service reads genres.
type Service struct {
	retriever Retriever
}

// New creates a genre service.
func New(r Retriever) *Service {
	return &Service{retriever: r}
}

// Get returns one genre.
func (s *Service) Get(ctx context.Context, id string) (document.Document, error) {
	doc, err := s.retriever.GetOne(ctx, domain.Genres, id)
	if err != nil {
		return nil, fmt.Errorf("get genre %s: %w", id, err)
	}
	return doc, nil
}

// List returns one page of genres ordered by name.
func (s *Service) List(ctx context.Context, req request.Request) ([]document.Document, error) {
	docs, err := s.retriever.GetList(ctx, domain.Genres, req, ListQuery)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	return docs, nil
}

// Search returns one page of genres whose name matches req's query.
func (s *Service) Search(ctx context.Context, req request.Request) ([]document.Document, error) {
	if req.Query() == "" {
		return nil, fmt.Errorf("search genres: %w: query is required", domain.ErrInvalidRequest)
	}
	docs, err := s.retriever.GetList(ctx, domain.Genres, req, SearchQuery)
	if err != nil {
		return nil, fmt.Errorf("search genres: %w", err)
	}
	return docs, nil
}
