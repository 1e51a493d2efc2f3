package retrieval

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/moviedex/internal/domain"
	"github.com/kailas-cloud/moviedex/internal/domain/query"
)

// ValidatePage clamps page into [1, last], where last is the final non-empty page of
// the documents matching body. An empty result set still has one (empty) page.
func (s *Service) ValidatePage(
	ctx context.Context, collection string, page, size int, body query.Body,
) (int, error) {
	if size < 1 {
		return 0, fmt.Errorf("%w: page size must be positive, got %d", domain.ErrInvalidRequest, size)
	}

	total, err := s.search.Count(ctx, collection, body.WithoutPagination())
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", collection, err)
	}

	return clampPage(page, size, total), nil
}

func clampPage(page, size, total int) int {
	last := max(1, (total+size-1)/size)
	switch {
	case page < 1:
		return 1
	case page > last:
		return last
	default:
		return page
	}
}
