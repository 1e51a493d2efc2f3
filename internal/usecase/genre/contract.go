package genre

import (
	"context"

	"github.com/kailas-cloud/moviedex/internal/domain/document"
	"github.com/kailas-cloud/moviedex/internal/domain/request"
	"github.com/kailas-cloud/moviedex/internal/usecase/retrieval"
)

// Retriever reads documents through the cache-aside engine.
type Retriever interface {
	GetOne(ctx context.Context, collection, id string) (document.Document, error)
	GetList(
		ctx context.Context, collection string, req request.Request, build retrieval.Builder,
	) ([]document.Document, error)
}
