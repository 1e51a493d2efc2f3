package genre

import (
	"context"

	"github.com/kailas-cloud/moviedex/internal/domain/document"
	"github.com/kailas-cloud/moviedex/internal/domain/query"
	"github.com/kailas-cloud/moviedex/internal/domain/request"
	"github.com/kailas-cloud/moviedex/internal/usecase/retrieval"
)

// mockRetriever records what the service asked for.
type mockRetriever struct {
	getOneFn    func(ctx context.Context, collection, id string) (document.Document, error)
	docs        []document.Document
	listErr     error
	collections []string
	lastReq     request.Request
	lastBody    query.Body
}

func (m *mockRetriever) GetOne(ctx context.Context, collection, id string) (document.Document, error) {
	m.collections = append(m.collections, collection)
	if m.getOneFn != nil {
		return m.getOneFn(ctx, collection, id)
	}
	return document.Document{"id": id}, nil
}

func (m *mockRetriever) GetList(
	_ context.Context, collection string, req request.Request, build retrieval.Builder,
) ([]document.Document, error) {
	m.collections = append(m.collections, collection)
	m.lastReq = req
	m.lastBody = build(req)
	return m.docs, m.listErr
}
