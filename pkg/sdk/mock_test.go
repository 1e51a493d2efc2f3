package moviedex

import (
	"context"

	"github.com/kailas-cloud/moviedex/internal/domain/document"
	"github.com/kailas-cloud/moviedex/internal/domain/request"
)

// --- filmUseCase / genreUseCase mock ---

type mockListingUC struct {
	getFn    func(ctx context.Context, id string) (document.Document, error)
	listFn   func(ctx context.Context, req request.Request) ([]document.Document, error)
	searchFn func(ctx context.Context, req request.Request) ([]document.Document, error)
}

func (m *mockListingUC) Get(ctx context.Context, id string) (document.Document, error) {
	return m.getFn(ctx, id)
}

func (m *mockListingUC) List(ctx context.Context, req request.Request) ([]document.Document, error) {
	return m.listFn(ctx, req)
}

func (m *mockListingUC) Search(ctx context.Context, req request.Request) ([]document.Document, error) {
	return m.searchFn(ctx, req)
}

// --- personUseCase mock ---

type mockPersonUC struct {
	getFn    func(ctx context.Context, id string) (document.Document, error)
	searchFn func(ctx context.Context, req request.Request) ([]document.Document, error)
	filmsFn  func(ctx context.Context, id string, req request.Request) ([]document.Document, error)
}

func (m *mockPersonUC) Get(ctx context.Context, id string) (document.Document, error) {
	return m.getFn(ctx, id)
}

func (m *mockPersonUC) Search(ctx context.Context, req request.Request) ([]document.Document, error) {
	return m.searchFn(ctx, req)
}

func (m *mockPersonUC) Films(ctx context.Context, id string, req request.Request) ([]document.Document, error) {
	return m.filmsFn(ctx, id, req)
}
