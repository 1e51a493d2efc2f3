package chi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/kailas-cloud/moviedex/internal/domain"
	"github.com/kailas-cloud/moviedex/internal/domain/document"
	"github.com/kailas-cloud/moviedex/internal/domain/request"
	filmuc "github.com/kailas-cloud/moviedex/internal/usecase/film"
	genreuc "github.com/kailas-cloud/moviedex/internal/usecase/genre"
	healthuc "github.com/kailas-cloud/moviedex/internal/usecase/health"
	personuc "github.com/kailas-cloud/moviedex/internal/usecase/person"
	"github.com/kailas-cloud/moviedex/internal/usecase/retrieval"
)

const (
	filmID   = "3d825f60-9fff-4dfe-b294-1a45fa1e115d"
	personID = "26e83050-29ef-4163-a99d-b546cac208f8"
	genreID  = "120a21cf-9097-479e-904a-13dd7198c1dd"
)

// fakeRetriever stands in for the cache-aside engine behind every entity service.
type fakeRetriever struct {
	mu sync.Mutex

	getOneFn  func(ctx context.Context, collection, id string) (document.Document, error)
	getListFn func(ctx context.Context, collection string, req request.Request) ([]document.Document, error)

	oneCalls  []string
	listCalls []request.Request
	lists     []string
}

func (f *fakeRetriever) GetOne(ctx context.Context, collection, id string) (document.Document, error) {
	f.mu.Lock()
	f.oneCalls = append(f.oneCalls, collection+"::"+id)
	f.mu.Unlock()
	if f.getOneFn != nil {
		return f.getOneFn(ctx, collection, id)
	}
	return document.Document{"id": id}, nil
}

func (f *fakeRetriever) GetList(
	ctx context.Context, collection string, req request.Request, build retrieval.Builder,
) ([]document.Document, error) {
	_ = build(req)
	f.mu.Lock()
	f.listCalls = append(f.listCalls, req)
	f.lists = append(f.lists, collection)
	f.mu.Unlock()
	if f.getListFn != nil {
		return f.getListFn(ctx, collection, req)
	}
	return []document.Document{{"id": filmID, "title": "Star Wars"}}, nil
}

func (f *fakeRetriever) lastList(t *testing.T) request.Request {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.listCalls) == 0 {
		t.Fatal("expected a list call")
	}
	return f.listCalls[len(f.listCalls)-1]
}

func (f *fakeRetriever) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.oneCalls) + len(f.listCalls)
}

type fakePinger struct{ err error }

func (p *fakePinger) Ping(context.Context) error { return p.err }

type fakeIndexes struct{}

func (fakeIndexes) IndexExists(context.Context, string) (bool, error) { return true, nil }

type testEnv struct {
	retriever *fakeRetriever
	search    *fakePinger
	handler   http.Handler
}

func newTestEnv(t *testing.T, opts RouterOptions) *testEnv {
	t.Helper()
	rt := &fakeRetriever{}
	search := &fakePinger{}
	srv := NewServer(
		filmuc.New(rt),
		genreuc.New(rt),
		personuc.New(rt),
		healthuc.New(&fakePinger{}, search, fakeIndexes{}, domain.Collections()),
		PageLimits{DefaultSize: 25, MaxSize: 100},
	)
	return &testEnv{retriever: rt, search: search, handler: NewRouter(srv, opts)}
}

func (e *testEnv) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error response: %v (body %q)", err, rr.Body.String())
	}
	return resp
}
