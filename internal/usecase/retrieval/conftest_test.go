package retrieval

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/kailas-cloud/moviedex/internal/domain"
	"github.com/kailas-cloud/moviedex/internal/domain/document"
	"github.com/kailas-cloud/moviedex/internal/domain/query"
	"github.com/kailas-cloud/moviedex/internal/domain/request"
)

// memCache is a serializing in-memory Cache with injectable failures.
type memCache struct {
	mu       sync.Mutex
	data     map[string][]byte
	getErr   error
	setErr   error
	setCalls int
	setCtxOK bool
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}}
}

func (m *memCache) Get(_ context.Context, key string, dst any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return false, m.getErr
	}
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (m *memCache) Set(ctx context.Context, key string, v any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setCalls++
	m.setCtxOK = ctx.Err() == nil
	if m.setErr != nil {
		return m.setErr
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *memCache) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

// memEngine evaluates query bodies over a fixed corpus, the way the search engine would.
type memEngine struct {
	mu          sync.Mutex
	docs        map[string][]document.Document
	searchErr   error
	countErr    error
	getCalls    int
	searchCalls int
	lastBody    query.Body
}

func (e *memEngine) GetByID(_ context.Context, collection, id string) (document.Document, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.getCalls++
	if e.searchErr != nil {
		return nil, e.searchErr
	}
	for _, d := range e.docs[collection] {
		if d.ID() == id {
			return d, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (e *memEngine) Search(_ context.Context, collection string, body query.Body) ([]document.Document, int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.searchCalls++
	e.lastBody = body
	if e.searchErr != nil {
		return nil, 0, e.searchErr
	}

	hits := e.match(collection, body.Query)
	if s := body.Sort; s != nil {
		sort.SliceStable(hits, func(i, j int) bool {
			a, _ := hits[i].Float(s.Field)
			b, _ := hits[j].Float(s.Field)
			if s.Order == query.OrderDesc {
				return a > b
			}
			return a < b
		})
	}
	total := len(hits)
	if w := body.Window; w != nil {
		lo := min(w.Offset, len(hits))
		hi := min(w.Offset+w.Limit, len(hits))
		hits = hits[lo:hi]
	}
	return hits, total, nil
}

func (e *memEngine) Count(_ context.Context, collection string, body query.Body) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.countErr != nil {
		return 0, e.countErr
	}
	return len(e.match(collection, body.Query)), nil
}

func (e *memEngine) match(collection string, c query.Clause) []document.Document {
	var out []document.Document
	for _, d := range e.docs[collection] {
		if matches(d, c) {
			out = append(out, d)
		}
	}
	return out
}

func matches(d document.Document, c query.Clause) bool {
	switch v := c.(type) {
	case nil, query.MatchAll:
		return true
	case query.NestedFilter:
		items, _ := d[v.Path].([]any)
		for _, it := range items {
			if m, ok := it.(map[string]any); ok && m[v.Field] == v.Value {
				return true
			}
		}
		return false
	case query.AnyOf:
		for _, sub := range v.Clauses {
			if matches(d, sub) {
				return true
			}
		}
		return false
	case query.AllOf:
		for _, sub := range v.Clauses {
			if !matches(d, sub) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// filmCorpus returns n films; film i (1-based) has rating n-i+1 so rank equals i
// under a descending rating sort. Even films belong to genre "g-even".
func filmCorpus(n int) []document.Document {
	docs := make([]document.Document, 0, n)
	for i := 1; i <= n; i++ {
		genres := []any{map[string]any{"id": "g-all", "name": "All"}}
		if i%2 == 0 {
			genres = append(genres, map[string]any{"id": "g-even", "name": "Even"})
		}
		docs = append(docs, document.Document{
			"id":          fmt.Sprintf("f%03d", i),
			"title":       fmt.Sprintf("Film %d", i),
			"imdb_rating": float64(n - i + 1),
			"genres":      genres,
		})
	}
	return docs
}

func filmsByRating(req request.Request) query.Body {
	var clause query.Clause = query.MatchAll{}
	if id := req.GenreID(); id != "" {
		clause = query.NestedFilter{Path: "genres", Field: "id", Value: id}
	}
	return query.Body{
		Query: clause,
		Sort:  &query.SortField{Field: "imdb_rating", Order: req.Sort()},
	}
}

func newTestService(t *testing.T, logger *zap.Logger) (*Service, *memCache, *memEngine) {
	t.Helper()
	if logger == nil {
		logger = zap.NewNop()
	}
	mc := newMemCache()
	me := &memEngine{docs: map[string][]document.Document{domain.Films: filmCorpus(250)}}
	return New(mc, me, nil, 0, logger), mc, me
}
