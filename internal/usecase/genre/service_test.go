package genre

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/moviedex/internal/domain"
	"github.com/kailas-cloud/moviedex/internal/domain/query"
	"github.com/kailas-cloud/moviedex/internal/domain/request"
)

func TestListQuery(t *testing.T) {
	req, _ := request.New(1, 50)
	body := ListQuery(req)

	if body.Query != (query.MatchAll{}) {
		t.Errorf("expected MatchAll, got %#v", body.Query)
	}
	if body.Sort == nil || *body.Sort != (query.SortField{Field: "name", Order: query.OrderAsc}) {
		t.Errorf("unexpected sort: %+v", body.Sort)
	}
}

func TestSearchQuery(t *testing.T) {
	req, _ := request.New(1, 50)
	req, _ = req.WithQuery("sci-fi")

	body := SearchQuery(req)
	if body.Query != query.Clause(query.Match{Field: "name", Value: "sci-fi"}) {
		t.Errorf("unexpected clause: %#v", body.Query)
	}
}

func TestService_ListAndGet(t *testing.T) {
	m := &mockRetriever{}
	svc := New(m)
	req, _ := request.New(1, 50)

	if _, err := svc.List(context.Background(), req); err != nil {
		t.Fatalf("List: %v", err)
	}
	if _, err := svc.Get(context.Background(), "g1"); err != nil {
		t.Fatalf("Get: %v", err)
	}
	for _, c := range m.collections {
		if c != domain.Genres {
			t.Errorf("unexpected collection %q", c)
		}
	}
}

func TestService_SearchRequiresQuery(t *testing.T) {
	req, _ := request.New(1, 50)
	_, err := New(&mockRetriever{}).Search(context.Background(), req)
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}
