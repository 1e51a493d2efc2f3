package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/moviedex/internal/domain"
	"github.com/kailas-cloud/moviedex/internal/domain/query"
)

func TestClampPage(t *testing.T) {
	tests := []struct {
		name              string
		page, size, total int
		want              int
	}{
		{"in range", 2, 10, 250, 2},
		{"last page exact", 25, 10, 250, 25},
		{"beyond last", 1000, 25, 250, 10},
		{"partial last page", 9, 10, 81, 9},
		{"beyond partial last", 10, 10, 81, 9},
		{"zero page", 0, 10, 250, 1},
		{"negative page", -3, 10, 250, 1},
		{"empty result", 5, 10, 0, 1},
		{"size larger than total", 2, 100, 42, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := clampPage(tc.page, tc.size, tc.total); got != tc.want {
				t.Errorf("clampPage(%d, %d, %d) = %d, want %d", tc.page, tc.size, tc.total, got, tc.want)
			}
		})
	}
}

func TestValidatePage_IgnoresWindow(t *testing.T) {
	svc, _, _ := newTestService(t, nil)
	body := query.Body{Query: query.MatchAll{}}.Paginate(query.Window{Offset: 0, Limit: 1})

	page, err := svc.ValidatePage(context.Background(), domain.Films, 1000, 25, body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page != 10 {
		t.Errorf("expected 10, got %d", page)
	}
}

func TestValidatePage_InvalidSize(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	_, err := svc.ValidatePage(context.Background(), domain.Films, 1, 0, query.Body{})
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestPointAndListKeys(t *testing.T) {
	if got := PointKey(domain.Films, "abc"); got != "movies::abc" {
		t.Errorf("unexpected point key %q", got)
	}
	req := mustRequest(t, 2, 10, query.OrderDesc)
	if got := ListKey(domain.Films, req); got != `movies::{"page":2,"size":10,"sort":"desc"}` {
		t.Errorf("unexpected list key %q", got)
	}
	if ListKey(domain.Films, req) != ListKey(domain.Films, mustRequest(t, 2, 10, query.OrderDesc)) {
		t.Error("equal requests must share a key")
	}
}
