package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

type mockIndexes struct {
	missing map[string]bool
	err     error
	calls   int
}

func (m *mockIndexes) IndexExists(_ context.Context, collection string) (bool, error) {
	m.calls++
	if m.err != nil {
		return false, m.err
	}
	return !m.missing[collection], nil
}

var testCollections = []string{"movies", "genres", "persons"}

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockPinger{}, &mockPinger{}, &mockIndexes{}, testCollections)
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	for _, name := range []string{"cache", "search", "index:movies", "index:genres", "index:persons"} {
		if r.Checks[name] != CheckOK {
			t.Errorf("expected %s %q, got %q", name, CheckOK, r.Checks[name])
		}
	}
}

func TestCheck_CacheDown(t *testing.T) {
	svc := New(&mockPinger{err: errors.New("conn refused")}, &mockPinger{}, &mockIndexes{}, testCollections)
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["cache"] != CheckError {
		t.Errorf("expected cache %q, got %q", CheckError, r.Checks["cache"])
	}
}

func TestCheck_SearchDown(t *testing.T) {
	idx := &mockIndexes{}
	svc := New(&mockPinger{}, &mockPinger{err: errors.New("timeout")}, idx, testCollections)
	r := svc.Check(context.Background())

	if r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
	if idx.calls != 0 {
		t.Error("indexes should not be probed when search is down")
	}
}

func TestCheck_MissingIndex(t *testing.T) {
	svc := New(&mockPinger{}, &mockPinger{}, &mockIndexes{missing: map[string]bool{"persons": true}}, testCollections)
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["index:persons"] != CheckMissing {
		t.Errorf("expected persons index %q, got %q", CheckMissing, r.Checks["index:persons"])
	}
	if r.Checks["index:movies"] != CheckOK {
		t.Errorf("expected movies index %q, got %q", CheckOK, r.Checks["index:movies"])
	}
}

func TestCheck_IndexProbeError(t *testing.T) {
	svc := New(&mockPinger{}, &mockPinger{}, &mockIndexes{err: errors.New("boom")}, testCollections)
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["index:genres"] != CheckError {
		t.Errorf("expected genres index %q, got %q", CheckError, r.Checks["index:genres"])
	}
}
