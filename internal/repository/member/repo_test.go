package member

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/sitesearch/internal/db"
	"github.com/kailas-cloud/sitesearch/internal/domain"
	"github.com/kailas-cloud/sitesearch/internal/domain/search/instruction"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	searchFn      func(ctx context.Context, q *db.InstructionQuery) (*db.SearchResult, error)
	createIndexFn func(ctx context.Context, def *db.IndexDefinition) error
	indexExists   bool
	searchCalls   int
}

func (m *mockStore) Search(ctx context.Context, q *db.InstructionQuery) (*db.SearchResult, error) {
	m.searchCalls++
	if m.searchFn != nil {
		return m.searchFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if m.createIndexFn != nil {
		return m.createIndexFn(ctx, def)
	}
	return nil
}

func (m *mockStore) IndexExists(context.Context, string) (bool, error) {
	return m.indexExists, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, "sitesearch:members:idx", "sitesearch:member:", "", 0), ms
}

func TestLookup_KeysCarryScorePrefix(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.searchFn = func(_ context.Context, q *db.InstructionQuery) (*db.SearchResult, error) {
		if q.IndexName != "sitesearch:members:idx" {
			t.Errorf("unexpected index: %s", q.IndexName)
		}
		if q.Limit != DefaultLimit {
			t.Errorf("unexpected limit: %d", q.Limit)
		}
		ft := q.Instruction.ByOccur(instruction.Must)[0]
		if ft.Kind() != instruction.KindFullText || len(ft.Values()) != 2 {
			t.Errorf("unexpected clause: %v %v", ft.Kind(), ft.Values())
		}
		return &db.SearchResult{
			Total: 1,
			Entries: []db.SearchEntry{{
				Key:    "sitesearch:member:id123",
				Score:  0.8,
				Fields: map[string]string{"name": "Acme"},
			}},
		}, nil
	}

	members, err := repo.Lookup(context.Background(), "acme, widgets")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(members) != 1 {
		t.Fatalf("expected 1 member, got %d", len(members))
	}
	if members[0].Key() != "0.8_id123" {
		t.Errorf("key = %q, want 0.8_id123", members[0].Key())
	}
	if members[0].ID() != "id123" || members[0].Fields()["name"] != "Acme" {
		t.Errorf("unexpected member: %s %v", members[0].ID(), members[0].Fields())
	}
}

func TestLookup_BlankTermsSkipStore(t *testing.T) {
	repo, ms := newTestRepo(t)
	for _, raw := range []string{"", "  ", ",,"} {
		members, err := repo.Lookup(context.Background(), raw)
		if err != nil || members != nil {
			t.Errorf("Lookup(%q) = %v, %v", raw, members, err)
		}
	}
	if ms.searchCalls != 0 {
		t.Errorf("expected no store calls, got %d", ms.searchCalls)
	}
}

func TestLookup_CustomSeparator(t *testing.T) {
	ms := &mockStore{
		searchFn: func(context.Context, *db.InstructionQuery) (*db.SearchResult, error) {
			return &db.SearchResult{Total: 1, Entries: []db.SearchEntry{{Key: "m:7", Score: 2}}}, nil
		},
	}
	repo := New(ms, "idx", "m:", "|", 5)

	members, err := repo.Lookup(context.Background(), "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if members[0].Key() != "2|7" {
		t.Errorf("key = %q, want 2|7", members[0].Key())
	}
}

func TestLookup_StoreError(t *testing.T) {
	repo, ms := newTestRepo(t)
	storeErr := errors.New("down")
	ms.searchFn = func(context.Context, *db.InstructionQuery) (*db.SearchResult, error) {
		return nil, storeErr
	}
	if _, err := repo.Lookup(context.Background(), "acme"); !errors.Is(err, storeErr) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestEnsureIndex_Creates(t *testing.T) {
	repo, ms := newTestRepo(t)
	var created *db.IndexDefinition
	ms.createIndexFn = func(_ context.Context, def *db.IndexDefinition) error {
		created = def
		return nil
	}

	if err := repo.EnsureIndex(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil || created.Fields[0].Name != domain.FieldName {
		t.Fatalf("unexpected definition: %+v", created)
	}
}

func TestEnsureIndex_Exists(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.indexExists = true
	ms.createIndexFn = func(context.Context, *db.IndexDefinition) error {
		t.Error("CreateIndex must not be called")
		return nil
	}
	if err := repo.EnsureIndex(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
