package search

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/sitesearch/internal/db"
	"github.com/kailas-cloud/sitesearch/internal/domain"
	"github.com/kailas-cloud/sitesearch/internal/domain/search/instruction"
)

// --- Execute ---

func TestExecute_HappyPath(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.searchFn = func(_ context.Context, q *db.InstructionQuery) (*db.SearchResult, error) {
		if q.IndexName != "sitesearch:pages:idx" {
			t.Errorf("unexpected index: %s", q.IndexName)
		}
		if q.Limit != 200 {
			t.Errorf("unexpected limit: %d", q.Limit)
		}
		if !q.Explain {
			t.Error("expected Explain=true")
		}
		if q.FieldFor(instruction.KindCategoryID) != domain.FieldCategoryID {
			t.Errorf("unexpected category id field: %s", q.FieldFor(instruction.KindCategoryID))
		}
		return &db.SearchResult{
			Total: 2,
			Entries: []db.SearchEntry{
				{
					Key:         "sitesearch:page:about",
					Score:       0.9,
					Explanation: "tfidf",
					Fields:      map[string]string{"type": "Page", "title": "About"},
				},
				{
					Key:    "sitesearch:page:crawl-1",
					Score:  0.7,
					Fields: map[string]string{"type": domain.DefaultExternalType},
				},
			},
		}, nil
	}

	ins := instruction.NewBuilder().Add(instruction.FullText(instruction.Must, "widget")).Build()
	hits, total, err := repo.Execute(ctx, ins, 200, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 || len(hits) != 2 {
		t.Fatalf("expected 2 hits, got total=%d hits=%d", total, len(hits))
	}
	if hits[0].ID() != "about" {
		t.Errorf("expected ID about, got %s", hits[0].ID())
	}
	if hits[0].Type() != "Page" || hits[0].Score() != 0.9 {
		t.Errorf("unexpected first hit: type=%s score=%v", hits[0].Type(), hits[0].Score())
	}
	if hits[0].Explanation() != "tfidf" {
		t.Errorf("expected explanation, got %q", hits[0].Explanation())
	}
	if hits[1].Type() != domain.DefaultExternalType {
		t.Errorf("unexpected second type: %s", hits[1].Type())
	}
}

func TestExecute_StoreError(t *testing.T) {
	repo, ms := newTestRepo(t)
	storeErr := errors.New("connection refused")
	ms.searchFn = func(context.Context, *db.InstructionQuery) (*db.SearchResult, error) {
		return nil, storeErr
	}

	_, _, err := repo.Execute(context.Background(), instruction.NewBuilder().Build(), 200, false)
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestExecute_NilResult(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.searchFn = func(context.Context, *db.InstructionQuery) (*db.SearchResult, error) {
		return nil, nil
	}

	hits, total, err := repo.Execute(context.Background(), instruction.NewBuilder().Build(), 200, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 0 || total != 0 {
		t.Errorf("expected empty, got %d hits total %d", len(hits), total)
	}
}

func TestExecute_DropsUnsortableSort(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.searchFn = func(_ context.Context, q *db.InstructionQuery) (*db.SearchResult, error) {
		if sorts := q.Instruction.Sorts(); len(sorts) != 0 {
			t.Errorf("expected no sorts, got %+v", sorts)
		}
		if len(q.Instruction.Clauses()) != 2 {
			t.Errorf("expected clauses preserved, got %d", len(q.Instruction.Clauses()))
		}
		return &db.SearchResult{}, nil
	}

	ins := instruction.NewBuilder().
		Add(instruction.FullText(instruction.Must, "widget")).
		Add(instruction.Types(instruction.Must, "Page")).
		SortBy("__content", true).
		Build()
	if _, _, err := repo.Execute(context.Background(), ins, 10, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExecute_KeepsSortableSort(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.searchFn = func(_ context.Context, q *db.InstructionQuery) (*db.SearchResult, error) {
		sorts := q.Instruction.Sorts()
		if len(sorts) != 1 || sorts[0].Field != "title" || sorts[0].Descending {
			t.Errorf("unexpected sorts: %+v", sorts)
		}
		return &db.SearchResult{}, nil
	}

	ins := instruction.NewBuilder().SortBy("title", false).Build()
	if _, _, err := repo.Execute(context.Background(), ins, 10, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSortable(t *testing.T) {
	repo, _ := newTestRepo(t)
	for field, want := range map[string]bool{
		"title": true, "url": true, "published": true,
		"__content": false, "date": false, "": false,
	} {
		if got := repo.Sortable(field); got != want {
			t.Errorf("Sortable(%q) = %v, want %v", field, got, want)
		}
	}
}

// --- EnsureIndex ---

func TestEnsureIndex_Exists(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.createIndexFn = func(context.Context, *db.IndexDefinition) error {
		t.Error("CreateIndex must not be called")
		return nil
	}
	if err := repo.EnsureIndex(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEnsureIndex_Creates(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.indexExistsFn = func(context.Context, string) (bool, error) { return false, nil }

	var created *db.IndexDefinition
	ms.createIndexFn = func(_ context.Context, def *db.IndexDefinition) error {
		created = def
		return nil
	}

	if err := repo.EnsureIndex(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil {
		t.Fatal("expected CreateIndex call")
	}
	if created.Name != "sitesearch:pages:idx" {
		t.Errorf("unexpected name: %s", created.Name)
	}
	if len(created.Prefixes) != 1 || created.Prefixes[0] != "sitesearch:page:" {
		t.Errorf("unexpected prefixes: %v", created.Prefixes)
	}

	fields := make(map[string]db.IndexField, len(created.Fields))
	for _, f := range created.Fields {
		fields[f.Name] = f
	}
	if fields[domain.FieldContent].Type != db.IndexFieldText {
		t.Error("expected TEXT content field")
	}
	if !fields[domain.FieldTitle].Sortable {
		t.Error("expected sortable title")
	}
	if f := fields[domain.FieldPublished]; f.Type != db.IndexFieldNumeric || !f.Sortable {
		t.Errorf("expected sortable NUMERIC published, got %+v", f)
	}
	if fields[domain.FieldCategoryID].TagSeparator != "|" {
		t.Error("expected | separator on category_id")
	}
}

func TestEnsureIndex_RaceIsNotAnError(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.indexExistsFn = func(context.Context, string) (bool, error) { return false, nil }
	ms.createIndexFn = func(context.Context, *db.IndexDefinition) error { return db.ErrIndexExists }

	if err := repo.EnsureIndex(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEnsureIndex_ExistsCheckError(t *testing.T) {
	repo, ms := newTestRepo(t)
	checkErr := errors.New("timeout")
	ms.indexExistsFn = func(context.Context, string) (bool, error) { return false, checkErr }

	if err := repo.EnsureIndex(context.Background()); !errors.Is(err, checkErr) {
		t.Fatalf("expected existence check error, got %v", err)
	}
}
