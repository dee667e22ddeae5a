package sitesearch

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/kailas-cloud/sitesearch/internal/domain"
	"github.com/kailas-cloud/sitesearch/internal/domain/search/page"
	"github.com/kailas-cloud/sitesearch/internal/domain/search/params"
	"github.com/kailas-cloud/sitesearch/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/sitesearch/internal/usecase/health"
)

type mockSearchUC struct {
	searchFn func(ctx context.Context, pageName string, q params.Query) (page.Page, error)
}

func (m *mockSearchUC) Search(ctx context.Context, pageName string, q params.Query) (page.Page, error) {
	return m.searchFn(ctx, pageName, q)
}

type mockPageCfg struct {
	page, raw string
	err       error
}

func (m *mockPageCfg) SetPageSize(_ context.Context, pageName, raw string) error {
	m.page, m.raw = pageName, raw
	return m.err
}

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(context.Context) healthuc.Report { return m.report }

func TestClient_Search(t *testing.T) {
	hit := result.NewHit("p1", "Page", 2.5, map[string]string{"title": "Widget"}).WithExplanation("TFIDF")
	member := result.NewMember("0.8_m1", "m1", map[string]string{"name": "Ann"})

	var gotPage, gotTerms string
	c := &Client{searchSvc: &mockSearchUC{
		searchFn: func(_ context.Context, pageName string, q params.Query) (page.Page, error) {
			gotPage, gotTerms = pageName, q.Get("terms")
			return page.Page{
				Total: 7,
				Size:  2,
				Items: []result.Entry{result.FromHit(hit, false), result.FromMember(member, 0.8)},
			}, nil
		},
	}}

	res, err := c.Search(context.Background(), url.Values{"terms": {"widget"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPage != "" || gotTerms != "widget" {
		t.Errorf("forwarded page=%q terms=%q", gotPage, gotTerms)
	}
	if res.TotalResults != 7 || res.PageSize != 2 || len(res.Items) != 2 {
		t.Fatalf("unexpected page: %+v", res)
	}

	first := res.Items[0]
	if first.Kind != KindLocal || first.ID != "p1" || first.Type != "Page" || first.Explanation != "TFIDF" {
		t.Errorf("unexpected hit item: %+v", first)
	}
	second := res.Items[1]
	if second.Kind != KindMember || second.ID != "m1" || second.Key != "0.8_m1" || second.Score != 0.8 {
		t.Errorf("unexpected member item: %+v", second)
	}
}

func TestClient_SearchPage_ForwardsPageName(t *testing.T) {
	var gotPage string
	c := &Client{searchSvc: &mockSearchUC{
		searchFn: func(_ context.Context, pageName string, _ params.Query) (page.Page, error) {
			gotPage = pageName
			return page.Page{Items: []result.Entry{}}, nil
		},
	}}

	res, err := c.SearchPage(context.Background(), "news", url.Values{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPage != "news" {
		t.Errorf("page = %q, want news", gotPage)
	}
	if res.Items == nil {
		t.Error("expected non-nil empty items")
	}
}

func TestClient_Search_Error(t *testing.T) {
	c := &Client{searchSvc: &mockSearchUC{
		searchFn: func(context.Context, string, params.Query) (page.Page, error) {
			return page.Page{}, errors.Join(domain.ErrSearchUnavailable, errors.New("conn refused"))
		},
	}}

	_, err := c.Search(context.Background(), url.Values{"terms": {"x"}})
	if !errors.Is(err, ErrSearchUnavailable) {
		t.Fatalf("expected ErrSearchUnavailable, got %v", err)
	}
}

func TestClient_SetPageSize(t *testing.T) {
	cfg := &mockPageCfg{}
	c := &Client{pageCfg: cfg}

	if err := c.SetPageSize(context.Background(), "news", 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.page != "news" || cfg.raw != "4" {
		t.Errorf("stored page=%q raw=%q", cfg.page, cfg.raw)
	}
}

func TestClient_SetPageSize_Invalid(t *testing.T) {
	c := &Client{pageCfg: &mockPageCfg{}}

	for _, tc := range []struct {
		page string
		size int
	}{{"", 4}, {"news", 0}, {"news", -1}} {
		if err := c.SetPageSize(context.Background(), tc.page, tc.size); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("SetPageSize(%q, %d): expected ErrInvalidConfig, got %v", tc.page, tc.size, err)
		}
	}
}

func TestClient_SetPageSize_StoreError(t *testing.T) {
	c := &Client{pageCfg: &mockPageCfg{err: errors.New("db down")}}
	if err := c.SetPageSize(context.Background(), "news", 4); err == nil {
		t.Fatal("expected error")
	}
}

func TestClient_Health(t *testing.T) {
	c := &Client{healthSvc: &mockHealthUC{report: healthuc.Report{
		Status: healthuc.Degraded,
		Checks: map[string]healthuc.CheckResult{"database": healthuc.CheckOK, "sitesearch:pages:idx": healthuc.CheckMissing},
	}}}

	h := c.Health(context.Background())
	if h.Status != "degraded" {
		t.Errorf("status = %q, want degraded", h.Status)
	}
	if h.Checks["sitesearch:pages:idx"] != "missing" || h.Checks["database"] != "ok" {
		t.Errorf("unexpected checks: %v", h.Checks)
	}
}
