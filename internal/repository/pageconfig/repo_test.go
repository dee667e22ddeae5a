package pageconfig

import (
	"context"
	"errors"
	"testing"
)

type mockStore struct {
	hashes map[string]map[string]string
	err    error
}

func (m *mockStore) HGet(_ context.Context, key, field string) (string, bool, error) {
	if m.err != nil {
		return "", false, m.err
	}
	v, ok := m.hashes[key][field]
	return v, ok, nil
}

func (m *mockStore) HSet(_ context.Context, key string, fields map[string]string) error {
	if m.err != nil {
		return m.err
	}
	if m.hashes == nil {
		m.hashes = make(map[string]map[string]string)
	}
	h := m.hashes[key]
	if h == nil {
		h = make(map[string]string)
		m.hashes[key] = h
	}
	for k, v := range fields {
		h[k] = v
	}
	return nil
}

func TestPageSize(t *testing.T) {
	ms := &mockStore{hashes: map[string]map[string]string{
		"sitesearch:pagecfg:news":  {FieldResultsPageSize: "25"},
		"sitesearch:pagecfg:blank": {"other": "x"},
	}}
	repo := New(ms, "sitesearch:pagecfg:")

	tests := []struct {
		page   string
		want   string
		wantOK bool
	}{
		{"news", "25", true},
		{"blank", "", false},
		{"missing", "", false},
		{"", "", false},
	}
	for _, tc := range tests {
		got, ok, err := repo.PageSize(context.Background(), tc.page)
		if err != nil {
			t.Fatalf("PageSize(%q): unexpected error: %v", tc.page, err)
		}
		if got != tc.want || ok != tc.wantOK {
			t.Errorf("PageSize(%q) = %q, %v; want %q, %v", tc.page, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestPageSize_Error(t *testing.T) {
	storeErr := errors.New("down")
	repo := New(&mockStore{err: storeErr}, "p:")
	if _, _, err := repo.PageSize(context.Background(), "news"); !errors.Is(err, storeErr) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestSetPageSize_RoundTrip(t *testing.T) {
	repo := New(&mockStore{}, "p:")
	ctx := context.Background()

	if err := repo.SetPageSize(ctx, "news", "5"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok, err := repo.PageSize(ctx, "news")
	if err != nil || !ok || got != "5" {
		t.Errorf("PageSize = %q, %v, %v", got, ok, err)
	}
}
