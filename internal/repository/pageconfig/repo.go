package pageconfig

import (
	"context"
	"fmt"
)

// FieldResultsPageSize holds a page's configured results-per-page.
const FieldResultsPageSize = "results_page_size"

// store is the consumer interface for page configuration reads (ISP).
type store interface {
	HGet(ctx context.Context, key, field string) (string, bool, error)
	HSet(ctx context.Context, key string, fields map[string]string) error
}

// Repo implements usecase/search.PageSizeSource over per-page hashes.
type Repo struct {
	store  store
	prefix string
}

// New creates a page configuration repository.
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

// PageSize returns the raw configured page size for the page, if any.
func (r *Repo) PageSize(ctx context.Context, page string) (string, bool, error) {
	if page == "" {
		return "", false, nil
	}

	raw, ok, err := r.store.HGet(ctx, r.prefix+page, FieldResultsPageSize)
	if err != nil {
		return "", false, fmt.Errorf("get page config %s: %w", page, err)
	}
	return raw, ok, nil
}

// SetPageSize stores a page's results-per-page value.
func (r *Repo) SetPageSize(ctx context.Context, page, raw string) error {
	if err := r.store.HSet(ctx, r.prefix+page, map[string]string{FieldResultsPageSize: raw}); err != nil {
		return fmt.Errorf("set page config %s: %w", page, err)
	}
	return nil
}
