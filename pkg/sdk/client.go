package sitesearch

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/kailas-cloud/sitesearch/internal/db"
	dbRedis "github.com/kailas-cloud/sitesearch/internal/db/redis"
	"github.com/kailas-cloud/sitesearch/internal/domain"
	"github.com/kailas-cloud/sitesearch/internal/domain/search/instruction"
	"github.com/kailas-cloud/sitesearch/internal/domain/search/page"
	"github.com/kailas-cloud/sitesearch/internal/domain/search/params"
	"github.com/kailas-cloud/sitesearch/internal/domain/search/result"
	"github.com/kailas-cloud/sitesearch/internal/domain/search/scope"
	memberrepo "github.com/kailas-cloud/sitesearch/internal/repository/member"
	pageconfigrepo "github.com/kailas-cloud/sitesearch/internal/repository/pageconfig"
	searchrepo "github.com/kailas-cloud/sitesearch/internal/repository/search"
	healthuc "github.com/kailas-cloud/sitesearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/sitesearch/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Внутренние интерфейсы для подмены в тестах.
type searchUseCase interface {
	Search(ctx context.Context, pageName string, q params.Query) (page.Page, error)
}

type pageSizeWriter interface {
	SetPageSize(ctx context.Context, pageName, raw string) error
}

// Client is the sitesearch SDK entry point.
type Client struct {
	store     db.Store
	searchSvc searchUseCase
	healthSvc healthUseCase
	pageCfg   pageSizeWriter
	obs       *observer
}

// New creates a Client and connects to the database.
// The provided context is used for the readiness check and index creation.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("sitesearch: database address required (use WithRedis)")
	}
	op, err := categoryOperator(cfg.categoryOperator)
	if err != nil {
		return nil, err
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("sitesearch: create redis store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("sitesearch: database not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}

	c, err := wireClient(ctx, store, cfg, op, obs)
	if err != nil {
		store.Close()
		return nil, err
	}
	return c, nil
}

func categoryOperator(raw string) (instruction.Operator, error) {
	if raw == "" {
		return instruction.And, nil
	}
	op, err := instruction.ParseOperator(raw)
	if err != nil {
		return "", fmt.Errorf("sitesearch: %w: %w", domain.ErrInvalidConfig, err)
	}
	return op, nil
}

func wireClient(
	ctx context.Context, store db.Store, cfg *clientConfig, op instruction.Operator, obs *observer,
) (*Client, error) {
	layout := domain.DefaultIndexLayout()

	pagesRepo := searchrepo.New(store, layout.PagesIndex, layout.PagesPrefix)
	membersRepo := memberrepo.New(store, layout.MembersIndex, layout.MembersPrefix, "", 0)
	pageCfgRepo := pageconfigrepo.New(store, layout.PageConfigPrefix)

	if cfg.ensureIndexes {
		if err := pagesRepo.EnsureIndex(ctx); err != nil {
			return nil, fmt.Errorf("sitesearch: ensure pages index: %w", err)
		}
		if cfg.members {
			if err := membersRepo.EnsureIndex(ctx); err != nil {
				return nil, fmt.Errorf("sitesearch: ensure members index: %w", err)
			}
		}
	}

	searchOpts := []searchuc.Option{
		searchuc.WithPageSizeSource(pageCfgRepo),
		searchuc.WithExplain(cfg.explain),
	}
	if cfg.externalType != "" {
		searchOpts = append(searchOpts, searchuc.WithExternalType(cfg.externalType))
	}
	if cfg.maxCandidates > 0 {
		searchOpts = append(searchOpts, searchuc.WithMaxCandidates(cfg.maxCandidates))
	}
	indexNames := []string{layout.PagesIndex}
	if cfg.members {
		searchOpts = append(searchOpts, searchuc.WithMemberDirectory(membersRepo))
		indexNames = append(indexNames, layout.MembersIndex)
	}

	return &Client{
		store:     store,
		searchSvc: searchuc.New(pagesRepo, searchuc.StaticOperator(op), searchOpts...),
		healthSvc: healthuc.New(store, store, indexNames...),
		pageCfg:   pageCfgRepo,
		obs:       obs,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Search runs a site-wide search. Parameter names match the HTTP API.
func (c *Client) Search(ctx context.Context, q url.Values) (*Page, error) {
	return c.SearchPage(ctx, "", q)
}

// SearchPage runs a search on behalf of a named page, applying its configured page size.
func (c *Client) SearchPage(ctx context.Context, pageName string, q url.Values) (res *Page, err error) {
	start := time.Now()
	defer func() {
		n := 0
		if res != nil {
			n = res.TotalResults
		}
		c.obs.observeSearch(scope.Scope(q.Get(params.KeySourceScope)).Label(), n)
		c.obs.observe("search", start, err)
	}()

	p, err := c.searchSvc.Search(ctx, pageName, q)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return toPage(&p), nil
}

// SetPageSize stores the results page size for a named page.
func (c *Client) SetPageSize(ctx context.Context, pageName string, size int) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("set_page_size", start, err) }()

	if pageName == "" || size < 1 {
		return fmt.Errorf("sitesearch: %w: page %q size %d", domain.ErrInvalidConfig, pageName, size)
	}
	if err = c.pageCfg.SetPageSize(ctx, pageName, strconv.Itoa(size)); err != nil {
		return fmt.Errorf("set page size: %w", err)
	}
	return nil
}

func toPage(p *page.Page) *Page {
	out := &Page{
		TotalResults: p.Total,
		PageSize:     p.Size,
		Items:        make([]Item, 0, len(p.Items)),
	}
	for i := range p.Items {
		out.Items = append(out.Items, toItem(&p.Items[i]))
	}
	return out
}

func toItem(e *result.Entry) Item {
	it := Item{Kind: Kind(e.Kind()), Score: e.Score()}
	if h := e.Hit(); h != nil {
		it.ID = h.ID()
		it.Type = h.Type()
		it.Explanation = h.Explanation()
		it.Fields = h.Fields()
		return it
	}
	if m := e.Member(); m != nil {
		it.ID = m.ID()
		it.Key = m.Key()
		it.Fields = m.Fields()
	}
	return it
}
