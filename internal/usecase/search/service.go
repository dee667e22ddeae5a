package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/sitesearch/internal/domain"
	"github.com/kailas-cloud/sitesearch/internal/domain/search/instruction"
	"github.com/kailas-cloud/sitesearch/internal/domain/search/page"
	"github.com/kailas-cloud/sitesearch/internal/domain/search/params"
	"github.com/kailas-cloud/sitesearch/internal/domain/search/result"
	"github.com/kailas-cloud/sitesearch/internal/logger"
	"github.com/kailas-cloud/sitesearch/internal/metrics"
)

// DefaultMaxCandidates bounds how many index hits are fetched before merging.
const DefaultMaxCandidates = 200

// Service runs the search pipeline: normalize, build, execute, merge, paginate.
type Service struct {
	exec          Executor
	ops           OperatorSource
	members       MemberDirectory
	pageSizes     PageSizeSource
	ranker        Ranker
	isExternal    func(*result.Hit) bool
	maxCandidates int
	explain       bool
}

// Option configures a Service.
type Option func(*Service)

// WithMemberDirectory enables member-directory results.
func WithMemberDirectory(m MemberDirectory) Option {
	return func(s *Service) { s.members = m }
}

// WithPageSizeSource enables page-level page size overrides.
func WithPageSizeSource(p PageSizeSource) Option {
	return func(s *Service) { s.pageSizes = p }
}

// WithRanker replaces the member ordering strategy.
func WithRanker(r Ranker) Option {
	return func(s *Service) { s.ranker = r }
}

// WithExternalType sets the type tag marking externally crawled hits.
func WithExternalType(t string) Option {
	return func(s *Service) { s.isExternal = TypeMatcher(t) }
}

// WithMaxCandidates sets the executor candidate bound.
func WithMaxCandidates(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxCandidates = n
		}
	}
}

// WithExplain asks the executor for score explanations.
func WithExplain(on bool) Option {
	return func(s *Service) { s.explain = on }
}

// New creates a search service.
func New(exec Executor, ops OperatorSource, opts ...Option) *Service {
	s := &Service{
		exec:          exec,
		ops:           ops,
		members:       noMembers{},
		ranker:        KeyPrefixRanker{Separator: DefaultMemberKeySeparator},
		isExternal:    TypeMatcher(domain.DefaultExternalType),
		maxCandidates: DefaultMaxCandidates,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Search answers one search request for the named page.
// Malformed parameters never fail; only an index failure is returned,
// wrapped with domain.ErrSearchUnavailable.
func (s *Service) Search(ctx context.Context, pageName string, q params.Query) (page.Page, error) {
	log := logger.FromContext(ctx)

	p := s.applyPageSize(ctx, pageName, params.Normalize(q))
	ins := BuildInstruction(p, s.ops.CategoryFilterOperator())

	var (
		hits    []result.Hit
		members []result.Member
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		start := time.Now()
		h, _, err := s.exec.Execute(gctx, ins, s.maxCandidates, s.explain)
		metrics.SearchExecuteDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			return errors.Join(domain.ErrSearchUnavailable, fmt.Errorf("execute instruction: %w", err))
		}
		hits = h
		return nil
	})
	g.Go(func() error {
		m, err := s.members.Lookup(gctx, p.TermsRaw)
		if errors.Is(err, context.Canceled) && gctx.Err() != nil {
			return nil
		}
		if err != nil {
			metrics.MemberLookupFailuresTotal.Inc()
			log.Warn("member lookup failed, continuing without members", zap.Error(err))
			return nil
		}
		members = m
		return nil
	})
	if err := g.Wait(); err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(p.Scope.Label(), "error").Inc()
		return page.Page{}, err
	}

	entries := Merge(hits, members, p.Scope, s.isExternal, s.ranker, s.sortsHits(ins))

	metrics.SearchRequestsTotal.WithLabelValues(p.Scope.Label(), "ok").Inc()
	metrics.SearchResults.WithLabelValues(p.Scope.Label()).Observe(float64(len(entries)))

	log.Debug("search assembled",
		zap.Int("hits", len(hits)),
		zap.Int("members", len(members)),
		zap.Int("ranked", len(entries)),
		zap.String("scope", p.Scope.Label()),
	)

	return page.Cut(entries, page.Request{Number: p.Page, Size: p.PageSize, All: p.All}), nil
}

// sortsHits reports whether the executor returns hits already ordered by a
// sort directive of ins.
func (s *Service) sortsHits(ins instruction.Instruction) bool {
	sorts := ins.Sorts()
	if len(sorts) == 0 {
		return false
	}
	sup, ok := s.exec.(SortSupport)
	if !ok {
		return true
	}
	for _, so := range sorts {
		if sup.Sortable(so.Field) {
			return true
		}
	}
	return false
}

func (s *Service) applyPageSize(ctx context.Context, pageName string, p params.Params) params.Params {
	if s.pageSizes == nil {
		return p
	}
	raw, ok, err := s.pageSizes.PageSize(ctx, pageName)
	if err != nil {
		logger.FromContext(ctx).Warn("page size lookup failed", zap.String("page", pageName), zap.Error(err))
		return p
	}
	if !ok {
		return p
	}
	return p.WithPageSizeOverride(raw)
}
