package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/sitesearch/internal/db"
	"github.com/kailas-cloud/sitesearch/internal/domain"
	"github.com/kailas-cloud/sitesearch/internal/domain/search/instruction"
	"github.com/kailas-cloud/sitesearch/internal/domain/search/result"
	"github.com/kailas-cloud/sitesearch/internal/logger"
)

// store is the consumer interface for page search operations (ISP).
type store interface {
	Search(ctx context.Context, q *db.InstructionQuery) (*db.SearchResult, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// kindFields maps instruction clause kinds onto the pages index schema.
var kindFields = map[instruction.Kind]string{
	instruction.KindType:       domain.FieldType,
	instruction.KindSource:     domain.FieldSource,
	instruction.KindLocale:     domain.FieldLocale,
	instruction.KindCategory:   domain.FieldCategory,
	instruction.KindCategoryID: domain.FieldCategoryID,
}

// sortableFields are declared SORTABLE in the pages index.
var sortableFields = map[string]bool{
	domain.FieldTitle:     true,
	domain.FieldURL:       true,
	domain.FieldPublished: true,
}

// Repo implements usecase/search.Executor over the pages FT index.
type Repo struct {
	store  store
	index  string
	prefix string
}

// New creates a page search repository.
func New(s store, index, prefix string) *Repo {
	return &Repo{store: s, index: index, prefix: prefix}
}

// Execute runs the instruction and returns up to maxCandidates scored hits
// together with the index-side total.
func (r *Repo) Execute(
	ctx context.Context, ins instruction.Instruction, maxCandidates int, explain bool,
) ([]result.Hit, int, error) {
	q := &db.InstructionQuery{
		IndexName:   r.index,
		Instruction: r.dropUnsortable(ctx, ins),
		Limit:       maxCandidates,
		Explain:     explain,
		KindFields:  kindFields,
	}

	sr, err := r.store.Search(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("search %s: %w", r.index, err)
	}
	if sr == nil {
		return nil, 0, nil
	}

	hits := make([]result.Hit, 0, len(sr.Entries))
	for _, e := range sr.Entries {
		id := strings.TrimPrefix(e.Key, r.prefix)
		h := result.NewHit(id, e.Fields[domain.FieldType], e.Score, e.Fields)
		if e.Explanation != "" {
			h = h.WithExplanation(e.Explanation)
		}
		hits = append(hits, h)
	}

	return hits, sr.Total, nil
}

// Sortable reports whether the index can sort hits by field.
func (r *Repo) Sortable(field string) bool {
	return sortableFields[field]
}

// dropUnsortable removes sort directives on fields the index cannot sort by;
// those requests fall back to relevance order.
func (r *Repo) dropUnsortable(ctx context.Context, ins instruction.Instruction) instruction.Instruction {
	sorts := ins.Sorts()
	if len(sorts) == 0 {
		return ins
	}

	b := instruction.NewBuilder()
	for _, c := range ins.Clauses() {
		b.Add(c)
	}
	for _, s := range sorts {
		if !sortableFields[s.Field] {
			logger.FromContext(ctx).Debug("ignoring sort on unsortable field", zap.String("field", s.Field))
			continue
		}
		b.SortBy(s.Field, s.Descending)
	}
	return b.Build()
}

// EnsureIndex creates the pages index when it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, r.index)
	if err != nil {
		return fmt.Errorf("check index %s: %w", r.index, err)
	}
	if exists {
		return nil
	}

	def, err := PagesIndex(r.index, r.prefix)
	if err != nil {
		return err
	}
	if err := r.store.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create index %s: %w", r.index, err)
	}
	return nil
}

// PagesIndex describes the pages FT index schema.
func PagesIndex(name, prefix string) (*db.IndexDefinition, error) {
	return db.NewIndex(name).
		Prefix(prefix).
		Text(domain.FieldContent).
		WeightedText(domain.FieldTitle, 2).Sortable().
		Tag(domain.FieldURL).Sortable().
		Numeric(domain.FieldPublished).Sortable().
		Tag(domain.FieldType).
		Tag(domain.FieldSource).
		Tag(domain.FieldLocale).
		TagWithOpts(domain.FieldCategory, "|", false).
		TagWithOpts(domain.FieldCategoryID, "|", false).
		Build()
}
