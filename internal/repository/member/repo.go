package member

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/sitesearch/internal/db"
	"github.com/kailas-cloud/sitesearch/internal/domain"
	"github.com/kailas-cloud/sitesearch/internal/domain/search/instruction"
	"github.com/kailas-cloud/sitesearch/internal/domain/search/params"
	"github.com/kailas-cloud/sitesearch/internal/domain/search/result"
)

// DefaultLimit caps the member records returned per lookup.
const DefaultLimit = 50

// store is the consumer interface for member directory operations (ISP).
type store interface {
	Search(ctx context.Context, q *db.InstructionQuery) (*db.SearchResult, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Repo implements usecase/search.MemberDirectory over the members FT index.
type Repo struct {
	store     store
	index     string
	prefix    string
	separator string
	limit     int
}

// New creates a member directory repository. Records are keyed
// "<score><separator><id>".
func New(s store, index, prefix, separator string, limit int) *Repo {
	if separator == "" {
		separator = "_"
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Repo{store: s, index: index, prefix: prefix, separator: separator, limit: limit}
}

// Lookup searches member records matching the raw comma-separated terms.
// Blank terms match nothing and do not touch the store.
func (r *Repo) Lookup(ctx context.Context, termsRaw string) ([]result.Member, error) {
	terms := params.SplitList(termsRaw)
	if len(terms) == 0 {
		return nil, nil
	}

	sr, err := r.store.Search(ctx, &db.InstructionQuery{
		IndexName:   r.index,
		Instruction: instruction.NewBuilder().Add(instruction.FullText(instruction.Must, terms...)).Build(),
		Limit:       r.limit,
	})
	if err != nil {
		return nil, fmt.Errorf("lookup members: %w", err)
	}
	if sr == nil {
		return nil, nil
	}

	members := make([]result.Member, 0, len(sr.Entries))
	for _, e := range sr.Entries {
		id := strings.TrimPrefix(e.Key, r.prefix)
		key := strconv.FormatFloat(e.Score, 'f', -1, 64) + r.separator + id
		members = append(members, result.NewMember(key, id, e.Fields))
	}
	return members, nil
}

// EnsureIndex creates the members index when it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, r.index)
	if err != nil {
		return fmt.Errorf("check index %s: %w", r.index, err)
	}
	if exists {
		return nil
	}

	def, err := db.NewIndex(r.index).
		Prefix(r.prefix).
		WeightedText(domain.FieldName, 2).Sortable().
		Text(domain.FieldContent).
		Build()
	if err != nil {
		return err
	}
	if err := r.store.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create index %s: %w", r.index, err)
	}
	return nil
}
