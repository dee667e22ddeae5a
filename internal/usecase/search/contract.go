package search

import (
	"context"

	"github.com/kailas-cloud/sitesearch/internal/domain/search/instruction"
	"github.com/kailas-cloud/sitesearch/internal/domain/search/result"
)

// Executor runs a search instruction against the full-text index and returns
// at most maxCandidates scored hits plus the index-side total.
type Executor interface {
	Execute(
		ctx context.Context, ins instruction.Instruction,
		maxCandidates int, explain bool,
	) ([]result.Hit, int, error)
}

// SortSupport is implemented by executors that sort by only some fields.
// Executors without it are assumed to honor every sort directive.
type SortSupport interface {
	Sortable(field string) bool
}

// MemberDirectory looks up member records for the raw terms string.
type MemberDirectory interface {
	Lookup(ctx context.Context, termsRaw string) ([]result.Member, error)
}

// PageSizeSource supplies a page-level results-per-page override.
// ok is false when the page has no configured value.
type PageSizeSource interface {
	PageSize(ctx context.Context, page string) (raw string, ok bool, err error)
}

// OperatorSource supplies the operator combining category filter values.
type OperatorSource interface {
	CategoryFilterOperator() instruction.Operator
}

// StaticOperator is an OperatorSource fixed at startup.
type StaticOperator instruction.Operator

// CategoryFilterOperator implements OperatorSource.
func (o StaticOperator) CategoryFilterOperator() instruction.Operator {
	return instruction.Operator(o)
}

type noMembers struct{}

func (noMembers) Lookup(context.Context, string) ([]result.Member, error) { return nil, nil }
