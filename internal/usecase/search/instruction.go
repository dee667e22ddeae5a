package search

import (
	"github.com/kailas-cloud/sitesearch/internal/domain/search/instruction"
	"github.com/kailas-cloud/sitesearch/internal/domain/search/params"
)

// BuildInstruction translates normalized params into a search instruction.
// Every filter is a MUST clause; an unusable operator falls back to AND.
func BuildInstruction(p params.Params, op instruction.Operator) instruction.Instruction {
	if !op.IsValid() {
		op = instruction.And
	}

	b := instruction.NewBuilder().
		Add(instruction.FullText(instruction.Must, p.Terms...))

	if len(p.Types) > 0 {
		b.Add(instruction.Types(instruction.Must, p.Types...))
	}
	if len(p.Sources) > 0 {
		b.Add(instruction.Sources(instruction.Must, p.Sources...))
	}
	if p.SortBy != "" {
		b.SortBy(p.SortBy, !p.SortAscending)
	}
	if len(p.Locales) > 0 {
		b.Add(instruction.Locales(instruction.Must, p.Locales...))
	}
	if len(p.Categories) > 0 {
		if p.CategoriesByID {
			b.Add(instruction.CategoryIDs(instruction.Must, op, p.Categories...))
		} else {
			b.Add(instruction.Categories(instruction.Must, op, p.Categories...))
		}
	}

	return b.Build()
}
