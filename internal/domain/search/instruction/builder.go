package instruction

import "golang.org/x/text/language"

// Builder accumulates clauses and sort directives. Clauses are only ever appended.
type Builder struct {
	ins Instruction
}

// NewBuilder starts an empty instruction.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends a clause.
func (b *Builder) Add(c Clause) *Builder {
	b.ins.clauses = append(b.ins.clauses, c)
	return b
}

// SortBy appends a culture-invariant sort directive.
func (b *Builder) SortBy(field string, descending bool) *Builder {
	b.ins.sorts = append(b.ins.sorts, Sort{
		Field:      field,
		Descending: descending,
		Collation:  language.Und,
	})
	return b
}

// Build returns the accumulated instruction. A full-text clause with no
// terms is prepended if none was added.
func (b *Builder) Build() Instruction {
	ins := Instruction{
		clauses: append([]Clause(nil), b.ins.clauses...),
		sorts:   append([]Sort(nil), b.ins.sorts...),
	}
	if !ins.HasFullText() {
		ins.clauses = append([]Clause{FullText(Must)}, ins.clauses...)
	}
	return ins
}
