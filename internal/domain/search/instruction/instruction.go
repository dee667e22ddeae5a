// Package instruction models a structured full-text search instruction:
// an ordered list of clauses with boolean occurrence modes plus sort directives.
package instruction

import (
	"fmt"

	"golang.org/x/text/language"
)

// Occur is the boolean requirement mode of a clause.
type Occur string

// Occur constants.
const (
	Must    Occur = "MUST"
	Should  Occur = "SHOULD"
	MustNot Occur = "MUST_NOT"
)

// IsValid checks if the occur mode is one of the supported values.
func (o Occur) IsValid() bool {
	return o == Must || o == Should || o == MustNot
}

// Operator combines multiple values inside a single clause.
type Operator string

// Operator constants.
const (
	And Operator = "AND"
	Or  Operator = "OR"
)

// IsValid checks if the operator is one of the supported values.
func (o Operator) IsValid() bool {
	return o == And || o == Or
}

// ParseOperator maps a configuration value to an Operator.
func ParseOperator(s string) (Operator, error) {
	switch Operator(s) {
	case And, "and":
		return And, nil
	case Or, "or":
		return Or, nil
	default:
		return "", fmt.Errorf("unknown category filter operator %q", s)
	}
}

// Kind identifies what a clause matches against.
type Kind string

// Clause kinds.
const (
	KindFullText   Kind = "fulltext"
	KindType       Kind = "type"
	KindSource     Kind = "source"
	KindLocale     Kind = "locale"
	KindCategory   Kind = "category"
	KindCategoryID Kind = "category_id"
)

// Clause is a single match condition.
type Clause struct {
	occur    Occur
	kind     Kind
	values   []string
	operator Operator
}

// FullText matches documents containing every term.
func FullText(occur Occur, terms ...string) Clause {
	return Clause{occur: occur, kind: KindFullText, values: terms, operator: And}
}

// Types restricts matches to any of the given document types.
func Types(occur Occur, types ...string) Clause {
	return Clause{occur: occur, kind: KindType, values: types, operator: Or}
}

// Sources restricts matches to any of the given index sources.
func Sources(occur Occur, sources ...string) Clause {
	return Clause{occur: occur, kind: KindSource, values: sources, operator: Or}
}

// Locales restricts matches to any of the given locales.
func Locales(occur Occur, locales ...string) Clause {
	return Clause{occur: occur, kind: KindLocale, values: locales, operator: Or}
}

// Categories matches category names combined with op.
func Categories(occur Occur, op Operator, names ...string) Clause {
	return Clause{occur: occur, kind: KindCategory, values: names, operator: op}
}

// CategoryIDs matches category identifiers combined with op.
func CategoryIDs(occur Occur, op Operator, ids ...string) Clause {
	return Clause{occur: occur, kind: KindCategoryID, values: ids, operator: op}
}

// Occur returns the clause requirement mode.
func (c Clause) Occur() Occur { return c.occur }

// Kind returns what the clause matches against.
func (c Clause) Kind() Kind { return c.kind }

// Values returns the clause values in input order.
func (c Clause) Values() []string { return c.values }

// Operator returns how values combine inside the clause.
func (c Clause) Operator() Operator { return c.operator }

// Sort is a sort directive. Collation is language.Und for culture-invariant comparison.
type Sort struct {
	Field      string
	Descending bool
	Collation  language.Tag
}

// Instruction is an immutable, built search instruction.
type Instruction struct {
	clauses []Clause
	sorts   []Sort
}

// Clauses returns the clauses in insertion order.
func (i Instruction) Clauses() []Clause { return i.clauses }

// Sorts returns the sort directives in insertion order.
func (i Instruction) Sorts() []Sort { return i.sorts }

// ByOccur returns clauses with the given occur mode, preserving order.
func (i Instruction) ByOccur(o Occur) []Clause {
	var out []Clause
	for _, c := range i.clauses {
		if c.occur == o {
			out = append(out, c)
		}
	}
	return out
}

// HasFullText reports whether the instruction carries a full-text clause.
func (i Instruction) HasFullText() bool {
	for _, c := range i.clauses {
		if c.kind == KindFullText {
			return true
		}
	}
	return false
}
