package params

import (
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/kailas-cloud/sitesearch/internal/domain/search/scope"
)

// DefaultPageSize is used whenever no valid page size is supplied.
const DefaultPageSize = 10

// Query-string keys understood by Normalize.
const (
	KeyTerms       = "terms"
	KeyCategories  = "catids"
	KeyCatsByID    = "catsbyid"
	KeyTypes       = "types"
	KeyLocales     = "locales"
	KeySources     = "sources"
	KeySortBy      = "sortby"
	KeySortAsc     = "sortasc"
	KeyPage        = "page"
	KeyPageSize    = "pagesize"
	KeySourceScope = "sourceFilter"
)

// Query is the read side of a query string. url.Values satisfies it.
type Query interface {
	Get(key string) string
}

// Params is a normalized search request. All list fields are non-nil.
type Params struct {
	Terms []string
	// TermsRaw is the terms parameter as received, handed to the member directory.
	TermsRaw       string
	Categories     []string
	CategoriesByID bool
	Types          []string
	Locales        []string
	Sources        []string
	SortBy         string
	SortAscending  bool
	// Page is 1-based and meaningful only when All is false.
	Page     int
	All      bool
	PageSize int
	Scope    scope.Scope
}

// Normalize converts raw query parameters into Params.
// It never fails: malformed values degrade to their documented defaults.
func Normalize(q Query) Params {
	page, all := parsePage(q.Get(KeyPage))

	return Params{
		Terms:          SplitList(q.Get(KeyTerms)),
		TermsRaw:       q.Get(KeyTerms),
		Categories:     SplitList(q.Get(KeyCategories)),
		CategoriesByID: parseBool(q.Get(KeyCatsByID)),
		Types:          SplitList(q.Get(KeyTypes)),
		Locales:        SplitList(q.Get(KeyLocales)),
		Sources:        SplitList(q.Get(KeySources)),
		SortBy:         strings.TrimSpace(q.Get(KeySortBy)),
		SortAscending:  parseBool(q.Get(KeySortAsc)),
		Page:           page,
		All:            all,
		PageSize:       parsePageSize(q.Get(KeyPageSize)),
		Scope:          scope.Scope(q.Get(KeySourceScope)),
	}
}

// WithPageSizeOverride applies a page-level configured page size.
// The configured value wins over the query string; if it is not a positive
// integer the page size falls back to DefaultPageSize.
func (p Params) WithPageSizeOverride(raw string) Params {
	p.PageSize = parsePageSize(raw)
	return p
}

// SplitList splits a comma-separated parameter. Elements are trimmed and
// empty elements dropped; the result is never nil.
func SplitList(raw string) []string {
	out := []string{}
	if strings.TrimSpace(raw) == "" {
		return out
	}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parsePage returns the page number, or all=true when the value is absent,
// unparsable or below 1.
func parsePage(raw string) (page int, all bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 0, true
	}
	return n, false
}

func parsePageSize(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return DefaultPageSize
	}
	return n
}

func parseBool(raw string) bool {
	b, err := cast.ToBoolE(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return b
}
