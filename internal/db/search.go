package db

import "github.com/kailas-cloud/sitesearch/internal/domain/search/instruction"

// InstructionQuery is the input for a full-text search.
type InstructionQuery struct {
	IndexName   string
	Instruction instruction.Instruction
	// Limit caps the number of returned entries; results are not paginated further.
	Limit        int
	Explain      bool
	ReturnFields []string
	// KindFields maps tag clause kinds to index field names; unmapped kinds use the kind name.
	KindFields map[instruction.Kind]string
}

// FieldFor returns the index field a clause kind is matched against.
func (q *InstructionQuery) FieldFor(k instruction.Kind) string {
	if f, ok := q.KindFields[k]; ok && f != "" {
		return f
	}
	return string(k)
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key         string
	Score       float64
	Explanation string
	Fields      map[string]string
}
