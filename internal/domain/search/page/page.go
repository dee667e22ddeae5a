// Package page slices a ranked result sequence into the requested page.
package page

import "github.com/kailas-cloud/sitesearch/internal/domain/search/result"

// Request selects a page. Number is 1-based; All returns every entry and ignores Size.
type Request struct {
	Number int
	Size   int
	All    bool
}

// Page is the paginated output of a search.
type Page struct {
	// Total counts the full ranked sequence, not just this page.
	Total int
	Size  int
	Items []result.Entry
}

// Cut returns the requested slice of entries. Pages past the end are empty, never an error.
func Cut(entries []result.Entry, req Request) Page {
	p := Page{Total: len(entries), Size: req.Size, Items: []result.Entry{}}

	if req.All {
		p.Items = append(p.Items, entries...)
		return p
	}
	if req.Number < 1 || req.Size < 1 {
		return p
	}

	// Compare in page units first so a huge page number cannot overflow the offset.
	if req.Number-1 > len(entries)/req.Size {
		return p
	}
	start := (req.Number - 1) * req.Size
	if start >= len(entries) {
		return p
	}
	end := min(start+req.Size, len(entries))

	p.Items = append(p.Items, entries[start:end]...)
	return p
}

// Pages returns the number of pages of the given size needed for total entries.
func Pages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}
