package chi

import (
	"github.com/kailas-cloud/sitesearch/internal/domain/search/page"
	"github.com/kailas-cloud/sitesearch/internal/domain/search/result"
)

// ErrorResponseCode is a machine-readable error code.
type ErrorResponseCode string

// Error codes returned by the API.
const (
	ErrorResponseCodeBadRequest        ErrorResponseCode = "bad_request"
	ErrorResponseCodeSearchUnavailable ErrorResponseCode = "search_unavailable"
	ErrorResponseCodeTimeout           ErrorResponseCode = "timeout"
	ErrorResponseCodeInternalError     ErrorResponseCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
}

// SearchResponse is one page of ranked results.
type SearchResponse struct {
	TotalResults int          `json:"totalResults"`
	PageSize     int          `json:"pageSize"`
	Items        []SearchItem `json:"items"`
}

// SearchItem is a ranked index hit or member record.
type SearchItem struct {
	Kind        string            `json:"kind"`
	Score       float64           `json:"score"`
	ID          string            `json:"id"`
	Type        string            `json:"type,omitempty"`
	Key         string            `json:"key,omitempty"`
	Explanation string            `json:"explanation,omitempty"`
	Fields      map[string]string `json:"fields,omitempty"`
}

// HealthResponse reports component health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func pageToResponse(p *page.Page) SearchResponse {
	items := make([]SearchItem, len(p.Items))
	for i := range p.Items {
		items[i] = entryToItem(&p.Items[i])
	}
	return SearchResponse{
		TotalResults: p.Total,
		PageSize:     p.Size,
		Items:        items,
	}
}

func entryToItem(e *result.Entry) SearchItem {
	item := SearchItem{
		Kind:  string(e.Kind()),
		Score: e.Score(),
	}
	if h := e.Hit(); h != nil {
		item.ID = h.ID()
		item.Type = h.Type()
		item.Explanation = h.Explanation()
		item.Fields = h.Fields()
		return item
	}
	if m := e.Member(); m != nil {
		item.ID = m.ID()
		item.Key = m.Key()
		item.Fields = m.Fields()
	}
	return item
}
