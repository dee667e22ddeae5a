package sitesearch

// Kind is the origin of a result item.
type Kind string

// Item kinds.
const (
	KindLocal    Kind = "local"
	KindExternal Kind = "external"
	KindMember   Kind = "member"
)

// Item is one ranked search result.
type Item struct {
	Kind  Kind
	ID    string
	Score float64
	// Type is the document type of index hits; empty for members.
	Type string
	// Key is the member ranking key; empty for index hits.
	Key         string
	Explanation string
	Fields      map[string]string
}

// Page is one page of ranked results.
type Page struct {
	// TotalResults counts every ranked item, not just this page.
	TotalResults int
	PageSize     int
	Items        []Item
}

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            // "ok", "degraded", "error"
	Checks map[string]string // component → "ok"/"error"/"missing"
}
