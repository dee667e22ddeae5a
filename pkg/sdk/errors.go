package sitesearch

import "github.com/kailas-cloud/sitesearch/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrSearchUnavailable = domain.ErrSearchUnavailable
	ErrInvalidConfig     = domain.ErrInvalidConfig
)
