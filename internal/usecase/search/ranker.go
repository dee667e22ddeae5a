package search

import (
	"math"
	"strconv"
	"strings"

	"github.com/kailas-cloud/sitesearch/internal/domain/search/result"
)

// DefaultMemberKeySeparator splits a member key into score prefix and id.
const DefaultMemberKeySeparator = "_"

// Ranker assigns an ordering score to a member record.
type Ranker interface {
	Rank(m *result.Member) float64
}

// KeyPrefixRanker reads the score encoded before the separator in the member key.
// Keys whose prefix is not a finite number rank 0.
type KeyPrefixRanker struct {
	Separator string
}

// Rank implements Ranker.
func (r KeyPrefixRanker) Rank(m *result.Member) float64 {
	sep := r.Separator
	if sep == "" {
		sep = DefaultMemberKeySeparator
	}

	prefix, _, _ := strings.Cut(m.Key(), sep)
	score, err := strconv.ParseFloat(strings.TrimSpace(prefix), 64)
	if err != nil || math.IsNaN(score) || math.IsInf(score, 0) {
		return 0
	}
	return score
}
