package search

import (
	"cmp"
	"slices"

	"github.com/kailas-cloud/sitesearch/internal/domain/search/result"
	"github.com/kailas-cloud/sitesearch/internal/domain/search/scope"
)

// Merge combines index hits and member records admitted by the scope into one
// sequence ordered by descending score. Ties keep input order: hits in executor
// order, then members in lookup order.
//
// With keepHitOrder set the executor has already sorted the hits by a field, so
// hits are not re-ranked: members come first by descending score, then hits in
// executor order.
func Merge(
	hits []result.Hit, members []result.Member, sc scope.Scope,
	isExternal func(*result.Hit) bool, ranker Ranker, keepHitOrder bool,
) []result.Entry {
	hitEntries := make([]result.Entry, 0, len(hits))
	if sc.IncludesIndex() {
		for i := range hits {
			ext := isExternal(&hits[i])
			if sc.AdmitsHit(ext) {
				hitEntries = append(hitEntries, result.FromHit(hits[i], ext))
			}
		}
	}

	memberEntries := make([]result.Entry, 0, len(members))
	if sc.IncludesMembers() {
		for i := range members {
			memberEntries = append(memberEntries, result.FromMember(members[i], ranker.Rank(&members[i])))
		}
	}

	if keepHitOrder {
		sortByScore(memberEntries)
		return append(memberEntries, hitEntries...)
	}

	entries := append(hitEntries, memberEntries...)
	sortByScore(entries)
	return entries
}

func sortByScore(entries []result.Entry) {
	slices.SortStableFunc(entries, func(a, b result.Entry) int {
		return cmp.Compare(b.Score(), a.Score())
	})
}

// TypeMatcher reports hits whose type tag equals externalType as external.
func TypeMatcher(externalType string) func(*result.Hit) bool {
	return func(h *result.Hit) bool {
		return h.Type() == externalType
	}
}
