package search

import (
	"slices"
	"testing"

	"github.com/kailas-cloud/sitesearch/internal/domain"
	"github.com/kailas-cloud/sitesearch/internal/domain/search/result"
	"github.com/kailas-cloud/sitesearch/internal/domain/search/scope"
)

func TestMerge_StableTies(t *testing.T) {
	hits := []result.Hit{localHit("h1", 0.5), localHit("h2", 0.5)}
	members := []result.Member{member("0.5_m1", "m1"), member("0.5_m2", "m2")}

	got := Merge(hits, members, scope.All, TypeMatcher(domain.DefaultExternalType), KeyPrefixRanker{}, false)
	if ids := entryIDs(got); !slices.Equal(ids, []string{"h1", "h2", "m1", "m2"}) {
		t.Errorf("tie order = %v", ids)
	}
}

func TestMerge_InterleavesByScore(t *testing.T) {
	hits := []result.Hit{localHit("h1", 0.9), externalHit("x1", 0.2)}
	members := []result.Member{member("0.6_m1", "m1"), member("bogus_m2", "m2")}

	got := Merge(hits, members, scope.All, TypeMatcher(domain.DefaultExternalType), KeyPrefixRanker{}, false)
	if ids := entryIDs(got); !slices.Equal(ids, []string{"h1", "m1", "x1", "m2"}) {
		t.Errorf("order = %v", ids)
	}
	if got[2].Kind() != result.KindExternal {
		t.Errorf("x1 kind = %s", got[2].Kind())
	}
}

func TestMerge_Empty(t *testing.T) {
	got := Merge(nil, nil, scope.All, TypeMatcher(domain.DefaultExternalType), KeyPrefixRanker{}, false)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", got)
	}
}

func TestMerge_CustomExternalType(t *testing.T) {
	hits := []result.Hit{result.NewHit("a", "crawler", 1, nil), localHit("b", 0.5)}
	got := Merge(hits, nil, scope.External, TypeMatcher("crawler"), KeyPrefixRanker{}, false)
	if ids := entryIDs(got); !slices.Equal(ids, []string{"a"}) {
		t.Errorf("external = %v", ids)
	}
}

func TestMerge_KeepHitOrder(t *testing.T) {
	hits := []result.Hit{localHit("h1", 0.2), externalHit("x1", 0.1), localHit("h2", 0.9)}
	members := []result.Member{member("0.3_m1", "m1"), member("5_m2", "m2")}

	got := Merge(hits, members, scope.All, TypeMatcher(domain.DefaultExternalType), KeyPrefixRanker{}, true)
	if ids := entryIDs(got); !slices.Equal(ids, []string{"m2", "m1", "h1", "x1", "h2"}) {
		t.Errorf("order = %v", ids)
	}

	local := Merge(hits, members, scope.Local, TypeMatcher(domain.DefaultExternalType), KeyPrefixRanker{}, true)
	if ids := entryIDs(local); !slices.Equal(ids, []string{"h1", "h2"}) {
		t.Errorf("local order = %v", ids)
	}
}
