package search

import (
	"context"
	"slices"
	"sync"

	"github.com/kailas-cloud/sitesearch/internal/domain"
	"github.com/kailas-cloud/sitesearch/internal/domain/search/instruction"
	"github.com/kailas-cloud/sitesearch/internal/domain/search/result"
)

// --- Mocks ---

type mockExecutor struct {
	mu      sync.Mutex
	hits    []result.Hit
	err     error
	lastIns instruction.Instruction
	lastMax int
	lastExp bool
	calls   int
}

func (m *mockExecutor) Execute(
	_ context.Context, ins instruction.Instruction, maxCandidates int, explain bool,
) ([]result.Hit, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastIns = ins
	m.lastMax = maxCandidates
	m.lastExp = explain
	if m.err != nil {
		return nil, 0, m.err
	}
	return m.hits, len(m.hits), nil
}

type mockMembers struct {
	mu        sync.Mutex
	members   []result.Member
	err       error
	lastTerms string
	calls     int
	// waitCancel makes Lookup block until ctx is done and return ctx.Err().
	waitCancel bool
}

func (m *mockMembers) Lookup(ctx context.Context, termsRaw string) ([]result.Member, error) {
	if m.waitCancel {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastTerms = termsRaw
	return m.members, m.err
}

// sortingExecutor sorts only by the listed fields.
type sortingExecutor struct {
	*mockExecutor
	fields []string
}

func (e sortingExecutor) Sortable(field string) bool {
	return slices.Contains(e.fields, field)
}

type mockPageSizes struct {
	raw string
	ok  bool
	err error
}

func (m *mockPageSizes) PageSize(context.Context, string) (string, bool, error) {
	return m.raw, m.ok, m.err
}

// --- Fixtures ---

func localHit(id string, score float64) result.Hit {
	return result.NewHit(id, "Page", score, map[string]string{"title": id})
}

func externalHit(id string, score float64) result.Hit {
	return result.NewHit(id, domain.DefaultExternalType, score, nil)
}

func member(key, id string) result.Member {
	return result.NewMember(key, id, map[string]string{"name": id})
}

func entryIDs(entries []result.Entry) []string {
	ids := make([]string, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		if h := e.Hit(); h != nil {
			ids = append(ids, h.ID())
			continue
		}
		ids = append(ids, e.Member().ID())
	}
	return ids
}
