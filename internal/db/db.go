package db

import (
	"context"
	"time"
)

// Store is everything the search service needs from the database.
// Consumers depend on the narrow interfaces below.
type Store interface {
	Pinger
	HashStore
	IndexManager
	Searcher
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HashStore reads and writes single hash fields (page configuration).
type HashStore interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGet(ctx context.Context, key, field string) (value string, ok bool, err error)
}

// IndexManager bootstraps FT indexes.
type IndexManager interface {
	CreateIndex(ctx context.Context, def *IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Searcher runs full-text instructions over FT indexes.
type Searcher interface {
	Search(ctx context.Context, q *InstructionQuery) (*SearchResult, error)
}
