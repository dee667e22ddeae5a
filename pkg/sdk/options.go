package sitesearch

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	addrs    []string
	password string

	categoryOperator string
	members          bool
	externalType     string
	maxCandidates    int
	explain          bool
	ensureIndexes    bool

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithRedis configures the client to connect to a Redis instance with the search module.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithCategoryOperator sets how multiple category values combine: "AND" (default) or "OR".
func WithCategoryOperator(op string) Option {
	return optionFunc(func(c *clientConfig) {
		c.categoryOperator = op
	})
}

// WithMembers enables the member directory lookup.
func WithMembers() Option {
	return optionFunc(func(c *clientConfig) {
		c.members = true
	})
}

// WithExternalType sets the document type that marks externally crawled pages.
func WithExternalType(t string) Option {
	return optionFunc(func(c *clientConfig) {
		c.externalType = t
	})
}

// WithMaxCandidates caps how many index hits a single search may rank.
// Default: 200.
func WithMaxCandidates(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxCandidates = n
	})
}

// WithExplain attaches score explanations to index hits.
func WithExplain() Option {
	return optionFunc(func(c *clientConfig) {
		c.explain = true
	})
}

// WithEnsureIndexes creates the FT indexes on New when they are missing.
func WithEnsureIndexes() Option {
	return optionFunc(func(c *clientConfig) {
		c.ensureIndexes = true
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
