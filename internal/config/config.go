package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/sitesearch/internal/db"
	"github.com/kailas-cloud/sitesearch/internal/domain"
	"github.com/kailas-cloud/sitesearch/internal/domain/search/instruction"
)

// Config holds the sitesearch API configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Search   SearchConfig   `yaml:"search"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // redis (only supported driver)
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// SearchConfig holds index layout and search pipeline settings.
type SearchConfig struct {
	PagesIndex       string `yaml:"pages_index"`
	PagesPrefix      string `yaml:"pages_prefix"`
	MembersIndex     string `yaml:"members_index"`
	MembersPrefix    string `yaml:"members_prefix"`
	MembersEnabled   bool   `yaml:"members_enabled"`
	PageConfigPrefix string `yaml:"page_config_prefix"`

	MaxCandidates          int    `yaml:"max_candidates"`
	ExplainScores          *bool  `yaml:"explain_scores"`           // default true
	CategoryFilterOperator string `yaml:"category_filter_operator"` // AND | OR
	ExternalType           string `yaml:"external_type"`
	MemberKeySeparator     string `yaml:"member_key_separator"`
	MemberLimit            int    `yaml:"member_limit"`
	TimeoutSec             int    `yaml:"timeout_sec"`
	EnsureIndexes          bool   `yaml:"ensure_indexes"`
}

// Explain reports whether score explanations are requested.
func (s SearchConfig) Explain() bool {
	return s.ExplainScores == nil || *s.ExplainScores
}

// Operator returns the parsed category filter operator. Call after Validate.
func (s SearchConfig) Operator() instruction.Operator {
	op, err := instruction.ParseOperator(s.CategoryFilterOperator)
	if err != nil {
		return instruction.And
	}
	return op
}

// Layout returns the index layout described by the config.
func (s SearchConfig) Layout() domain.IndexLayout {
	return domain.IndexLayout{
		PagesIndex:       s.PagesIndex,
		PagesPrefix:      s.PagesPrefix,
		MembersIndex:     s.MembersIndex,
		MembersPrefix:    s.MembersPrefix,
		PageConfigPrefix: s.PageConfigPrefix,
	}
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "redis"
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}

	layout := domain.DefaultIndexLayout()
	if c.Search.PagesIndex == "" {
		c.Search.PagesIndex = layout.PagesIndex
	}
	if c.Search.PagesPrefix == "" {
		c.Search.PagesPrefix = layout.PagesPrefix
	}
	if c.Search.MembersIndex == "" {
		c.Search.MembersIndex = layout.MembersIndex
	}
	if c.Search.MembersPrefix == "" {
		c.Search.MembersPrefix = layout.MembersPrefix
	}
	if c.Search.PageConfigPrefix == "" {
		c.Search.PageConfigPrefix = layout.PageConfigPrefix
	}
	if c.Search.MaxCandidates <= 0 {
		c.Search.MaxCandidates = 200
	}
	if c.Search.CategoryFilterOperator == "" {
		c.Search.CategoryFilterOperator = string(instruction.And)
	}
	if c.Search.ExternalType == "" {
		c.Search.ExternalType = domain.DefaultExternalType
	}
	if c.Search.MemberKeySeparator == "" {
		c.Search.MemberKeySeparator = "_"
	}
	if c.Search.MemberLimit <= 0 {
		c.Search.MemberLimit = 50
	}
	if c.Search.TimeoutSec <= 0 {
		c.Search.TimeoutSec = 5
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required")
	}
	if c.Database.Driver != "redis" {
		return fmt.Errorf("database.driver must be \"redis\", got %q", c.Database.Driver)
	}
	if _, err := instruction.ParseOperator(c.Search.CategoryFilterOperator); err != nil {
		return fmt.Errorf("%w: search.category_filter_operator: %w", domain.ErrInvalidConfig, err)
	}
	for name, v := range map[string]string{
		"search.pages_index":   c.Search.PagesIndex,
		"search.members_index": c.Search.MembersIndex,
	} {
		if !db.IsValidIdentifier(v) {
			return fmt.Errorf("%s contains invalid characters: %q", name, v)
		}
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
