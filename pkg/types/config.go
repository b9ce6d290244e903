// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "cite-check/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// EnrichmentConfig holds settings for the CrossRef enrichment stage.
type EnrichmentConfig struct {
	HTTPConfig `yaml:",inline"`

	// Enabled controls whether enrichment is attempted by default.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Mailto is sent as the mailto parameter for polite pool access.
	Mailto string `json:"mailto,omitempty" yaml:"mailto,omitempty"`

	// PlusToken is an optional Crossref Plus API token for higher rate limits.
	PlusToken string `json:"plus_token,omitempty" yaml:"plus_token,omitempty"`

	// BatchDelay is the pause inserted between consecutive citations in a
	// batch, on top of the process-wide concurrency gate (default 1s).
	BatchDelay time.Duration `json:"batch_delay" yaml:"batch_delay"`

	// MaxRetries bounds retry attempts on HTTP 429 responses.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// CachePath is the SQLite file for the lookup cache. Empty disables
	// caching. The cache stores external metadata responses only; parsed
	// citations are never persisted.
	CachePath string `json:"cache_path,omitempty" yaml:"cache_path,omitempty"`
}

// ServerConfig holds settings for the HTTP ingress.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// ReadTimeout and WriteTimeout bound request handling.
	ReadTimeout  time.Duration `json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout"`

	// MaxBodyBytes bounds the request body size (default 1 MiB).
	MaxBodyBytes int64 `json:"max_body_bytes" yaml:"max_body_bytes"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Enrichment EnrichmentConfig `json:"enrichment" yaml:"enrichment"`
	Server     ServerConfig     `json:"server" yaml:"server"`
}
