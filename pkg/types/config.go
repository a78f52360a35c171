// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paper-scout/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FeedConfig holds settings for the feed client.
type FeedConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the feed query endpoint.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// MaxRetries is the number of retry attempts after a retryable
	// fetch failure (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// RetryDelay is the base duration for exponential backoff between
	// retries (default 1s).
	RetryDelay time.Duration `json:"retry_delay" yaml:"retry_delay"`

	// RateInterval is the minimum spacing between feed requests,
	// measured from the completion of the previous request (default 1s).
	RateInterval time.Duration `json:"rate_interval" yaml:"rate_interval"`
}

// FulltextConfig holds settings for document download and text
// extraction.
type FulltextConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxConcurrentDownloads bounds how many documents download at
	// once (default 3).
	MaxConcurrentDownloads int `json:"max_concurrent_downloads" yaml:"max_concurrent_downloads"`

	// RateInterval is the minimum spacing between document downloads
	// (default 1s).
	RateInterval time.Duration `json:"rate_interval" yaml:"rate_interval"`

	// MaxFullTextLength caps extracted text length in characters;
	// longer documents are cut at this boundary (default 50000).
	MaxFullTextLength int `json:"max_full_text_length" yaml:"max_full_text_length"`
}

// RankConfig holds settings for relevance ranking.
type RankConfig struct {
	// MaxVocabulary caps the TF-IDF vocabulary size; the most frequent
	// terms are retained (default 1000).
	MaxVocabulary int `json:"max_vocabulary" yaml:"max_vocabulary"`

	// MinRelevanceScore is the hard floor: papers scoring below it are
	// dropped from the ranked output (default 0.001).
	MinRelevanceScore float64 `json:"min_relevance_score" yaml:"min_relevance_score"`
}

// CacheConfig holds settings for the result cache.
type CacheConfig struct {
	// Enabled turns the cache on. When false every lookup misses and
	// stores are no-ops.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Dir is the directory holding one JSON file per cache entry
	// (default "cache").
	Dir string `json:"dir" yaml:"dir"`

	// TTL is how long a stored entry stays valid (default 24h).
	TTL time.Duration `json:"ttl" yaml:"ttl"`
}

// ArchiveConfig holds settings for the optional paper archive.
type ArchiveConfig struct {
	// Enabled turns archive recording on.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Path is the SQLite database location (default "archive/papers.db").
	Path string `json:"path" yaml:"path"`
}

// PipelineConfig holds request defaults applied during normalization.
type PipelineConfig struct {
	// DefaultMaxResults fills a request that omits max_results
	// (default 10).
	DefaultMaxResults int `json:"default_max_results" yaml:"default_max_results"`

	// MaxResultsLimit is the ceiling max_results is clamped to
	// (default 50).
	MaxResultsLimit int `json:"max_results_limit" yaml:"max_results_limit"`

	// DefaultYearsBack fills a request that omits years_back
	// (default 4).
	DefaultYearsBack int `json:"default_years_back" yaml:"default_years_back"`
}

// Config groups all stage configurations.
type Config struct {
	Feed     FeedConfig     `json:"feed" yaml:"feed"`
	Fulltext FulltextConfig `json:"fulltext" yaml:"fulltext"`
	Rank     RankConfig     `json:"rank" yaml:"rank"`
	Cache    CacheConfig    `json:"cache" yaml:"cache"`
	Archive  ArchiveConfig  `json:"archive" yaml:"archive"`
	Pipeline PipelineConfig `json:"pipeline" yaml:"pipeline"`

	// LogLevel selects the logging threshold: debug, info, warn, or
	// error (default "info").
	LogLevel string `json:"log_level" yaml:"log_level"`
}

// DefaultConfig returns the configuration the pipeline runs with when
// no file or environment overrides are present.
func DefaultConfig() Config {
	return Config{
		Feed: FeedConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   30 * time.Second,
				UserAgent: "paper-scout/0.1",
			},
			BaseURL:      "https://export.arxiv.org/api/query",
			MaxRetries:   3,
			RetryDelay:   time.Second,
			RateInterval: time.Second,
		},
		Fulltext: FulltextConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   30 * time.Second,
				UserAgent: "paper-scout/0.1",
			},
			MaxConcurrentDownloads: 3,
			RateInterval:           time.Second,
			MaxFullTextLength:      50000,
		},
		Rank: RankConfig{
			MaxVocabulary:     1000,
			MinRelevanceScore: 0.001,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     "cache",
			TTL:     24 * time.Hour,
		},
		Archive: ArchiveConfig{
			Enabled: false,
			Path:    "archive/papers.db",
		},
		Pipeline: PipelineConfig{
			DefaultMaxResults: 10,
			MaxResultsLimit:   50,
			DefaultYearsBack:  4,
		},
		LogLevel: "info",
	}
}
