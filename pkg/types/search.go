// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the paper-scout
// pipeline: search requests and responses, paper records, cache
// entries, configuration, and the error taxonomy.
package types

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// SearchRequest describes one search invocation. A request is validated
// once and treated as immutable afterwards.
type SearchRequest struct {
	// Query is the free-text search string.
	Query string `json:"query" yaml:"query"`

	// MaxResults is the maximum number of ranked papers to return.
	MaxResults int `json:"max_results" yaml:"max_results"`

	// YearsBack bounds how far into the past the feed query searches.
	YearsBack int `json:"years_back" yaml:"years_back"`

	// IncludeFullText requests PDF download and text extraction for
	// each candidate before ranking.
	IncludeFullText bool `json:"include_full_text" yaml:"include_full_text"`
}

// Validate rejects malformed requests before any network activity.
// An empty (or blank) query and a non-positive MaxResults are the two
// rejected shapes.
func (r SearchRequest) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return fmt.Errorf("%w: query must not be empty", ErrValidation)
	}
	if r.MaxResults <= 0 {
		return fmt.Errorf("%w: max_results must be positive, got %d", ErrValidation, r.MaxResults)
	}
	return nil
}

// Normalized returns a copy of the request with configured defaults
// filled in for zero-valued fields and MaxResults clamped to the
// configured ceiling. MaxResults above the ceiling is clamped rather
// than rejected.
func (r SearchRequest) Normalized(cfg PipelineConfig) SearchRequest {
	out := r
	if out.MaxResults == 0 {
		out.MaxResults = cfg.DefaultMaxResults
	}
	if out.MaxResults > cfg.MaxResultsLimit && cfg.MaxResultsLimit > 0 {
		out.MaxResults = cfg.MaxResultsLimit
	}
	if out.YearsBack <= 0 {
		out.YearsBack = cfg.DefaultYearsBack
	}
	return out
}

// Fingerprint derives the cache key for this request. It is a pure
// function of the normalized query text (lowercased, whitespace runs
// collapsed) plus the three remaining request fields, so two requests
// that differ only in case or incidental whitespace map to the same
// entry.
func (r SearchRequest) Fingerprint() string {
	query := strings.Join(strings.Fields(strings.ToLower(r.Query)), " ")
	key := fmt.Sprintf("%s_%d_%d_%t", query, r.MaxResults, r.YearsBack, r.IncludeFullText)
	sum := md5.Sum([]byte(key))
	return hex.EncodeToString(sum[:])
}

// SearchResponse is the outcome of one pipeline run: the ranked papers
// in descending relevance order plus request-level metadata.
type SearchResponse struct {
	// Query echoes the request's free-text query.
	Query string `json:"query" yaml:"query"`

	// Papers holds the ranked results. Insertion order is relevance
	// order, descending; ties preserve feed order.
	Papers []PaperRecord `json:"papers" yaml:"papers"`

	// TotalFound is the number of candidates fetched from the feed
	// before ranking cut the list down.
	TotalFound int `json:"total_found" yaml:"total_found"`

	// SearchTime is the wall-clock duration of the pipeline run.
	SearchTime time.Duration `json:"search_time" yaml:"search_time"`

	// Cached reports whether the papers came from the result cache.
	Cached bool `json:"cached" yaml:"cached"`
}
