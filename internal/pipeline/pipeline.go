// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline orchestrates one search request through its stages:
// cache check, feed fetch, optional full-text enrichment, relevance
// ranking, and cache store.
package pipeline

import (
	"context"
	"time"

	"github.com/pdiddy/paper-scout/internal/cache"
	"github.com/pdiddy/paper-scout/internal/feed"
	"github.com/pdiddy/paper-scout/internal/fulltext"
	"github.com/pdiddy/paper-scout/internal/log"
	"github.com/pdiddy/paper-scout/internal/rank"
	"github.com/pdiddy/paper-scout/pkg/types"
)

// Fetcher retrieves candidate papers from the bibliographic feed.
type Fetcher interface {
	Fetch(ctx context.Context, query string, maxResults, yearsBack int) ([]types.PaperRecord, error)
}

// Enricher fills in full text for a batch of papers, swallowing
// per-document failures.
type Enricher interface {
	EnrichBatch(ctx context.Context, papers []*types.PaperRecord) int
}

// Ranker scores and reorders papers against the query.
type Ranker interface {
	Rank(query string, papers []types.PaperRecord) []types.PaperRecord
}

// ResultCache maps a request fingerprint to a stored result set.
type ResultCache interface {
	Get(fingerprint string) ([]types.PaperRecord, bool)
	Put(fingerprint, query string, papers []types.PaperRecord) error
}

// Archiver records completed search results. Optional.
type Archiver interface {
	Record(ctx context.Context, papers []types.PaperRecord) error
}

// Pipeline composes the search stages. Fields are exported so tests
// can substitute fakes for individual stages.
type Pipeline struct {
	Fetcher  Fetcher
	Enricher Enricher
	Ranker   Ranker
	Cache    ResultCache
	Archiver Archiver
	Config   types.Config
}

// New wires a pipeline from the concrete stage implementations.
// The archiver is attached separately because it holds a database
// handle the caller owns.
func New(cfg types.Config) *Pipeline {
	return &Pipeline{
		Fetcher:  feed.New(cfg.Feed),
		Enricher: fulltext.New(cfg.Fulltext),
		Ranker:   rank.New(cfg.Rank),
		Cache:    cache.New(cfg.Cache),
		Config:   cfg,
	}
}

// Run executes one search request through the stage sequence. A fetch
// failure fails the request; extraction failures are per-document;
// ranking degrades rather than failing; cache-store and archive
// failures are logged only.
func (p *Pipeline) Run(ctx context.Context, req types.SearchRequest) (*types.SearchResponse, error) {
	start := time.Now()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	norm := req.Normalized(p.Config.Pipeline)
	fingerprint := norm.Fingerprint()
	log.Debugf("request received: query=%q max_results=%d years_back=%d full_text=%t",
		norm.Query, norm.MaxResults, norm.YearsBack, norm.IncludeFullText)

	log.Debugf("cache check: %s", fingerprint)
	if papers, ok := p.Cache.Get(fingerprint); ok {
		log.Infof("cache hit for %q", norm.Query)
		return &types.SearchResponse{
			Query:      norm.Query,
			Papers:     papers,
			TotalFound: len(papers),
			SearchTime: time.Since(start),
			Cached:     true,
		}, nil
	}

	// Fetch twice the requested count as ranking headroom.
	log.Debugf("fetching candidates for %q", norm.Query)
	papers, err := p.Fetcher.Fetch(ctx, norm.Query, norm.MaxResults*2, norm.YearsBack)
	if err != nil {
		return nil, err
	}
	if len(papers) == 0 {
		// Transient upstream emptiness is not worth pinning for a full
		// TTL, so nothing is cached.
		log.Infof("no papers found for %q", norm.Query)
		return &types.SearchResponse{
			Query:      norm.Query,
			SearchTime: time.Since(start),
		}, nil
	}

	if norm.IncludeFullText && p.Enricher != nil {
		log.Debugf("extracting full text for %d candidates", len(papers))
		refs := make([]*types.PaperRecord, len(papers))
		for i := range papers {
			refs[i] = &papers[i]
		}
		p.Enricher.EnrichBatch(ctx, refs)
	}

	log.Debugf("ranking %d candidates", len(papers))
	ranked := p.Ranker.Rank(norm.Query, papers)
	top := rank.SelectTop(ranked, norm.MaxResults)

	if err := p.Cache.Put(fingerprint, norm.Query, top); err != nil {
		log.Warnf("cache store failed for %q: %v", norm.Query, err)
	}
	if p.Archiver != nil {
		if err := p.Archiver.Record(ctx, top); err != nil {
			log.Warnf("archive record failed for %q: %v", norm.Query, err)
		}
	}

	log.Infof("search %q done: %d candidates, %d returned in %v",
		norm.Query, len(papers), len(top), time.Since(start))
	return &types.SearchResponse{
		Query:      norm.Query,
		Papers:     top,
		TotalFound: len(papers),
		SearchTime: time.Since(start),
		Cached:     false,
	}, nil
}
