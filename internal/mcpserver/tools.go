// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pdiddy/paper-scout/internal/pipeline"
	"github.com/pdiddy/paper-scout/pkg/types"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query           string `json:"query" jsonschema:"the research topic or question to search arXiv for"`
	MaxResults      int    `json:"max_results,omitempty" jsonschema:"maximum number of papers to return (default 10)"`
	YearsBack       int    `json:"years_back,omitempty" jsonschema:"only include papers published within this many years (default 4)"`
	IncludeFullText bool   `json:"include_full_text,omitempty" jsonschema:"download each paper's PDF and include extracted text"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Report     string  `json:"report"`
	TotalFound int     `json:"total_found"`
	Returned   int     `json:"returned"`
	Cached     bool    `json:"cached"`
	SearchTime float64 `json:"search_time_seconds"`
}

// ClearCacheOutput is the output schema for the clear_cache tool.
type ClearCacheOutput struct {
	EntriesRemoved int `json:"entries_removed"`
}

// CacheStatsOutput is the output schema for the get_cache_stats tool.
type CacheStatsOutput struct {
	Enabled        bool    `json:"enabled"`
	EntryCount     int     `json:"entry_count"`
	TotalSizeBytes int64   `json:"total_size_bytes"`
	OldestEntryAge float64 `json:"oldest_entry_age_seconds"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_arxiv_papers",
		Description: "Search arXiv for papers relevant to a topic, ranked by relevance. Optionally includes extracted PDF full text.",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "clear_cache",
		Description: "Remove all entries from the search result cache.",
	}, s.handleClearCache)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_cache_stats",
		Description: "Report search result cache status: entry count, disk usage, and oldest entry age.",
	}, s.handleCacheStats)
}

func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	req := types.SearchRequest{
		Query:           input.Query,
		MaxResults:      input.MaxResults,
		YearsBack:       input.YearsBack,
		IncludeFullText: input.IncludeFullText,
	}
	// An omitted max_results arrives as zero; fill the default before
	// request validation rejects it.
	if req.MaxResults == 0 {
		req.MaxResults = s.cfg.Pipeline.DefaultMaxResults
	}

	resp, err := s.pipeline.Run(ctx, req)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Report:     pipeline.FormatMarkdown(resp, req.IncludeFullText),
		TotalFound: resp.TotalFound,
		Returned:   len(resp.Papers),
		Cached:     resp.Cached,
		SearchTime: resp.SearchTime.Seconds(),
	}
	result := &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: output.Report}},
	}
	return result, output, nil
}

func (s *Server) handleClearCache(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, ClearCacheOutput, error) {
	removed, err := s.cache.Clear()
	if err != nil {
		return nil, ClearCacheOutput{}, err
	}

	result := &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{
			Text: fmt.Sprintf("Cache cleared: %d entries removed.", removed),
		}},
	}
	return result, ClearCacheOutput{EntriesRemoved: removed}, nil
}

func (s *Server) handleCacheStats(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, CacheStatsOutput, error) {
	stats := s.cache.Stats()

	output := CacheStatsOutput{
		Enabled:        stats.Enabled,
		EntryCount:     stats.EntryCount,
		TotalSizeBytes: stats.TotalSizeBytes,
		OldestEntryAge: stats.OldestEntryAge.Seconds(),
	}
	text := fmt.Sprintf("Cache enabled: %t\nEntries: %d\nSize: %d bytes\nOldest entry: %.0fs old",
		output.Enabled, output.EntryCount, output.TotalSizeBytes, output.OldestEntryAge)
	result := &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
	return result, output, nil
}
