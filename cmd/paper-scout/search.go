// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-scout/internal/archive"
	"github.com/pdiddy/paper-scout/internal/log"
	"github.com/pdiddy/paper-scout/internal/pipeline"
	"github.com/pdiddy/paper-scout/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search arXiv for papers matching a research topic",
	Long: `Search queries the arXiv feed for papers matching a free-text topic,
ranks candidates by TF-IDF relevance, and prints the top results.
Repeated identical searches are served from the on-disk result cache.

With --query-file, runs every request listed in a YAML batch file
instead of a single command-line query.`,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p := pipeline.New(cfg)
	if cfg.Archive.Enabled {
		arch, err := archive.Open(cfg.Archive)
		if err != nil {
			log.Warnf("archive unavailable: %v", err)
		} else {
			defer arch.Close()
			p.Archiver = arch
		}
	}

	queryFile, _ := cmd.Flags().GetString("query-file")
	if queryFile != "" {
		requests, err := pipeline.LoadRequests(queryFile)
		if err != nil {
			return err
		}
		return runBatch(cmd, p, cfg, requests)
	}

	if len(args) == 0 {
		return fmt.Errorf("query required: pass it as an argument or use --query-file")
	}
	req := requestFromFlags(cmd, strings.Join(args, " "), cfg)
	return runOne(cmd, p, req)
}

func runOne(cmd *cobra.Command, p *pipeline.Pipeline, req types.SearchRequest) error {
	resp, err := p.Run(context.Background(), req)
	if err != nil {
		return err
	}
	return writeResponse(cmd, resp, req.IncludeFullText)
}

// runBatch executes each request in order. A failed request is
// reported but does not stop the remaining ones.
func runBatch(cmd *cobra.Command, p *pipeline.Pipeline, cfg types.Config, requests []types.SearchRequest) error {
	failed := 0
	for i, req := range requests {
		req = req.Normalized(cfg.Pipeline)
		fmt.Fprintf(os.Stderr, "[%d/%d] %s\n", i+1, len(requests), req.Query)

		if err := runOne(cmd, p, req); err != nil {
			log.Errorf("query %q failed: %v", req.Query, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d queries failed", failed, len(requests))
	}
	return nil
}

func requestFromFlags(cmd *cobra.Command, query string, cfg types.Config) types.SearchRequest {
	maxResults, _ := cmd.Flags().GetInt("max-results")
	yearsBack, _ := cmd.Flags().GetInt("years-back")
	fullText, _ := cmd.Flags().GetBool("full-text")

	req := types.SearchRequest{
		Query:           query,
		MaxResults:      maxResults,
		YearsBack:       yearsBack,
		IncludeFullText: fullText,
	}
	return req.Normalized(cfg.Pipeline)
}

func writeResponse(cmd *cobra.Command, resp *types.SearchResponse, includeFullText bool) error {
	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "markdown", "":
		fmt.Println(pipeline.FormatMarkdown(resp, includeFullText))
	case "table":
		pipeline.FormatTable(resp, os.Stdout)
	case "json":
		return pipeline.FormatJSON(resp, os.Stdout)
	default:
		return fmt.Errorf("unsupported format %q: use markdown, table, or json", format)
	}
	return nil
}

func init() {
	searchCmd.Flags().Int("max-results", 0, "maximum number of papers to return (default from config)")
	searchCmd.Flags().Int("years-back", 0, "only include papers published within this many years (default from config)")
	searchCmd.Flags().Bool("full-text", false, "download PDFs and include extracted text")
	searchCmd.Flags().String("format", "markdown", "output format: markdown, table, or json")
	searchCmd.Flags().String("query-file", "", "YAML file listing search requests to run as a batch")

	rootCmd.AddCommand(searchCmd)
}
