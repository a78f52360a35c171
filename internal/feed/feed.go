// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package feed queries the arXiv Atom API and parses results into
// paper records.
package feed

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/paper-scout/internal/httputil"
	"github.com/pdiddy/paper-scout/internal/log"
	"github.com/pdiddy/paper-scout/pkg/types"
)

// Client fetches paper metadata from the arXiv query API. It keeps no
// state between calls beyond the completion timestamp of the last
// request, used for pacing.
type Client struct {
	client *http.Client
	pacer  *httputil.Pacer
	cfg    types.FeedConfig

	// now is substitutable in tests for deterministic date filtering.
	now func() time.Time
}

// New returns a feed client configured per cfg.
func New(cfg types.FeedConfig) *Client {
	return &Client{
		client: &http.Client{Timeout: cfg.Timeout},
		pacer:  httputil.NewPacer(cfg.RateInterval),
		cfg:    cfg,
		now:    time.Now,
	}
}

// Fetch queries the feed and returns up to maxResults paper records
// published within the last yearsBack years. It requests twice
// maxResults from the upstream as headroom for the date filter.
//
// Retryable failures (timeouts, connection errors, HTTP 429/5xx) are
// retried with backoff; exhaustion surfaces types.ErrUpstream. A
// malformed payload surfaces types.ErrParse. Entries missing a title
// or identifier are dropped, not fatal.
func (c *Client) Fetch(ctx context.Context, query string, maxResults, yearsBack int) ([]types.PaperRecord, error) {
	params := url.Values{}
	params.Set("search_query", buildQuery(query))
	params.Set("start", "0")
	params.Set("max_results", strconv.Itoa(maxResults*2))
	params.Set("sortBy", "submittedDate")
	params.Set("sortOrder", "descending")

	reqURL := c.cfg.BaseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating feed request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.client, req, c.cfg.MaxRetries, c.cfg.RetryDelay, c.pacer)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: feed returned HTTP %d", types.ErrUpstream, resp.StatusCode)
	}

	papers, err := c.parseFeed(resp.Body)
	if err != nil {
		return nil, err
	}

	filtered := c.filterByDate(papers, yearsBack)
	log.Debugf("feed returned %d entries, %d after date filtering", len(papers), len(filtered))

	if len(filtered) > maxResults {
		filtered = filtered[:maxResults]
	}
	return filtered, nil
}

// buildQuery constructs the search_query parameter: each whitespace
// term matches title, abstract, or category, and terms are ANDed.
func buildQuery(query string) string {
	terms := strings.Fields(strings.ToLower(query))
	parts := make([]string, 0, len(terms))
	for _, term := range terms {
		parts = append(parts, fmt.Sprintf("(ti:%s OR abs:%s OR cat:%s)", term, term, term))
	}
	return strings.Join(parts, " AND ")
}

// parseFeed decodes the Atom payload into paper records. Entries
// missing a title or identifier are dropped and counted; only a
// malformed document fails the batch.
func (c *Client) parseFeed(r io.Reader) ([]types.PaperRecord, error) {
	var feed atomFeed
	if err := xml.NewDecoder(r).Decode(&feed); err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrParse, err)
	}

	var papers []types.PaperRecord
	dropped := 0
	for _, entry := range feed.Entries {
		id := extractArxivID(entry.ID)
		title := strings.TrimSpace(entry.Title)
		if id == "" || title == "" {
			dropped++
			continue
		}

		p := types.PaperRecord{
			ID:       id,
			Title:    title,
			Abstract: flattenWhitespace(entry.Summary),
			URL:      strings.TrimSpace(entry.ID),
		}

		for _, a := range entry.Authors {
			p.Authors = append(p.Authors, strings.TrimSpace(a.Name))
		}
		for _, cat := range entry.Categories {
			p.Categories = append(p.Categories, cat.Term)
		}

		for _, link := range entry.Links {
			if link.Title == "pdf" {
				p.PDFURL = link.Href
			}
		}
		if p.PDFURL == "" {
			p.PDFURL = strings.Replace(p.URL, "/abs/", "/pdf/", 1)
		}

		p.Published = c.parseDate(entry.Published)
		papers = append(papers, p)
	}

	if dropped > 0 {
		log.Warnf("dropped %d feed entries missing a title or identifier", dropped)
	}
	return papers, nil
}

// parseDate parses the feed timestamp, falling back through the known
// formats and finally to the current time.
func (c *Client) parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	log.Warnf("unparseable feed date %q, using current time", s)
	return c.now()
}

// filterByDate drops records older than yearsBack years. A
// non-positive yearsBack disables the filter.
func (c *Client) filterByDate(papers []types.PaperRecord, yearsBack int) []types.PaperRecord {
	if yearsBack <= 0 {
		return papers
	}
	cutoff := c.now().AddDate(0, 0, -yearsBack*365)
	var kept []types.PaperRecord
	for _, p := range papers {
		if !p.Published.Before(cutoff) {
			kept = append(kept, p)
		}
	}
	return kept
}

// flattenWhitespace collapses the feed's hard-wrapped abstract text
// into single-spaced prose.
func flattenWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// arXiv Atom feed XML structures.
type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID         string         `xml:"id"`
	Title      string         `xml:"title"`
	Summary    string         `xml:"summary"`
	Published  string         `xml:"published"`
	Authors    []atomAuthor   `xml:"author"`
	Links      []atomLink     `xml:"link"`
	Categories []atomCategory `xml:"category"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

type atomLink struct {
	Href  string `xml:"href,attr"`
	Rel   string `xml:"rel,attr"`
	Title string `xml:"title,attr"`
}

type atomCategory struct {
	Term string `xml:"term,attr"`
}

// extractArxivID pulls the arXiv ID from the entry's <id> URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" → "2301.07041").
func extractArxivID(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return ""
	}
	id := strings.TrimSpace(idURL[idx+len(prefix):])

	// Strip version suffix (e.g. "v1", "v2").
	if vIdx := strings.LastIndex(id, "v"); vIdx > 0 {
		if _, err := strconv.Atoi(id[vIdx+1:]); err == nil {
			id = id[:vIdx]
		}
	}
	return id
}
