// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fulltext downloads paper PDFs and extracts their plain text
// through an ordered chain of extraction strategies.
package fulltext

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"golang.org/x/time/rate"

	"github.com/pdiddy/paper-scout/internal/log"
	"github.com/pdiddy/paper-scout/pkg/types"
)

// minUsableLength is the smallest trimmed output a strategy must
// produce to count as a success; shorter output falls through to the
// next strategy.
const minUsableLength = 100

// truncationSuffix is appended when extracted text is cut at the
// configured length limit.
const truncationSuffix = "\n\n[Text truncated due to length limit]"

// Extractor downloads documents and runs the extraction chain. Batch
// enrichment is bounded to the configured number of concurrent
// downloads.
type Extractor struct {
	client     *http.Client
	limiter    *rate.Limiter
	strategies []Strategy
	cfg        types.FulltextConfig
}

// New returns an extractor configured per cfg, with the default
// strategy chain.
func New(cfg types.FulltextConfig) *Extractor {
	var limiter *rate.Limiter
	if cfg.RateInterval > 0 {
		limiter = rate.NewLimiter(rate.Every(cfg.RateInterval), 1)
	}
	return &Extractor{
		client:     &http.Client{Timeout: cfg.Timeout},
		limiter:    limiter,
		strategies: defaultStrategies(),
		cfg:        cfg,
	}
}

// ExtractText downloads the document at pdfURL and walks the strategy
// chain until one produces usable text. Download failures surface
// types.ErrDownload; exhausting every strategy surfaces
// types.ErrExtraction. The returned text is truncated to the
// configured maximum length.
func (e *Extractor) ExtractText(ctx context.Context, pdfURL string) (string, error) {
	data, err := e.download(ctx, pdfURL)
	if err != nil {
		return "", err
	}

	for _, s := range e.strategies {
		text, err := s.TryExtract(data)
		if err != nil {
			log.Debugf("strategy %s failed: %v", s.Name(), err)
			continue
		}
		text = strings.TrimSpace(text)
		if len(text) < minUsableLength {
			log.Debugf("strategy %s produced %d chars, below the usable threshold", s.Name(), len(text))
			continue
		}
		log.Debugf("strategy %s extracted %d chars", s.Name(), len(text))
		return e.truncate(text), nil
	}
	return "", fmt.Errorf("%w: all strategies exhausted", types.ErrExtraction)
}

// EnrichBatch extracts full text for each paper concurrently, bounded
// by the configured download limit. A failure for one document is
// recorded as missing full text for that record and never aborts its
// siblings. Returns the number of papers successfully enriched.
func (e *Extractor) EnrichBatch(ctx context.Context, papers []*types.PaperRecord) int {
	pool, err := ants.NewPool(e.cfg.MaxConcurrentDownloads)
	if err != nil {
		log.Warnf("worker pool unavailable, extracting serially: %v", err)
		return e.enrichSerial(ctx, papers)
	}
	defer pool.Release()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for _, p := range papers {
		if p.PDFURL == "" {
			continue
		}
		paper := p
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			text, err := e.ExtractText(ctx, paper.PDFURL)
			if err != nil {
				log.Warnf("no full text for %s: %v", paper.ID, err)
				return
			}
			paper.FullText = text
			mu.Lock()
			success++
			mu.Unlock()
		})
		if err != nil {
			wg.Done()
			log.Warnf("submitting extraction for %s: %v", paper.ID, err)
		}
	}
	wg.Wait()

	log.Infof("extracted full text for %d/%d papers", success, len(papers))
	return success
}

func (e *Extractor) enrichSerial(ctx context.Context, papers []*types.PaperRecord) int {
	success := 0
	for _, p := range papers {
		if p.PDFURL == "" {
			continue
		}
		text, err := e.ExtractText(ctx, p.PDFURL)
		if err != nil {
			log.Warnf("no full text for %s: %v", p.ID, err)
			continue
		}
		p.FullText = text
		success++
	}
	return success
}

// download fetches the document bytes with the per-download timeout
// and rate limit. Downloads are not retried: a single failure is
// absorbed by the caller's degrade policy.
func (e *Extractor) download(ctx context.Context, pdfURL string) ([]byte, error) {
	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", types.ErrDownload, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pdfURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request", types.ErrDownload)
	}
	req.Header.Set("User-Agent", e.cfg.UserAgent)
	req.Header.Set("Accept", "application/pdf")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrDownload, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP %d", types.ErrDownload, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body", types.ErrDownload)
	}
	return data, nil
}

// truncate cuts text at the configured character limit, appending the
// truncation suffix. The cut lands on a rune boundary and the result,
// suffix included, never exceeds the limit.
func (e *Extractor) truncate(text string) string {
	limit := e.cfg.MaxFullTextLength
	if limit <= 0 {
		return text
	}

	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}

	keep := limit - len([]rune(truncationSuffix))
	if keep < 0 {
		keep = 0
	}
	return string(runes[:keep]) + truncationSuffix
}
