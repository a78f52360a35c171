// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// PaperRecord holds the metadata for one paper as parsed from the feed,
// enriched in place by text extraction and relevance ranking. A record
// is owned by the pipeline invocation that created it and is never
// mutated after the pipeline completes.
type PaperRecord struct {
	// ID is the feed-assigned identifier with any version suffix
	// stripped (e.g. "2301.07041").
	ID string `json:"id" yaml:"id"`

	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// Abstract is the paper abstract with feed line breaks flattened.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Authors lists the paper authors in feed order.
	Authors []string `json:"authors" yaml:"authors"`

	// Published is the submission date reported by the feed.
	Published time.Time `json:"published" yaml:"published"`

	// URL is the paper's abstract page.
	URL string `json:"url" yaml:"url"`

	// PDFURL is the downloadable document location.
	PDFURL string `json:"pdf_url" yaml:"pdf_url"`

	// Categories lists the feed's subject classifications (e.g. "cs.LG").
	Categories []string `json:"categories" yaml:"categories"`

	// FullText is the extracted document text. Empty until the
	// extractor runs, and still empty when extraction failed for this
	// record (per-document failures are not fatal).
	FullText string `json:"full_text,omitempty" yaml:"full_text,omitempty"`

	// RelevanceScore is the cosine similarity between this record and
	// the query. Zero until the ranker runs.
	RelevanceScore float64 `json:"relevance_score" yaml:"relevance_score"`
}
