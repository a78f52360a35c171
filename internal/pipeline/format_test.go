// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/paper-scout/pkg/types"
)

func sampleResponse() *types.SearchResponse {
	return &types.SearchResponse{
		Query: "quantum error correction",
		Papers: []types.PaperRecord{
			{
				ID:             "2401.12345",
				Title:          "Surface Codes Revisited",
				Abstract:       "We revisit surface codes.",
				Authors:        []string{"A. Kitaev", "B. Preskill"},
				Published:      time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
				URL:            "https://arxiv.org/abs/2401.12345",
				Categories:     []string{"quant-ph"},
				RelevanceScore: 0.812,
			},
			{
				ID:             "2312.00001",
				Title:          "Decoder Benchmarks",
				Abstract:       "Benchmarks of decoders.",
				RelevanceScore: 0.404,
			},
		},
		TotalFound: 7,
		SearchTime: 1234 * time.Millisecond,
	}
}

func TestFormatMarkdown(t *testing.T) {
	out := FormatMarkdown(sampleResponse(), false)

	for _, want := range []string{
		"# arXiv Research Results",
		"**Query:** quantum error correction",
		"**Papers Found:** 2",
		"**Search Time:** 1.23 seconds",
		"**Source:** Fresh Search",
		"**Full Text Included:** No",
		"## Paper 1: Surface Codes Revisited",
		"**Authors:** A. Kitaev and B. Preskill",
		"**Published:** January 15, 2024",
		"**arXiv ID:** 2401.12345",
		"**Categories:** quant-ph",
		"**Relevance Score:** 0.812",
		"## Paper 2: Decoder Benchmarks",
		"**Authors:** Unknown",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
	if strings.Contains(out, "Full Text:") {
		t.Error("full text section must be absent when not requested")
	}
}

func TestFormatMarkdownFullText(t *testing.T) {
	resp := sampleResponse()
	resp.Papers[0].FullText = "Body of the extracted paper."
	out := FormatMarkdown(resp, true)

	if !strings.Contains(out, "**Full Text:**\nBody of the extracted paper.") {
		t.Error("extracted text should appear in the first paper")
	}
	if !strings.Contains(out, "[Unable to extract full text from PDF]") {
		t.Error("placeholder should appear for the paper without text")
	}
}

func TestFormatMarkdownCachedSource(t *testing.T) {
	resp := sampleResponse()
	resp.Cached = true
	if !strings.Contains(FormatMarkdown(resp, false), "**Source:** Cache") {
		t.Error("cached responses should be labeled")
	}
}

func TestFormatMarkdownEmpty(t *testing.T) {
	resp := &types.SearchResponse{Query: "nothing here"}
	out := FormatMarkdown(resp, false)
	if !strings.Contains(out, "No papers found") {
		t.Errorf("empty response message wrong: %q", out)
	}
}

func TestFormatTable(t *testing.T) {
	var b strings.Builder
	FormatTable(sampleResponse(), &b)
	out := b.String()

	if !strings.Contains(out, "Surface Codes Revisited") {
		t.Error("table missing title")
	}
	if !strings.Contains(out, "2024") {
		t.Error("table missing year")
	}
	if !strings.Contains(out, "2 results") {
		t.Error("table missing result count")
	}
	if strings.Contains(out, "(cached)") {
		t.Error("fresh result should not be marked cached")
	}
}

func TestFormatJSON(t *testing.T) {
	var b strings.Builder
	if err := FormatJSON(sampleResponse(), &b); err != nil {
		t.Fatalf("FormatJSON: %v", err)
	}
	if !strings.Contains(b.String(), `"query": "quantum error correction"`) {
		t.Error("JSON output missing query field")
	}
}

func TestFormatAuthors(t *testing.T) {
	tests := []struct {
		authors []string
		want    string
	}{
		{nil, "Unknown"},
		{[]string{"A"}, "A"},
		{[]string{"A", "B"}, "A and B"},
		{[]string{"A", "B", "C"}, "A, B, and C"},
		{[]string{"A", "B", "C", "D", "E"}, "A, B, C, D, and E"},
		{[]string{"A", "B", "C", "D", "E", "F"}, "A, B, C, et al."},
	}
	for _, tt := range tests {
		if got := FormatAuthors(tt.authors); got != tt.want {
			t.Errorf("FormatAuthors(%v) = %q, want %q", tt.authors, got, tt.want)
		}
	}
}
