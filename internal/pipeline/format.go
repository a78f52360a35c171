// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/paper-scout/pkg/types"
)

// FormatMarkdown renders a search response as the markdown document
// handed to the LLM: a header block followed by one section per paper.
func FormatMarkdown(resp *types.SearchResponse, includeFullText bool) string {
	if len(resp.Papers) == 0 {
		return fmt.Sprintf("No papers found for query: %q", resp.Query)
	}

	source := "Fresh Search"
	if resp.Cached {
		source = "Cache"
	}
	fullText := "No"
	if includeFullText {
		fullText = "Yes"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# arXiv Research Results\n\n")
	fmt.Fprintf(&b, "**Query:** %s\n", resp.Query)
	fmt.Fprintf(&b, "**Papers Found:** %d\n", len(resp.Papers))
	fmt.Fprintf(&b, "**Search Time:** %.2f seconds\n", resp.SearchTime.Seconds())
	fmt.Fprintf(&b, "**Source:** %s\n", source)
	fmt.Fprintf(&b, "**Full Text Included:** %s\n", fullText)

	for i, p := range resp.Papers {
		fmt.Fprintf(&b, "\n---\n\n## Paper %d: %s\n\n", i+1, p.Title)
		fmt.Fprintf(&b, "**Authors:** %s\n", FormatAuthors(p.Authors))
		if !p.Published.IsZero() {
			fmt.Fprintf(&b, "**Published:** %s\n", p.Published.Format("January 2, 2006"))
		}
		fmt.Fprintf(&b, "**arXiv ID:** %s\n", p.ID)
		if len(p.Categories) > 0 {
			fmt.Fprintf(&b, "**Categories:** %s\n", strings.Join(p.Categories, ", "))
		}
		fmt.Fprintf(&b, "**Relevance Score:** %.3f\n", p.RelevanceScore)
		fmt.Fprintf(&b, "**URL:** %s\n", p.URL)
		fmt.Fprintf(&b, "\n**Abstract:**\n%s\n", p.Abstract)

		if includeFullText {
			if p.FullText != "" {
				fmt.Fprintf(&b, "\n**Full Text:**\n%s\n", p.FullText)
			} else {
				fmt.Fprintf(&b, "\n**Full Text:** [Unable to extract full text from PDF]\n")
			}
		}
	}
	return b.String()
}

// FormatTable writes a compact human-readable table to w.
func FormatTable(resp *types.SearchResponse, w io.Writer) {
	if len(resp.Papers) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-20s  %-4s  %-6s\n",
		"Rank", "Title", "Authors", "Year", "Score")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for i, p := range resp.Papers {
		title := p.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		authors := ""
		switch len(p.Authors) {
		case 0:
		case 1:
			authors = truncate(p.Authors[0], 20)
		default:
			authors = truncate(p.Authors[0], 14) + " et al."
		}
		year := ""
		if !p.Published.IsZero() {
			year = fmt.Sprintf("%d", p.Published.Year())
		}
		fmt.Fprintf(w, "%-4d  %-60s  %-20s  %-4s  %-6.3f\n",
			i+1, title, authors, year, p.RelevanceScore)
	}

	fmt.Fprintf(w, "\n%d results", len(resp.Papers))
	if resp.Cached {
		fmt.Fprint(w, " (cached)")
	}
	fmt.Fprintln(w)
}

// FormatJSON writes the response as indented JSON to w.
func FormatJSON(resp *types.SearchResponse, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

// FormatAuthors renders an author list for display: "A", "A and B",
// an Oxford-comma list up to five names, then "A, B, C, et al.".
func FormatAuthors(authors []string) string {
	switch {
	case len(authors) == 0:
		return "Unknown"
	case len(authors) == 1:
		return authors[0]
	case len(authors) == 2:
		return authors[0] + " and " + authors[1]
	case len(authors) <= 5:
		return strings.Join(authors[:len(authors)-1], ", ") + ", and " + authors[len(authors)-1]
	default:
		return strings.Join(authors[:3], ", ") + ", et al."
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
