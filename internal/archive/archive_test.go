// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pdiddy/paper-scout/pkg/types"
)

func testArchive(t *testing.T) *Archive {
	t.Helper()
	a, err := Open(types.ArchiveConfig{
		Enabled: true,
		Path:    filepath.Join(t.TempDir(), "papers.db"),
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func testPapers() []types.PaperRecord {
	return []types.PaperRecord{
		{
			ID:             "2301.07041",
			Title:          "Quantum Error Correction with Surface Codes",
			Abstract:       "Surface codes on superconducting hardware.",
			Authors:        []string{"Alice Chen", "Bob Martin"},
			Published:      time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC),
			URL:            "http://arxiv.org/abs/2301.07041v2",
			PDFURL:         "http://arxiv.org/pdf/2301.07041v2",
			Categories:     []string{"quant-ph"},
			RelevanceScore: 0.83,
		},
		{
			ID:        "2402.12345",
			Title:     "Transformer Compression via Distillation",
			Abstract:  "Smaller language models from larger teachers.",
			Authors:   []string{"Carol Wu"},
			Published: time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestRecordAndSearch(t *testing.T) {
	a := testArchive(t)
	ctx := context.Background()

	if err := a.Record(ctx, testPapers()); err != nil {
		t.Fatalf("Record: %v", err)
	}

	results, err := a.Search(ctx, "surface codes", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}
	got := results[0]
	if got.ID != "2301.07041" {
		t.Errorf("ID = %q", got.ID)
	}
	if len(got.Authors) != 2 || got.Authors[0] != "Alice Chen" {
		t.Errorf("Authors = %v", got.Authors)
	}
	if got.RelevanceScore != 0.83 {
		t.Errorf("RelevanceScore = %v", got.RelevanceScore)
	}
}

func TestRecordUpsertsByID(t *testing.T) {
	a := testArchive(t)
	ctx := context.Background()

	papers := testPapers()
	if err := a.Record(ctx, papers); err != nil {
		t.Fatalf("Record: %v", err)
	}

	papers[0].Title = "Quantum Error Correction, Second Edition"
	if err := a.Record(ctx, papers[:1]); err != nil {
		t.Fatalf("Record (update): %v", err)
	}

	stats, err := a.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.PaperCount != 2 {
		t.Errorf("PaperCount = %d, want 2 (upsert, not duplicate)", stats.PaperCount)
	}

	results, err := a.Search(ctx, "second edition", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Title != "Quantum Error Correction, Second Edition" {
		t.Errorf("updated title not searchable: %v", results)
	}
}

func TestSearchQuotesUserSyntax(t *testing.T) {
	a := testArchive(t)
	ctx := context.Background()
	if err := a.Record(ctx, testPapers()); err != nil {
		t.Fatalf("Record: %v", err)
	}

	// FTS5 operators in user text must not be interpreted as syntax.
	if _, err := a.Search(ctx, `codes AND (NEAR* "`, 10); err != nil {
		t.Errorf("Search with raw syntax characters: %v", err)
	}
}

func TestStatsEmpty(t *testing.T) {
	a := testArchive(t)
	stats, err := a.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.PaperCount != 0 {
		t.Errorf("PaperCount = %d, want 0", stats.PaperCount)
	}
}

func TestExportJSONAndYAML(t *testing.T) {
	a := testArchive(t)
	ctx := context.Background()
	if err := a.Record(ctx, testPapers()); err != nil {
		t.Fatalf("Record: %v", err)
	}

	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "export.json")
	if err := a.ExportJSON(ctx, jsonPath); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	var papers []types.PaperRecord
	if err := json.Unmarshal(data, &papers); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if len(papers) != 2 {
		t.Errorf("exported %d papers, want 2", len(papers))
	}

	yamlPath := filepath.Join(dir, "export.yaml")
	if err := a.ExportYAML(ctx, yamlPath); err != nil {
		t.Fatalf("ExportYAML: %v", err)
	}
	if info, err := os.Stat(yamlPath); err != nil || info.Size() == 0 {
		t.Errorf("YAML export missing or empty: %v", err)
	}
}
