// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-scout/pkg/types"
)

const exportLimit = 100000

// ExportYAML writes every archived paper to path as YAML.
func (a *Archive) ExportYAML(ctx context.Context, path string) error {
	papers, err := a.allPapers(ctx)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(papers)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes every archived paper to path as indented JSON.
func (a *Archive) ExportJSON(ctx context.Context, path string) error {
	papers, err := a.allPapers(ctx)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(papers, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (a *Archive) allPapers(ctx context.Context) ([]types.PaperRecord, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT id, title, abstract, authors, published, url, pdf_url, categories, relevance_score
		 FROM papers ORDER BY recorded_at DESC, id LIMIT ?`, exportLimit)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	defer rows.Close()

	var papers []types.PaperRecord
	for rows.Next() {
		p, err := scanPaper(rows)
		if err != nil {
			return nil, err
		}
		papers = append(papers, p)
	}
	return papers, rows.Err()
}
