// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-scout/internal/archive"
	"github.com/pdiddy/paper-scout/internal/pipeline"
	"github.com/pdiddy/paper-scout/pkg/types"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Query and export the local paper archive",
	Long: `Archive manages the SQLite database of papers recorded by past searches.
Recording happens automatically when archive.enabled is set in the
configuration; query and export work on the database either way.`,
}

// --- query subcommand ---

var archiveQueryCmd = &cobra.Command{
	Use:   "query [term]",
	Short: "Full-text search over archived titles and abstracts",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runArchiveQuery,
}

func runArchiveQuery(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	arch, err := archive.Open(cfg.Archive)
	if err != nil {
		return err
	}
	defer arch.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	papers, err := arch.Search(context.Background(), strings.Join(args, " "), limit)
	if err != nil {
		return err
	}

	if len(papers) == 0 {
		fmt.Println("No archived papers match.")
		return nil
	}

	resp := &types.SearchResponse{
		Query:      strings.Join(args, " "),
		Papers:     papers,
		TotalFound: len(papers),
	}
	pipeline.FormatTable(resp, os.Stdout)
	return nil
}

// --- stats subcommand ---

var archiveStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Report archive size and paper count",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		arch, err := archive.Open(cfg.Archive)
		if err != nil {
			return err
		}
		defer arch.Close()

		stats, err := arch.Stats(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("Papers:          %d\n", stats.PaperCount)
		fmt.Printf("Database size:   %d bytes\n", stats.DBSizeBytes)
		fmt.Printf("Distinct years:  %d\n", stats.DistinctYears)
		return nil
	},
}

// --- export subcommand ---

var archiveExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export archived papers to YAML or JSON",
	RunE:  runArchiveExport,
}

func runArchiveExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	arch, err := archive.Open(cfg.Archive)
	if err != nil {
		return err
	}
	defer arch.Close()

	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	switch format {
	case "yaml", "":
		if output == "" {
			output = "archive/export.yaml"
		}
		if err := arch.ExportYAML(context.Background(), output); err != nil {
			return err
		}
	case "json":
		if output == "" {
			output = "archive/export.json"
		}
		if err := arch.ExportJSON(context.Background(), output); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	fmt.Println("Exported to", output)
	return nil
}

func init() {
	archiveQueryCmd.Flags().Int("limit", 20, "maximum number of results")
	archiveExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	archiveExportCmd.Flags().String("output", "", "output path (default archive/export.yaml or .json)")

	archiveCmd.AddCommand(archiveQueryCmd)
	archiveCmd.AddCommand(archiveStatsCmd)
	archiveCmd.AddCommand(archiveExportCmd)
	rootCmd.AddCommand(archiveCmd)
}
