// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paper-scout CLI.
// paper-scout searches arXiv for papers relevant to a research topic,
// ranks them by relevance, and optionally extracts PDF full text. The
// same pipeline is exposed as an MCP server via the serve subcommand.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-scout/internal/log"
	"github.com/pdiddy/paper-scout/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the paper-scout CLI.
var rootCmd = &cobra.Command{
	Use:   "paper-scout",
	Short: "Search and rank arXiv papers, with optional full-text extraction",
	Long: `paper-scout queries the arXiv Atom feed for papers matching a research
topic, ranks candidates by TF-IDF relevance against the query, and caches
results on disk. With --full-text it downloads each paper's PDF and
extracts the text before ranking.

Run searches directly with the search subcommand, serve the pipeline to
LLM clients over MCP with serve, and manage the result cache and paper
archive with cache and archive.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("log-level")
		if level == "" {
			level = viper.GetString("log_level")
		}
		if level != "" {
			log.SetLevel(level)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./paper-scout.yaml or ~/.config/paper-scout/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "logging threshold: debug, info, warn, or error")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("paper-scout")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "paper-scout"))
		}
	}

	viper.SetEnvPrefix("PAPER_SCOUT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig layers the config file over the built-in defaults. Keys
// absent from the file keep their default values.
func loadConfig() (types.Config, error) {
	cfg := types.DefaultConfig()
	err := viper.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "yaml"
	})
	if err != nil {
		return cfg, fmt.Errorf("parsing configuration: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
