// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-scout/internal/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the search result cache",
	Long: `Cache manages the on-disk result cache. Each cached search is one JSON
file keyed by a fingerprint of the normalized request; entries expire
after the configured TTL and are also removable here.`,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached search results",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		removed, err := cache.New(cfg.Cache).Clear()
		if err != nil {
			return err
		}
		fmt.Printf("Cache cleared: %d entries removed.\n", removed)
		return nil
	},
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Report cache entry count, size, and oldest entry age",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		stats := cache.New(cfg.Cache).Stats()
		fmt.Printf("Enabled:       %t\n", stats.Enabled)
		fmt.Printf("Entries:       %d\n", stats.EntryCount)
		fmt.Printf("Total size:    %d bytes\n", stats.TotalSizeBytes)
		fmt.Printf("Oldest entry:  %s\n", stats.OldestEntryAge.Round(time.Second))
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatsCmd)
	rootCmd.AddCommand(cacheCmd)
}
