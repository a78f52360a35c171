// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-scout/internal/archive"
	"github.com/pdiddy/paper-scout/internal/log"
	"github.com/pdiddy/paper-scout/internal/mcpserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the search pipeline to LLM clients over MCP",
	Long: `Serve runs a Model Context Protocol server exposing the search pipeline
as tools: search_arxiv_papers, clear_cache, and get_cache_stats.

By default the server speaks MCP over stdio, which is how desktop LLM
clients launch it. Use --transport http to serve streamable HTTP
instead.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	srv := mcpserver.NewServer(cfg, version)
	if cfg.Archive.Enabled {
		arch, err := archive.Open(cfg.Archive)
		if err != nil {
			log.Warnf("archive unavailable: %v", err)
		} else {
			defer arch.Close()
			srv.SetArchiver(arch)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	transport, _ := cmd.Flags().GetString("transport")
	switch transport {
	case "stdio", "":
		log.Infof("serving MCP over stdio")
		return srv.Run(ctx)
	case "http":
		addr, _ := cmd.Flags().GetString("addr")
		log.Infof("serving MCP over HTTP on %s", addr)
		return srv.RunHTTP(ctx, addr)
	default:
		return fmt.Errorf("unsupported transport %q: use stdio or http", transport)
	}
}

func init() {
	serveCmd.Flags().String("transport", "stdio", "MCP transport: stdio or http")
	serveCmd.Flags().String("addr", "localhost:8355", "listen address for the http transport")

	rootCmd.AddCommand(serveCmd)
}
