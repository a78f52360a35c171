// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mcpserver exposes the search pipeline as a Model Context
// Protocol server so LLM clients can call it as a tool provider.
package mcpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pdiddy/paper-scout/internal/cache"
	"github.com/pdiddy/paper-scout/internal/pipeline"
	"github.com/pdiddy/paper-scout/pkg/types"
)

// Server wraps the search pipeline behind an MCP server. The cache is
// held separately from the pipeline because the cache-management tools
// need its maintenance operations, not just Get/Put.
type Server struct {
	pipeline *pipeline.Pipeline
	cache    *cache.Cache
	cfg      types.Config
	server   *mcp.Server
}

// NewServer builds an MCP server around a freshly wired pipeline.
func NewServer(cfg types.Config, version string) *Server {
	c := cache.New(cfg.Cache)
	p := pipeline.New(cfg)
	p.Cache = c

	impl := &mcp.Implementation{
		Name:    "paper-scout",
		Version: version,
	}

	s := &Server{
		pipeline: p,
		cache:    c,
		cfg:      cfg,
		server:   mcp.NewServer(impl, nil),
	}
	s.registerTools()
	return s
}

// SetArchiver attaches an optional archive sink to the pipeline.
func (s *Server) SetArchiver(a pipeline.Archiver) {
	s.pipeline.Archiver = a
}

// Run serves MCP over stdio until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves MCP over streamable HTTP on addr until the context is
// cancelled.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
