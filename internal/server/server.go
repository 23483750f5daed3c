// Package server exposes a discovered API catalog over MCP. Tool calls
// answer with the tool's documentation; the underlying API is never
// invoked from here.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/ocpkit/auto-catalog/internal/config"
	"github.com/ocpkit/auto-catalog/internal/discovery"
	"github.com/ocpkit/auto-catalog/internal/logger"
	"github.com/ocpkit/auto-catalog/internal/mcptool"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	// shutdownTimeout is the maximum time to wait for server shutdown
	shutdownTimeout = 5 * time.Second
)

// Server serves catalog tool definitions over MCP in SSE, HTTP, or STDIO
// mode.
type Server struct {
	config *config.Config
	engine *discovery.Engine
	mcp    *mcpserver.MCPServer
}

// NewServer creates a catalog server around the given discovery engine.
func NewServer(cfg *config.Config, engine *discovery.Engine) *Server {
	if cfg == nil {
		logger.Fatal("Config cannot be nil")
	}
	if engine == nil {
		logger.Fatal("Engine cannot be nil")
	}

	return &Server{
		config: cfg,
		engine: engine,
		mcp: mcpserver.NewMCPServer(
			cfg.Server.Name,
			cfg.Server.Version,
		),
	}
}

// setupTools discovers the configured spec and registers one describe-only
// MCP tool per catalog entry.
func (s *Server) setupTools(ctx context.Context) error {
	d := s.config.Discovery
	spec, err := s.engine.DiscoverAPI(ctx, d.SpecURL,
		discovery.WithBaseURL(d.BaseURL),
		discovery.WithIncludeResources(d.IncludeResources...),
		discovery.WithPathPrefix(d.PathPrefix),
	)
	if err != nil {
		return fmt.Errorf("failed to discover catalog: %w", err)
	}

	for _, tool := range spec.Tools {
		s.mcp.AddTool(mcptool.ConvertTool(tool), describeHandler(tool))
	}
	logger.Info("Registered catalog tools",
		zap.String("api", spec.Title),
		zap.Int("tools", len(spec.Tools)))
	return nil
}

// describeHandler answers a tool call with the tool's documentation text.
func describeHandler(tool discovery.Tool) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	docs := discovery.ToolDocumentation(tool)
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText(docs), nil
	}
}

func (s *Server) ServeSSE(ctx context.Context) error {
	logger.Info("Starting SSE server")

	sseServer := mcpserver.NewSSEServer(
		s.mcp,
		mcpserver.WithBaseURL(fmt.Sprintf("http://%s:%d", s.config.Server.Host, s.config.Server.Port)),
	)

	return s.serveHTTP(ctx, sseServer, "SSE")
}

func (s *Server) ServeHTTP(ctx context.Context) error {
	logger.Info("Starting HTTP server")
	httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
	return s.serveHTTP(ctx, httpServer, "HTTP")
}

func (s *Server) serveHTTP(ctx context.Context, handler http.Handler, mode string) error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	errChan := make(chan error, 1)

	go func() {
		logger.Info("Starting server",
			zap.String("mode", mode),
			zap.String("address", addr),
		)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down server",
			zap.String("mode", mode),
			zap.Duration("timeout", shutdownTimeout),
		)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		return nil

	case err := <-errChan:
		return err
	}
}

func (s *Server) ServeSTDIO(ctx context.Context) error {
	logger.Info("Starting STDIO server")
	stdioServer := mcpserver.NewStdioServer(s.mcp)
	return stdioServer.Listen(ctx, os.Stdin, os.Stdout)
}

// Start registers the catalog tools and serves in the configured mode.
func (s *Server) Start(ctx context.Context) error {
	if err := s.setupTools(ctx); err != nil {
		return err
	}

	logger.Info("Starting server",
		zap.String("mode", string(s.config.Server.Mode)),
		zap.String("version", s.config.Server.Version),
	)

	switch s.config.Server.Mode {
	case config.ServerModeSSE:
		return s.ServeSSE(ctx)
	case config.ServerModeHTTP:
		return s.ServeHTTP(ctx)
	case config.ServerModeSTDIO:
		return s.ServeSTDIO(ctx)
	default:
		return fmt.Errorf("unsupported server mode: %s", s.config.Server.Mode)
	}
}

// Module provides the catalog server dependencies
var Module = fx.Module("catalog_server",
	fx.Provide(
		NewServer,
	),
)
