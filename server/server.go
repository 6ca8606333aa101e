package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"mcp-weather-server/config"
	"mcp-weather-server/mcp"
	"mcp-weather-server/tools"
)

const (
	Name    = "mcp-weather-server"
	Version = "0.1.0"

	shutdownTimeout = 5 * time.Second
)

// Server handles MCP protocol communication
type Server struct {
	toolHandler *tools.Handler
	config      *config.Config
	logger      *slog.Logger

	// stdio is the transport used for config.TransportStdio
	stdio mcpsdk.Transport
}

// New creates a new MCP server
func New(toolHandler *tools.Handler, cfg *config.Config, logger *slog.Logger) *Server {
	return &Server{
		toolHandler: toolHandler,
		config:      cfg,
		logger:      logger,
		stdio:       &mcpsdk.StdioTransport{},
	}
}

// Run serves MCP requests until ctx is cancelled or the transport fails.
// Cancellation is a clean shutdown and returns nil.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("Starting MCP weather server...", "transport", s.config.Transport)

	server := mcpsdk.NewServer(&mcpsdk.Implementation{
		Name:    Name,
		Version: Version,
	}, nil)

	registry := mcp.NewRegistry(s.toolHandler, s.logger)
	if err := registry.RegisterAll(server); err != nil {
		s.logger.Error("Failed to register tools", "error", err)
		return err
	}

	s.logger.Info("Tools registered successfully")

	var err error
	switch s.config.Transport {
	case config.TransportStdio, "":
		err = s.runStdio(ctx, server)
	case config.TransportHTTP:
		err = s.runHTTP(ctx, server)
	default:
		err = fmt.Errorf("unsupported transport %q", s.config.Transport)
	}
	if err != nil {
		s.logger.Error("MCP server error", "error", err)
		return err
	}

	s.logger.Info("Shutting down MCP weather server")
	return nil
}

func (s *Server) runStdio(ctx context.Context, server *mcpsdk.Server) error {
	err := server.Run(ctx, s.stdio)
	if err != nil && ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		return nil
	}
	return err
}

func (s *Server) runHTTP(ctx context.Context, server *mcpsdk.Server) error {
	handler := mcpsdk.NewStreamableHTTPHandler(func(*http.Request) *mcpsdk.Server {
		return server
	}, nil)

	mux := http.NewServeMux()
	mux.Handle(s.config.HTTPEndpoint, handler)

	httpServer := &http.Server{
		Addr:              s.config.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Listening for MCP over HTTP", "addr", s.config.HTTPAddr, "endpoint", s.config.HTTPEndpoint)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http transport: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http transport: %w", err)
	}
	return <-errCh
}
