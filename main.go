package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"mcp-weather-server/client"
	"mcp-weather-server/config"
	"mcp-weather-server/server"
	"mcp-weather-server/tools"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logLevel := slog.LevelInfo
	if cfg.Debug {
		logLevel = slog.LevelDebug
	}

	// stdout carries the stdio transport, so logs go to stderr
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	weatherClient := client.New(cfg, logger)
	toolHandler := tools.NewHandler(weatherClient, logger)

	mcpServer := server.New(toolHandler, cfg, logger)

	if err := mcpServer.Run(ctx); err != nil {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
