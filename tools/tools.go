package tools

import (
	"log/slog"

	"mcp-weather-server/client"
	"mcp-weather-server/tools/weather"
)

// Handler aggregates all tool handlers
type Handler struct {
	Weather *weather.Handler
}

// NewHandler creates a new aggregated tool handler
func NewHandler(client client.WeatherClient, logger *slog.Logger) *Handler {
	return &Handler{
		Weather: weather.NewHandler(client, logger),
	}
}
