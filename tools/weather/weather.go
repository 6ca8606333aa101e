package weather

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"mcp-weather-server/client"
	"mcp-weather-server/types"
)

const (
	msgInvalidInput = `The "location" argument is required.`
	msgNoData       = "Weather data was not available for that location."
	msgUnknownError = "Unknown error"
)

// Handler implements the getWeather tool
type Handler struct {
	client client.WeatherClient
	logger *slog.Logger
}

// NewHandler creates a new weather handler
func NewHandler(c client.WeatherClient, logger *slog.Logger) *Handler {
	return &Handler{
		client: c,
		logger: logger,
	}
}

// Lookup fetches current conditions for location and formats them.
// location is whatever the caller sent; anything but a non-blank string
// is rejected before a request is made. Lookup never returns an error:
// every failure becomes an error result.
func (h *Handler) Lookup(ctx context.Context, location any) (result types.ToolResult) {
	logger := h.logger.With("invocation", uuid.NewString())

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Weather lookup panicked", "panic", r)
			result = failedToFetch(fmt.Errorf("%v", r))
		}
	}()

	query, err := ParseLocation(location)
	if err != nil {
		logger.Debug("Rejected weather lookup", "error", err)
		return types.Failure(msgInvalidInput)
	}

	logger.Debug("Looking up weather", "location", query)

	snapshot, err := h.fetch(ctx, query)
	if err != nil {
		logger.Debug("Weather lookup failed", "location", query, "error", err)
		return errorResult(err)
	}

	return types.Success(snapshot.Report(query))
}

func (h *Handler) fetch(ctx context.Context, location string) (Snapshot, error) {
	payload, err := h.client.CurrentConditions(ctx, location)
	if err != nil {
		return Snapshot{}, err
	}

	current := payload.First()
	if current == nil {
		return Snapshot{}, types.ErrNoData
	}

	return NewSnapshot(current), nil
}

// ParseLocation trims location and checks it is a non-empty string
func ParseLocation(location any) (string, error) {
	str, ok := location.(string)
	if !ok {
		return "", types.ErrInvalidInput
	}
	str = strings.TrimSpace(str)
	if str == "" {
		return "", types.ErrInvalidInput
	}
	return str, nil
}

func errorResult(err error) types.ToolResult {
	var httpErr *types.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return types.Failure(fmt.Sprintf("Weather API request failed with status %d.", httpErr.StatusCode))
	case errors.Is(err, types.ErrNoData):
		return types.Failure(msgNoData)
	default:
		return failedToFetch(err)
	}
}

func failedToFetch(err error) types.ToolResult {
	message := msgUnknownError
	if err != nil && err.Error() != "" {
		message = err.Error()
	}
	return types.Failure("Failed to fetch weather: " + message)
}
