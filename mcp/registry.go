package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/invopop/jsonschema"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"mcp-weather-server/tools"
	"mcp-weather-server/types"
)

const (
	GetWeatherToolName        = "getWeather"
	GetWeatherToolDescription = "Fetch the current weather for a city or location (powered by wttr.in)."
)

// GetWeatherArgs represents arguments for the getWeather tool.
// Location is untyped so a non-string value reaches the handler and is
// rejected there instead of failing argument decoding.
type GetWeatherArgs struct {
	Location any `json:"location" jsonschema:"required,type=string" jsonschema_description:"City name, postal code, or geographic query supported by wttr.in."`
}

// toolServer is the part of the MCP server the registry needs
type toolServer interface {
	AddTool(t *mcpsdk.Tool, h mcpsdk.ToolHandler)
}

// Registry handles MCP tool registration
type Registry struct {
	tools  *tools.Handler
	logger *slog.Logger
}

// NewRegistry creates a new MCP tool registry
func NewRegistry(toolsHandler *tools.Handler, logger *slog.Logger) *Registry {
	return &Registry{
		tools:  toolsHandler,
		logger: logger,
	}
}

// RegisterAll registers all tools with the MCP server
func (r *Registry) RegisterAll(server toolServer) error {
	r.logger.Info("Registering tools with MCP...")

	if err := r.registerWeatherTools(server); err != nil {
		return fmt.Errorf("failed to register weather tools: %w", err)
	}

	r.logger.Info("All tools registered successfully")
	return nil
}

func (r *Registry) registerWeatherTools(server toolServer) error {
	schema, err := GetWeatherInputSchema()
	if err != nil {
		return err
	}

	server.AddTool(&mcpsdk.Tool{
		Name:        GetWeatherToolName,
		Description: GetWeatherToolDescription,
		InputSchema: schema,
	}, r.handleGetWeatherTool)

	r.logger.Debug("Weather tools registered", "tool", GetWeatherToolName)
	return nil
}

// GetWeatherInputSchema reflects the getWeather input schema from GetWeatherArgs
func GetWeatherInputSchema() (json.RawMessage, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
		ExpandedStruct:            true,
	}
	schema := reflector.Reflect(&GetWeatherArgs{})
	schema.Version = ""

	data, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal input schema: %w", err)
	}
	return data, nil
}

// handleGetWeatherTool processes getWeather requests
func (r *Registry) handleGetWeatherTool(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var raw json.RawMessage
	if req != nil && req.Params != nil {
		raw = req.Params.Arguments
	}

	args := r.parseArgs(raw)
	result := r.tools.Weather.Lookup(ctx, args.Location)
	return toolResponse(result), nil
}

// parseArgs decodes the call arguments. Anything that is not a JSON
// object yields empty args, which the handler rejects as missing input.
func (r *Registry) parseArgs(raw json.RawMessage) GetWeatherArgs {
	var args GetWeatherArgs
	if len(raw) == 0 {
		return args
	}
	if err := json.Unmarshal(raw, &args); err != nil {
		r.logger.Debug("Failed to decode getWeather arguments", "error", err)
		return GetWeatherArgs{}
	}
	return args
}

// toolResponse maps a tool result onto the host's reply
func toolResponse(result types.ToolResult) *mcpsdk.CallToolResult {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: result.Text}},
		IsError: result.IsError,
	}
}
