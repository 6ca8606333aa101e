package mcp

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"testing"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"mcp-weather-server/client"
	"mcp-weather-server/testutils"
	"mcp-weather-server/tools"
)

const parisReport = "Current weather for Paris:\n- Conditions: Sunny\n- Temperature: 21°C (feels like 19°C)\n- Humidity: 55%\n- Wind: 10 km/h"

type RegistryIntegrationTestSuite struct {
	suite.Suite
	logger *slog.Logger
}

func (s *RegistryIntegrationTestSuite) SetupSuite() {
	s.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError, // Reduce noise in tests
	}))
}

// connect registers the tools on a real MCP server backed by upstream and
// returns a client session talking to it over in-memory transports.
func (s *RegistryIntegrationTestSuite) connect(upstream *testutils.Upstream) *mcpsdk.ClientSession {
	t := s.T()

	cfg := testutils.LoadTestConfig(upstream.URL)
	registry := NewRegistry(tools.NewHandler(client.New(cfg, s.logger), s.logger), s.logger)

	server := mcpsdk.NewServer(&mcpsdk.Implementation{Name: "test-server", Version: "1.0.0"}, nil)
	require.NoError(t, registry.RegisterAll(server))

	serverTransport, clientTransport := mcpsdk.NewInMemoryTransports()

	ctx, cancel := context.WithCancel(context.Background())
	serverDone := make(chan error, 1)
	go func() {
		serverDone <- server.Run(ctx, serverTransport)
	}()
	t.Cleanup(func() {
		cancel()
		<-serverDone
	})

	c := mcpsdk.NewClient(&mcpsdk.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := c.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })

	return session
}

func (s *RegistryIntegrationTestSuite) callTool(session *mcpsdk.ClientSession, arguments any) (string, bool) {
	result, err := session.CallTool(context.Background(), &mcpsdk.CallToolParams{
		Name:      GetWeatherToolName,
		Arguments: arguments,
	})
	s.Require().NoError(err)
	s.Require().Len(result.Content, 1)

	text, ok := result.Content[0].(*mcpsdk.TextContent)
	s.Require().True(ok)
	return text.Text, result.IsError
}

func (s *RegistryIntegrationTestSuite) TestListTools() {
	upstream := testutils.NewUpstream(s.T(), http.StatusOK, testutils.ParisBody)
	session := s.connect(upstream)

	result, err := session.ListTools(context.Background(), nil)
	s.Require().NoError(err)
	s.Require().Len(result.Tools, 1)

	tool := result.Tools[0]
	s.Equal("getWeather", tool.Name)
	s.Equal("Fetch the current weather for a city or location (powered by wttr.in).", tool.Description)

	data, err := json.Marshal(tool.InputSchema)
	s.Require().NoError(err)

	var schema struct {
		Type       string                     `json:"type"`
		Properties map[string]json.RawMessage `json:"properties"`
		Required   []string                   `json:"required"`
	}
	s.Require().NoError(json.Unmarshal(data, &schema))
	s.Equal("object", schema.Type)
	s.Contains(schema.Properties, "location")
	s.Equal([]string{"location"}, schema.Required)
}

func (s *RegistryIntegrationTestSuite) TestGetWeather_Success() {
	upstream := testutils.NewUpstream(s.T(), http.StatusOK, testutils.ParisBody)
	session := s.connect(upstream)

	text, isError := s.callTool(session, map[string]any{"location": " Paris "})
	s.False(isError)
	s.Equal(parisReport, text)
}

func (s *RegistryIntegrationTestSuite) TestGetWeather_Errors() {
	tests := []struct {
		name      string
		status    int
		body      string
		arguments any
		expected  string
		hits      int
	}{
		{
			name:      "no arguments",
			status:    http.StatusOK,
			body:      testutils.ParisBody,
			arguments: nil,
			expected:  `The "location" argument is required.`,
			hits:      0,
		},
		{
			name:      "blank location",
			status:    http.StatusOK,
			body:      testutils.ParisBody,
			arguments: map[string]any{"location": "   "},
			expected:  `The "location" argument is required.`,
			hits:      0,
		},
		{
			name:      "non-string location",
			status:    http.StatusOK,
			body:      testutils.ParisBody,
			arguments: map[string]any{"location": 75001},
			expected:  `The "location" argument is required.`,
			hits:      0,
		},
		{
			name:      "upstream failure",
			status:    http.StatusInternalServerError,
			body:      "{not json",
			arguments: map[string]any{"location": "Paris"},
			expected:  "Weather API request failed with status 500.",
			hits:      1,
		},
		{
			name:      "no conditions",
			status:    http.StatusOK,
			body:      `{"current_condition": []}`,
			arguments: map[string]any{"location": "Paris"},
			expected:  "Weather data was not available for that location.",
			hits:      1,
		},
		{
			name:      "malformed body",
			status:    http.StatusOK,
			body:      "<html>",
			arguments: map[string]any{"location": "Paris"},
			expected:  "Failed to fetch weather: invalid character '<' looking for beginning of value",
			hits:      1,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			upstream := testutils.NewUpstream(s.T(), tt.status, tt.body)
			session := s.connect(upstream)

			text, isError := s.callTool(session, tt.arguments)
			s.True(isError)
			s.Equal(tt.expected, text)
			s.Equal(tt.hits, upstream.Hits())
		})
	}
}

func TestRegistryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(RegistryIntegrationTestSuite))
}
