package testutils

import (
	"mcp-weather-server/config"
)

// LoadTestConfig returns a config pointing the weather client at weatherURL
func LoadTestConfig(weatherURL string) *config.Config {
	return &config.Config{
		WeatherURL:   weatherURL,
		Transport:    config.TransportStdio,
		HTTPAddr:     ":8080",
		HTTPEndpoint: "/mcp",
	}
}
