package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

type Config struct {
	WeatherURL     string        `long:"weather-url" env:"WEATHER_URL" default:"https://wttr.in" description:"Base URL of the wttr.in weather API"`
	RequestTimeout time.Duration `long:"request-timeout" env:"REQUEST_TIMEOUT" default:"0s" description:"HTTP request timeout (0 disables it)"`
	Transport      string        `long:"transport" env:"MCP_TRANSPORT" default:"stdio" choice:"stdio" choice:"http" description:"MCP transport to serve on"`
	HTTPAddr       string        `long:"http-addr" env:"HTTP_ADDR" default:":8080" description:"Listen address for the http transport"`
	HTTPEndpoint   string        `long:"http-endpoint" env:"HTTP_ENDPOINT" default:"/mcp" description:"MCP endpoint path for the http transport"`
	EnvFile        string        `long:"env-file" description:"Path to .env file for local development"`
	Debug          bool          `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

func Load() (*Config, error) {
	return LoadArgs(os.Args[1:])
}

// LoadArgs parses args, loads the .env file and parses again so that
// variables from the file become visible to env-backed flags.
func LoadArgs(args []string) (*Config, error) {
	var cfg Config

	parser := flags.NewParser(&cfg, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	if cfg.EnvFile != "" {
		if err := godotenv.Load(cfg.EnvFile); err != nil {
			slog.Warn("Failed to load .env file", "file", cfg.EnvFile, "error", err)
		}
	} else {
		_ = godotenv.Load()
	}

	if _, err := parser.ParseArgs(args); err != nil {
		return nil, fmt.Errorf("failed to parse config after loading env: %w", err)
	}

	return &cfg, nil
}
