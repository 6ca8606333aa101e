package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"mcp-weather-server/config"
	"mcp-weather-server/types"
)

// WeatherClient defines the interface for wttr.in lookups
type WeatherClient interface {
	CurrentConditions(ctx context.Context, location string) (*Payload, error)
}

// Payload is the subset of the wttr.in j1 document the server consumes.
// Every field is optional upstream, hence the pointers.
type Payload struct {
	CurrentCondition []*CurrentCondition `json:"current_condition"`
}

// CurrentCondition is one entry of current_condition
type CurrentCondition struct {
	TempC         *string        `json:"temp_C"`
	FeelsLikeC    *string        `json:"FeelsLikeC"`
	Humidity      *string        `json:"humidity"`
	WindspeedKmph *string        `json:"windspeedKmph"`
	WeatherDesc   []*WeatherDesc `json:"weatherDesc"`
}

// WeatherDesc holds a textual description of the conditions
type WeatherDesc struct {
	Value *string `json:"value"`
}

// UnmarshalJSON only decodes current_condition when it is an array; any
// other shape counts as no conditions.
func (p *Payload) UnmarshalJSON(data []byte) error {
	var raw struct {
		CurrentCondition json.RawMessage `json:"current_condition"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.CurrentCondition = nil
	if len(raw.CurrentCondition) == 0 || raw.CurrentCondition[0] != '[' {
		return nil
	}
	return json.Unmarshal(raw.CurrentCondition, &p.CurrentCondition)
}

// First returns the first current condition, or nil when there is none
func (p *Payload) First() *CurrentCondition {
	if p == nil || len(p.CurrentCondition) == 0 {
		return nil
	}
	return p.CurrentCondition[0]
}

// Client provides access to the wttr.in API
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a new wttr.in client
func New(cfg *config.Config, logger *slog.Logger) WeatherClient {
	return NewWithHTTPClient(cfg, &http.Client{
		Timeout: cfg.RequestTimeout,
	}, logger)
}

// NewWithHTTPClient creates a client that issues requests through httpClient
func NewWithHTTPClient(cfg *config.Config, httpClient *http.Client, logger *slog.Logger) WeatherClient {
	return &Client{
		baseURL:    strings.TrimRight(cfg.WeatherURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// CurrentConditions fetches the j1 document for location.
// A non-2xx status yields *types.HTTPError and the body is left unread.
func (c *Client) CurrentConditions(ctx context.Context, location string) (*Payload, error) {
	endpoint := c.endpoint(location)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("Requesting weather", "url", endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, unwrapURLError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &types.HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, unwrapURLError(err)
	}

	var payload Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}

	return &payload, nil
}

func (c *Client) endpoint(location string) string {
	return c.baseURL + "/" + EscapeComponent(location) + "?format=j1"
}

// EscapeComponent percent-encodes every byte of s except letters, digits
// and -_.!~*'() so that reserved characters such as + & = reach wttr.in
// as data rather than syntax.
func EscapeComponent(s string) string {
	const hex = "0123456789ABCDEF"

	var b strings.Builder
	b.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}

// unwrapURLError strips the "Get <url>:" prefix net/http adds so the
// caller sees the underlying failure.
func unwrapURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err
	}
	return err
}
