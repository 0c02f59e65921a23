package weatherwise

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/maryamfaizan53/weather-bot-new/internal/domain/dashboard"
)

const (
	defaultBaseURL      = "http://localhost:8000"
	defaultForecastDays = 3
)

// Client performs HTTP requests against the WeatherWise backend. The body is
// decoded as-is regardless of status code: the backend encodes its own
// failures as JSON error records, and this client trusts them verbatim.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a backend client.
func NewClient(baseURL string) *Client {
	url := strings.TrimSpace(baseURL)
	if url == "" {
		url = defaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(url, "/"),
		// No request timeout: a slow backend keeps the page in its
		// loading state rather than erroring out.
		httpClient: &http.Client{},
	}
}

type locationRequest struct {
	Location string `json:"location"`
}

type forecastRequest struct {
	Location string `json:"location"`
	Days     int    `json:"days"`
}

type preferencesRequest struct {
	Preferences map[string]any `json:"preferences"`
}

type saveLocationRequest struct {
	Name string         `json:"name"`
	Data map[string]any `json:"data"`
}

// CurrentWeather fetches current conditions for a location.
func (c *Client) CurrentWeather(ctx context.Context, location string) (dashboard.WeatherSnapshot, error) {
	var out dashboard.WeatherSnapshot
	err := c.postJSON(ctx, "/weather/current", locationRequest{Location: location}, &out)
	return out, err
}

// Forecast fetches the short-range forecast window. Non-positive days fall
// back to the backend's default of 3.
func (c *Client) Forecast(ctx context.Context, location string, days int) (dashboard.ForecastSeries, error) {
	if days <= 0 {
		days = defaultForecastDays
	}
	var out dashboard.ForecastSeries
	err := c.postJSON(ctx, "/weather/forecast", forecastRequest{Location: location, Days: days}, &out)
	return out, err
}

// AirQuality fetches the air pollution reading for a location.
func (c *Client) AirQuality(ctx context.Context, location string) (dashboard.AirQualitySnapshot, error) {
	var out dashboard.AirQualitySnapshot
	err := c.postJSON(ctx, "/weather/air-quality", locationRequest{Location: location}, &out)
	return out, err
}

// UpdatePreferences stores user preferences on the backend agent.
func (c *Client) UpdatePreferences(ctx context.Context, prefs map[string]any) (dashboard.Ack, error) {
	var out dashboard.Ack
	err := c.postJSON(ctx, "/preferences", preferencesRequest{Preferences: prefs}, &out)
	return out, err
}

// SaveLocation stores a named location payload on the backend agent.
func (c *Client) SaveLocation(ctx context.Context, name string, data map[string]any) (dashboard.Ack, error) {
	var out dashboard.Ack
	err := c.postJSON(ctx, "/locations", saveLocationRequest{Name: name, Data: data}, &out)
	return out, err
}

// AgentState fetches the backend agent's session summary.
func (c *Client) AgentState(ctx context.Context) (dashboard.AgentState, error) {
	var out dashboard.AgentState
	err := c.getJSON(ctx, "/agent/state", &out)
	return out, err
}

func (c *Client) postJSON(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, path, out)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	return c.do(req, path, out)
}

func (c *Client) do(req *http.Request, path string, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
