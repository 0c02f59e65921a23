package geoip

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/maryamfaizan53/weather-bot-new/internal/domain/dashboard"
)

const defaultBaseURL = "http://ip-api.com/json"

// Client resolves the device position from its public IP address.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds an IP geolocation client.
func NewClient(baseURL string) *Client {
	url := strings.TrimSpace(baseURL)
	if url == "" {
		url = defaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(url, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type apiResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Locate fetches the coordinates the provider associates with the caller's IP.
func (c *Client) Locate(ctx context.Context) (dashboard.Position, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return dashboard.Position{}, fmt.Errorf("build geolocation request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return dashboard.Position{}, fmt.Errorf("geolocation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return dashboard.Position{}, fmt.Errorf("geolocation request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return dashboard.Position{}, fmt.Errorf("read geolocation response: %w", err)
	}

	var raw apiResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return dashboard.Position{}, fmt.Errorf("decode geolocation response: %w", err)
	}
	if raw.Status != "success" {
		return dashboard.Position{}, fmt.Errorf("geolocation refused: %s", raw.Message)
	}

	return dashboard.Position{Latitude: raw.Lat, Longitude: raw.Lon}, nil
}
