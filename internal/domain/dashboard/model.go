package dashboard

import (
	"strconv"
	"time"

	"github.com/maryamfaizan53/weather-bot-new/pkg/metrics"
)

// WeatherSnapshot holds current conditions as reported by the backend.
// When Error is set the remaining fields carry no data.
type WeatherSnapshot struct {
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	Humidity    int     `json:"humidity"`
	Description string  `json:"description"`
	WindSpeed   float64 `json:"wind_speed"`
	Error       string  `json:"error,omitempty"`
}

// Failed reports whether the backend answered with a domain error instead of data.
func (w WeatherSnapshot) Failed() bool {
	return w.Error != ""
}

// ForecastSeries is the short-range forecast window for one city.
type ForecastSeries struct {
	City    string          `json:"city"`
	Entries []ForecastEntry `json:"forecast"`
	Error   string          `json:"error,omitempty"`
}

// Failed reports whether the backend answered with a domain error instead of data.
func (f ForecastSeries) Failed() bool {
	return f.Error != ""
}

// ForecastEntry mirrors one three-hourly list entry the backend forwards
// verbatim from OpenWeather.
type ForecastEntry struct {
	Timestamp int64       `json:"dt"`
	Main      EntryMain   `json:"main"`
	Weather   []Condition `json:"weather"`
	Wind      Wind        `json:"wind"`
}

// Description returns the entry's primary condition text, or "" when the
// condition block is absent.
func (e ForecastEntry) Description() string {
	if len(e.Weather) == 0 {
		return ""
	}
	return e.Weather[0].Description
}

// EntryMain carries the thermal block of a forecast entry.
type EntryMain struct {
	Temp      float64 `json:"temp"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	FeelsLike float64 `json:"feels_like"`
	Humidity  int     `json:"humidity"`
}

// Condition is the textual weather descriptor attached to an entry.
type Condition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Wind carries wind telemetry.
type Wind struct {
	Speed float64 `json:"speed"`
}

// AirQualitySnapshot is the backend's air pollution reading: a categorical
// index plus pollutant concentrations.
type AirQualitySnapshot struct {
	AQI        int                `json:"aqi"`
	Components map[string]float64 `json:"components"`
	Error      string             `json:"error,omitempty"`
}

// Failed reports whether the backend answered with a domain error instead of data.
func (a AirQualitySnapshot) Failed() bool {
	return a.Error != ""
}

// AgentState summarizes the backend agent session.
type AgentState struct {
	ConversationCount int            `json:"conversation_count"`
	LastInteraction   string         `json:"last_interaction"`
	SavedLocations    []string       `json:"saved_locations"`
	Preferences       map[string]any `json:"preferences"`
}

// Ack is the backend acknowledgment for preference and location writes.
type Ack struct {
	Message string `json:"message"`
}

// Position is a device coordinate pair resolved by a Locator.
type Position struct {
	Latitude  float64
	Longitude float64
}

// String renders the position as the "lat,lon" query the backend's location
// parser accepts, at full float precision.
func (p Position) String() string {
	return strconv.FormatFloat(p.Latitude, 'f', -1, 64) + "," + strconv.FormatFloat(p.Longitude, 'f', -1, 64)
}

// Snapshot is a copy of the page state handed to renderers. Records are
// read-only once published; a nil record means it has never been fetched.
type Snapshot struct {
	Location   string
	Weather    *WeatherSnapshot
	Forecast   *ForecastSeries
	AirQuality *AirQualitySnapshot
	Loading    bool
	LastError  string
	UpdatedAt  time.Time
	Usage      metrics.FetchUsage
}

// Config wires runtime settings for the dashboard domain.
type Config struct {
	DefaultLocation string
	ForecastDays    int
}
