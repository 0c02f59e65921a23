package term

import (
	"fmt"
	"sort"
	"strings"

	"github.com/maryamfaizan53/weather-bot-new/internal/domain/dashboard"
	"github.com/maryamfaizan53/weather-bot-new/internal/domain/display"
)

const cardWidth = 46

// styleColors maps display style tokens onto ANSI colors for card headers.
// Tokens without an entry render unpainted.
var styleColors = map[string]string{
	"sunny":         "\x1b[33m",
	"cloudy":        "\x1b[37m",
	"rainy":         "\x1b[34m",
	"snowy":         "\x1b[36m",
	"stormy":        "\x1b[35m",
	"misty":         "\x1b[90m",
	"aqi-good":      "\x1b[32m",
	"aqi-fair":      "\x1b[33m",
	"aqi-moderate":  "\x1b[33m",
	"aqi-poor":      "\x1b[31m",
	"aqi-very-poor": "\x1b[91m",
	"aqi-unknown":   "\x1b[90m",
}

const colorReset = "\x1b[0m"

func paint(style, text string) string {
	code, ok := styleColors[style]
	if !ok || code == "" {
		return text
	}
	return code + text + colorReset
}

func card(title, style string, lines ...string) string {
	header := "-- " + title + " "
	if pad := cardWidth - len(header); pad > 0 {
		header += strings.Repeat("-", pad)
	}
	var b strings.Builder
	b.WriteString(paint(style, header))
	b.WriteByte('\n')
	for _, line := range lines {
		b.WriteString("   ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// WeatherCard renders current conditions. A nil record renders nothing; a
// record carrying a backend error renders its own error block.
func WeatherCard(location string, snap *dashboard.WeatherSnapshot) string {
	if snap == nil {
		return ""
	}
	title := "Current Weather: " + location
	if snap.Failed() {
		return card(title, "plain", "! "+snap.Error)
	}
	return card(title, display.Style(snap.Description),
		display.Icon(snap.Description)+" "+snap.Description,
		fmt.Sprintf("%.1f° (feels like %.1f°)", snap.Temperature, snap.FeelsLike),
		fmt.Sprintf("humidity %d%%  wind %.1f m/s", snap.Humidity, snap.WindSpeed),
	)
}

// ForecastCard renders the forecast window as one line per entry.
func ForecastCard(series *dashboard.ForecastSeries) string {
	if series == nil {
		return ""
	}
	title := "Forecast: " + series.City
	if series.Failed() {
		return card(title, "plain", "! "+series.Error)
	}
	lines := make([]string, 0, len(series.Entries))
	for _, entry := range series.Entries {
		desc := entry.Description()
		lines = append(lines, fmt.Sprintf("%s  %s %s  %.1f° (%.1f°..%.1f°)  humidity %d%%",
			display.DayLabel(entry.Timestamp), display.Icon(desc), desc,
			entry.Main.Temp, entry.Main.TempMin, entry.Main.TempMax, entry.Main.Humidity))
	}
	style := "plain"
	if len(series.Entries) > 0 {
		style = display.Style(series.Entries[0].Description())
	}
	if len(lines) == 0 {
		lines = append(lines, "no forecast entries")
	}
	return card(title, style, lines...)
}

// AirQualityCard renders the AQI level plus pollutant concentrations.
func AirQualityCard(snap *dashboard.AirQualitySnapshot) string {
	if snap == nil {
		return ""
	}
	if snap.Failed() {
		return card("Air Quality", "plain", "! "+snap.Error)
	}
	level := display.ClassifyAQI(snap.AQI)
	lines := []string{fmt.Sprintf("%s (AQI %d)", level.Label, snap.AQI)}
	if len(snap.Components) > 0 {
		keys := make([]string, 0, len(snap.Components))
		for key := range snap.Components {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, key := range keys {
			parts = append(parts, fmt.Sprintf("%s %.2f", key, snap.Components[key]))
		}
		lines = append(lines, strings.Join(parts, "  "))
	}
	return card("Air Quality", level.Style, lines...)
}

// AgentStateCard renders the backend agent's session summary.
func AgentStateCard(state dashboard.AgentState) string {
	lines := []string{fmt.Sprintf("conversations: %d", state.ConversationCount)}
	if state.LastInteraction != "" {
		lines = append(lines, "last interaction: "+state.LastInteraction)
	}
	if len(state.SavedLocations) > 0 {
		lines = append(lines, "saved locations: "+strings.Join(state.SavedLocations, ", "))
	}
	if len(state.Preferences) > 0 {
		keys := make([]string, 0, len(state.Preferences))
		for key := range state.Preferences {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, key := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", key, state.Preferences[key]))
		}
		lines = append(lines, "preferences: "+strings.Join(parts, " "))
	}
	return card("Agent State", "plain", lines...)
}
