package display

// AQILevel names an air quality category together with its style token.
type AQILevel struct {
	Label string
	Style string
}

// aqiLevels is the closed five-step scale the backend reports. Values
// outside it are never clamped or interpolated.
var aqiLevels = map[int]AQILevel{
	1: {Label: "Good", Style: "aqi-good"},
	2: {Label: "Fair", Style: "aqi-fair"},
	3: {Label: "Moderate", Style: "aqi-moderate"},
	4: {Label: "Poor", Style: "aqi-poor"},
	5: {Label: "Very Poor", Style: "aqi-very-poor"},
}

var aqiUnknown = AQILevel{Label: "Unknown", Style: "aqi-unknown"}

// ClassifyAQI maps the backend's integer AQI onto its display level.
func ClassifyAQI(aqi int) AQILevel {
	if level, ok := aqiLevels[aqi]; ok {
		return level
	}
	return aqiUnknown
}
