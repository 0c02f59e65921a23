package display

import "strings"

// conditionVisual pairs description keywords with a glyph and a style token.
type conditionVisual struct {
	keywords []string
	icon     string
	style    string
}

// conditionVisuals is scanned in order; the first keyword hit wins, so a
// description matching several categories resolves to the earliest one.
var conditionVisuals = []conditionVisual{
	{keywords: []string{"clear", "sun"}, icon: "☀️", style: "sunny"},
	{keywords: []string{"cloud"}, icon: "☁️", style: "cloudy"},
	{keywords: []string{"rain", "drizzle"}, icon: "🌧️", style: "rainy"},
	{keywords: []string{"snow"}, icon: "❄️", style: "snowy"},
	{keywords: []string{"thunder"}, icon: "⛈️", style: "stormy"},
	{keywords: []string{"mist", "fog"}, icon: "🌫️", style: "misty"},
}

const (
	fallbackIcon  = "🌤️"
	fallbackStyle = "plain"
)

// Icon picks the weather glyph for a description via case-insensitive
// substring match, falling back to a generic glyph.
func Icon(description string) string {
	if v, ok := matchVisual(description); ok {
		return v.icon
	}
	return fallbackIcon
}

// Style picks the card style token for a description. Same priorities as
// Icon, separate fallback.
func Style(description string) string {
	if v, ok := matchVisual(description); ok {
		return v.style
	}
	return fallbackStyle
}

func matchVisual(description string) (conditionVisual, bool) {
	lowered := strings.ToLower(description)
	for _, v := range conditionVisuals {
		for _, keyword := range v.keywords {
			if strings.Contains(lowered, keyword) {
				return v, true
			}
		}
	}
	return conditionVisual{}, false
}
