package display

import "time"

// DayLabel formats an epoch-seconds timestamp as a short weekday/month/day
// label. Fixed to UTC so the same timestamp renders identically everywhere.
func DayLabel(epochSeconds int64) string {
	return time.Unix(epochSeconds, 0).UTC().Format("Mon, Jan 2")
}
