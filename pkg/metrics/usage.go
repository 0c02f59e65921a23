package metrics

// FetchUsage captures dashboard fetch counters accumulated over a session.
type FetchUsage struct {
	Searches          int `json:"searches"`
	Commits           int `json:"commits"`
	TransportFailures int `json:"transportFailures,omitempty"`
	StaleJoins        int `json:"staleJoins,omitempty"`
}

// IsZero reports whether usage data is absent.
func (u FetchUsage) IsZero() bool {
	return u.Searches == 0 && u.Commits == 0 && u.TransportFailures == 0 && u.StaleJoins == 0
}
