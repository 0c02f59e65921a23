package term

import (
	"context"
	"log/slog"
	"strings"

	"github.com/maryamfaizan53/weather-bot-new/internal/domain/dashboard"
	apperrors "github.com/maryamfaizan53/weather-bot-new/pkg/errors"
)

type inputState int

const (
	stateIdle inputState = iota
	stateAwaitingGeolocation
)

// SearchInput mirrors the dashboard search box: a local text buffer plus a
// two-state machine for the geolocation path. A query reaches the
// orchestrator only through Submit or a resolved Geolocate, never while the
// page is loading.
type SearchInput struct {
	locator dashboard.Locator
	logger  *slog.Logger
	buffer  string
	state   inputState
}

// NewSearchInput builds the search box. locator may be nil when the host has
// no geolocation capability.
func NewSearchInput(locator dashboard.Locator, logger *slog.Logger) *SearchInput {
	return &SearchInput{
		locator: locator,
		logger:  logger.With("component", "term.search"),
	}
}

// Type appends text to the local buffer without emitting anything.
func (s *SearchInput) Type(text string) {
	s.buffer += text
}

// Buffer returns the pending text.
func (s *SearchInput) Buffer() string {
	return s.buffer
}

// Submit consumes the buffer and emits its trimmed text as a query. A blank
// buffer emits nothing; while the page is loading the submission is rejected
// and the returned error carries the notice.
func (s *SearchInput) Submit(loading bool) (string, error) {
	if loading {
		return "", apperrors.Wrap(apperrors.CodeInvalidInput, "search is disabled while loading", nil)
	}
	query := strings.TrimSpace(s.buffer)
	s.buffer = ""
	if query == "" {
		return "", nil
	}
	s.logger.Debug("search submitted", "query", query)
	return query, nil
}

// Geolocate resolves the device position and emits it as a "lat,lon" query.
// On failure nothing is emitted and the returned error carries the notice.
func (s *SearchInput) Geolocate(ctx context.Context, loading bool) (string, error) {
	if loading {
		return "", apperrors.Wrap(apperrors.CodeInvalidInput, "search is disabled while loading", nil)
	}
	if s.locator == nil {
		return "", apperrors.Wrap(apperrors.CodeGeolocateError, "geolocation is not available", nil)
	}

	s.state = stateAwaitingGeolocation
	defer func() { s.state = stateIdle }()

	pos, err := s.locator.Locate(ctx)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeGeolocateError, "unable to retrieve your location", err)
	}
	query := pos.String()
	s.logger.Debug("geolocation resolved", "query", query)
	return query, nil
}

// AwaitingGeolocation reports whether a geolocation request is in flight.
func (s *SearchInput) AwaitingGeolocation() bool {
	return s.state == stateAwaitingGeolocation
}
