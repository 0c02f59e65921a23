package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/maryamfaizan53/weather-bot-new/pkg/errors"
	"github.com/maryamfaizan53/weather-bot-new/pkg/metrics"
	"github.com/maryamfaizan53/weather-bot-new/pkg/util"
)

// fetchFailedMessage is the one generic banner shown for any transport
// failure. It deliberately does not name the call that failed.
const fetchFailedMessage = "Failed to fetch weather data. Please try again."

// Service owns the dashboard page state and its fetch lifecycle.
type Service interface {
	Bootstrap(ctx context.Context) Snapshot
	Search(ctx context.Context, query string) Snapshot
	State() Snapshot
	SetUnits(ctx context.Context, units string) (Ack, error)
	SaveCurrent(ctx context.Context, name string) (Ack, error)
	AgentState(ctx context.Context) (AgentState, error)
}

// BackendClient talks to the WeatherWise API.
type BackendClient interface {
	CurrentWeather(ctx context.Context, location string) (WeatherSnapshot, error)
	Forecast(ctx context.Context, location string, days int) (ForecastSeries, error)
	AirQuality(ctx context.Context, location string) (AirQualitySnapshot, error)
	UpdatePreferences(ctx context.Context, prefs map[string]any) (Ack, error)
	SaveLocation(ctx context.Context, name string, data map[string]any) (Ack, error)
	AgentState(ctx context.Context) (AgentState, error)
}

// Locator resolves the device position for geolocation searches.
type Locator interface {
	Locate(ctx context.Context) (Position, error)
}

type service struct {
	cfg    Config
	client BackendClient
	logger *slog.Logger
	now    func() time.Time

	mu         sync.Mutex
	generation uint64
	location   string
	weather    *WeatherSnapshot
	forecast   *ForecastSeries
	air        *AirQualitySnapshot
	loading    bool
	lastError  string
	updatedAt  time.Time
	usage      metrics.FetchUsage
}

// NewService wires up the dashboard orchestrator.
func NewService(cfg Config, client BackendClient, logger *slog.Logger) Service {
	if cfg.ForecastDays <= 0 {
		cfg.ForecastDays = 3
	}
	return &service{
		cfg:    cfg,
		client: client,
		logger: logger.With("component", "dashboard.service"),
		now:    util.NowUTC,
	}
}

// Bootstrap runs the single automatic search for the configured default
// location.
func (s *service) Bootstrap(ctx context.Context) Snapshot {
	s.logger.Info("bootstrap search", "location", s.cfg.DefaultLocation)
	return s.Search(ctx, s.cfg.DefaultLocation)
}

// Search fetches current weather, forecast and air quality for the query
// concurrently and commits either all three records or none. Failures land
// in the returned snapshot's LastError, never in an error value, so the
// page always has a next state to render.
func (s *service) Search(ctx context.Context, query string) Snapshot {
	location := strings.TrimSpace(query)
	if location == "" {
		return s.State()
	}

	searchID := uuid.New().String()
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.loading = true
	s.lastError = ""
	s.usage.Searches++
	s.mu.Unlock()

	log := s.logger.With("search_id", searchID, "location", location)
	log.Info("dashboard search started")
	started := time.Now()

	var (
		weather  WeatherSnapshot
		forecast ForecastSeries
		air      AirQualitySnapshot
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if weather, err = s.client.CurrentWeather(gctx, location); err != nil {
			return fmt.Errorf("current weather: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if forecast, err = s.client.Forecast(gctx, location, s.cfg.ForecastDays); err != nil {
			return fmt.Errorf("forecast: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if air, err = s.client.AirQuality(gctx, location); err != nil {
			return fmt.Errorf("air quality: %w", err)
		}
		return nil
	})
	err := g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another search started after this one; its outcome owns the page now.
	if gen != s.generation {
		s.usage.StaleJoins++
		log.Info("dashboard search superseded, result discarded")
		return s.snapshotLocked()
	}

	s.loading = false
	if err != nil {
		s.lastError = fetchFailedMessage
		s.usage.TransportFailures++
		log.Error("dashboard search failed", "error", err, "duration_ms", time.Since(started).Milliseconds())
		return s.snapshotLocked()
	}

	s.weather = &weather
	s.forecast = &forecast
	s.air = &air
	s.location = location
	s.updatedAt = s.now()
	s.usage.Commits++
	log.Info("dashboard search committed", "duration_ms", time.Since(started).Milliseconds())
	return s.snapshotLocked()
}

// State returns a copy of the current page state.
func (s *service) State() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *service) snapshotLocked() Snapshot {
	return Snapshot{
		Location:   s.location,
		Weather:    s.weather,
		Forecast:   s.forecast,
		AirQuality: s.air,
		Loading:    s.loading,
		LastError:  s.lastError,
		UpdatedAt:  s.updatedAt,
		Usage:      s.usage,
	}
}

// validUnits covers the unit systems the backend forwards to its weather
// provider.
var validUnits = map[string]struct{}{
	"metric":   {},
	"imperial": {},
}

// SetUnits stores the preferred unit system on the backend agent.
func (s *service) SetUnits(ctx context.Context, units string) (Ack, error) {
	cleaned := strings.ToLower(strings.TrimSpace(units))
	if _, ok := validUnits[cleaned]; !ok {
		return Ack{}, apperrors.Wrap(apperrors.CodeInvalidInput, "units must be metric or imperial", nil)
	}
	ack, err := s.client.UpdatePreferences(ctx, map[string]any{"units": cleaned})
	if err != nil {
		return Ack{}, apperrors.Wrap(apperrors.CodeTransportError, "preferences update failed", err)
	}
	s.logger.Info("preferences updated", "units", cleaned)
	return ack, nil
}

// SaveCurrent stores the currently displayed conditions on the backend agent
// under the given name.
func (s *service) SaveCurrent(ctx context.Context, name string) (Ack, error) {
	cleaned := strings.TrimSpace(name)
	if cleaned == "" {
		return Ack{}, apperrors.Wrap(apperrors.CodeInvalidInput, "location name cannot be empty", nil)
	}

	s.mu.Lock()
	weather := s.weather
	location := s.location
	s.mu.Unlock()
	if weather == nil || weather.Failed() {
		return Ack{}, apperrors.Wrap(apperrors.CodeInvalidInput, "no weather data to save yet", nil)
	}

	data := map[string]any{
		"location":    location,
		"temperature": weather.Temperature,
		"description": weather.Description,
		"humidity":    weather.Humidity,
		"wind_speed":  weather.WindSpeed,
	}
	ack, err := s.client.SaveLocation(ctx, cleaned, data)
	if err != nil {
		return Ack{}, apperrors.Wrap(apperrors.CodeTransportError, "save location failed", err)
	}
	s.logger.Info("location saved", "name", cleaned, "location", location)
	return ack, nil
}

// AgentState fetches the backend agent's session summary.
func (s *service) AgentState(ctx context.Context) (AgentState, error) {
	state, err := s.client.AgentState(ctx)
	if err != nil {
		return AgentState{}, apperrors.Wrap(apperrors.CodeTransportError, "agent state fetch failed", err)
	}
	return state, nil
}
