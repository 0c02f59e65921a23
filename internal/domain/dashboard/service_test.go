package dashboard

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/maryamfaizan53/weather-bot-new/pkg/errors"
)

func TestServiceSearchSuccess(t *testing.T) {
	stub := &stubBackend{
		weather:  WeatherSnapshot{Temperature: 15.2, FeelsLike: 14.8, Humidity: 72, Description: "clear sky", WindSpeed: 3.6},
		forecast: ForecastSeries{City: "Paris", Entries: []ForecastEntry{{Timestamp: 1700000000}}},
		air:      AirQualitySnapshot{AQI: 2, Components: map[string]float64{"pm2_5": 8.1}},
	}
	svc := newTestService(stub)

	snap := svc.Search(context.Background(), "Paris")
	require.Equal(t, "Paris", snap.Location)
	require.NotNil(t, snap.Weather)
	require.Equal(t, 15.2, snap.Weather.Temperature)
	require.NotNil(t, snap.Forecast)
	require.Equal(t, "Paris", snap.Forecast.City)
	require.NotNil(t, snap.AirQuality)
	require.Equal(t, 2, snap.AirQuality.AQI)
	require.False(t, snap.Loading)
	require.Empty(t, snap.LastError)
	require.Equal(t, mustParse("2024-07-01T09:00:00Z"), snap.UpdatedAt)
	require.Equal(t, 1, stub.weatherCalls)
	require.Equal(t, 1, stub.forecastCalls)
	require.Equal(t, 1, stub.airCalls)
	require.Equal(t, 3, stub.lastDays)
	require.Equal(t, 1, snap.Usage.Searches)
	require.Equal(t, 1, snap.Usage.Commits)
}

func TestServiceSearchTransportFailureKeepsPriorData(t *testing.T) {
	stub := &stubBackend{
		weather:  WeatherSnapshot{Temperature: 8.0, Description: "light rain"},
		forecast: ForecastSeries{City: "London"},
		air:      AirQualitySnapshot{AQI: 3},
	}
	svc := newTestService(stub)

	first := svc.Search(context.Background(), "London")
	require.Empty(t, first.LastError)

	stub.weatherErr = errors.New("connection refused")
	snap := svc.Search(context.Background(), "Paris")

	require.Equal(t, "Failed to fetch weather data. Please try again.", snap.LastError)
	require.False(t, snap.Loading)
	require.Equal(t, "London", snap.Location)
	require.NotNil(t, snap.Weather)
	require.Equal(t, 8.0, snap.Weather.Temperature)
	require.Equal(t, "London", snap.Forecast.City)
	require.Equal(t, 3, snap.AirQuality.AQI)
	require.Equal(t, 2, snap.Usage.Searches)
	require.Equal(t, 1, snap.Usage.Commits)
	require.Equal(t, 1, snap.Usage.TransportFailures)
}

func TestServiceSearchFailureWithoutPriorData(t *testing.T) {
	stub := &stubBackend{forecastErr: errors.New("dial tcp: timeout")}
	svc := newTestService(stub)

	snap := svc.Search(context.Background(), "Oslo")
	require.NotEmpty(t, snap.LastError)
	require.Empty(t, snap.Location)
	require.Nil(t, snap.Weather)
	require.Nil(t, snap.Forecast)
	require.Nil(t, snap.AirQuality)
}

func TestServiceSearchSoftErrorIsCommitted(t *testing.T) {
	stub := &stubBackend{
		weather:  WeatherSnapshot{Error: "Failed to get weather data: 404"},
		forecast: ForecastSeries{City: "Atlantis"},
		air:      AirQualitySnapshot{AQI: 1},
	}
	svc := newTestService(stub)

	snap := svc.Search(context.Background(), "Atlantis")
	require.Empty(t, snap.LastError)
	require.False(t, snap.Loading)
	require.Equal(t, "Atlantis", snap.Location)
	require.NotNil(t, snap.Weather)
	require.True(t, snap.Weather.Failed())
	require.Equal(t, "Failed to get weather data: 404", snap.Weather.Error)
	require.Equal(t, 1, snap.Usage.Commits)
}

func TestServiceSearchIgnoresBlankQuery(t *testing.T) {
	stub := &stubBackend{}
	svc := newTestService(stub)

	for _, query := range []string{"", "   ", "\t\n"} {
		snap := svc.Search(context.Background(), query)
		require.Empty(t, snap.Location)
		require.False(t, snap.Loading)
	}
	require.Zero(t, stub.weatherCalls)
	require.Zero(t, stub.forecastCalls)
	require.Zero(t, stub.airCalls)
}

func TestServiceBootstrapSearchesDefaultLocation(t *testing.T) {
	stub := &stubBackend{
		weather:  WeatherSnapshot{Temperature: 11.0},
		forecast: ForecastSeries{City: "London"},
		air:      AirQualitySnapshot{AQI: 2},
	}
	svc := newTestService(stub)

	snap := svc.Bootstrap(context.Background())
	require.Equal(t, "London", snap.Location)
	require.Equal(t, "London", stub.lastLocation)
	require.Equal(t, 1, stub.weatherCalls)
	require.Equal(t, 1, snap.Usage.Searches)
}

func TestServiceStaleSearchDiscarded(t *testing.T) {
	stub := &stubBackend{
		weather:       WeatherSnapshot{Temperature: 20.0},
		forecast:      ForecastSeries{City: "Anywhere"},
		air:           AirQualitySnapshot{AQI: 1},
		blockLocation: "Old Town",
		entered:       make(chan struct{}, 1),
		release:       make(chan struct{}),
	}
	svc := newTestService(stub)

	var (
		wg    sync.WaitGroup
		stale Snapshot
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		stale = svc.Search(context.Background(), "Old Town")
	}()
	<-stub.entered

	fresh := svc.Search(context.Background(), "New Town")
	require.Equal(t, "New Town", fresh.Location)

	close(stub.release)
	wg.Wait()

	require.Equal(t, "New Town", stale.Location)
	require.Equal(t, "New Town", svc.State().Location)
	require.False(t, svc.State().Loading)
	require.Equal(t, 2, svc.State().Usage.Searches)
	require.Equal(t, 1, svc.State().Usage.Commits)
	require.Equal(t, 1, svc.State().Usage.StaleJoins)
}

func TestServiceSetUnits(t *testing.T) {
	stub := &stubBackend{ack: Ack{Message: "Preferences updated."}}
	svc := newTestService(stub)

	ack, err := svc.SetUnits(context.Background(), " Imperial ")
	require.NoError(t, err)
	require.Equal(t, "Preferences updated.", ack.Message)
	require.Equal(t, map[string]any{"units": "imperial"}, stub.lastPrefs)
}

func TestServiceSetUnitsRejectsUnknownSystem(t *testing.T) {
	stub := &stubBackend{}
	svc := newTestService(stub)

	_, err := svc.SetUnits(context.Background(), "kelvin")
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
	require.Zero(t, stub.prefCalls)
}

func TestServiceSaveCurrent(t *testing.T) {
	stub := &stubBackend{
		weather:  WeatherSnapshot{Temperature: 15.2, Description: "clear sky", Humidity: 70, WindSpeed: 2.5},
		forecast: ForecastSeries{City: "London"},
		air:      AirQualitySnapshot{AQI: 2},
		ack:      Ack{Message: "Location 'home' saved."},
	}
	svc := newTestService(stub)
	svc.Search(context.Background(), "London")

	ack, err := svc.SaveCurrent(context.Background(), "home")
	require.NoError(t, err)
	require.Equal(t, "Location 'home' saved.", ack.Message)
	require.Equal(t, "home", stub.lastSaveName)
	require.Equal(t, "London", stub.lastSaveData["location"])
	require.Equal(t, 15.2, stub.lastSaveData["temperature"])
}

func TestServiceSaveCurrentRequiresWeatherData(t *testing.T) {
	stub := &stubBackend{}
	svc := newTestService(stub)

	_, err := svc.SaveCurrent(context.Background(), "home")
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
	require.Zero(t, stub.saveCalls)

	_, err = svc.SaveCurrent(context.Background(), "  ")
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestServiceAgentState(t *testing.T) {
	stub := &stubBackend{state: AgentState{ConversationCount: 4, SavedLocations: []string{"home"}}}
	svc := newTestService(stub)

	state, err := svc.AgentState(context.Background())
	require.NoError(t, err)
	require.Equal(t, 4, state.ConversationCount)

	stub.stateErr = errors.New("boom")
	_, err = svc.AgentState(context.Background())
	require.True(t, apperrors.IsCode(err, apperrors.CodeTransportError))
}

func newTestService(stub *stubBackend) *service {
	return &service{
		cfg:    Config{DefaultLocation: "London", ForecastDays: 3},
		client: stub,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now: func() time.Time {
			return mustParse("2024-07-01T09:00:00Z")
		},
	}
}

type stubBackend struct {
	mu sync.Mutex

	weather     WeatherSnapshot
	weatherErr  error
	forecast    ForecastSeries
	forecastErr error
	air         AirQualitySnapshot
	airErr      error
	ack         Ack
	ackErr      error
	state       AgentState
	stateErr    error

	weatherCalls  int
	forecastCalls int
	airCalls      int
	prefCalls     int
	saveCalls     int

	lastLocation string
	lastDays     int
	lastPrefs    map[string]any
	lastSaveName string
	lastSaveData map[string]any

	blockLocation string
	entered       chan struct{}
	release       chan struct{}
}

func (s *stubBackend) CurrentWeather(ctx context.Context, location string) (WeatherSnapshot, error) {
	s.mu.Lock()
	s.weatherCalls++
	s.lastLocation = location
	blocked := s.blockLocation != "" && s.blockLocation == location
	weather, err := s.weather, s.weatherErr
	s.mu.Unlock()
	if blocked {
		s.entered <- struct{}{}
		<-s.release
	}
	if err != nil {
		return WeatherSnapshot{}, err
	}
	return weather, nil
}

func (s *stubBackend) Forecast(ctx context.Context, location string, days int) (ForecastSeries, error) {
	s.mu.Lock()
	s.forecastCalls++
	s.lastDays = days
	forecast, err := s.forecast, s.forecastErr
	s.mu.Unlock()
	if err != nil {
		return ForecastSeries{}, err
	}
	return forecast, nil
}

func (s *stubBackend) AirQuality(ctx context.Context, location string) (AirQualitySnapshot, error) {
	s.mu.Lock()
	s.airCalls++
	air, err := s.air, s.airErr
	s.mu.Unlock()
	if err != nil {
		return AirQualitySnapshot{}, err
	}
	return air, nil
}

func (s *stubBackend) UpdatePreferences(ctx context.Context, prefs map[string]any) (Ack, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefCalls++
	s.lastPrefs = prefs
	if s.ackErr != nil {
		return Ack{}, s.ackErr
	}
	return s.ack, nil
}

func (s *stubBackend) SaveLocation(ctx context.Context, name string, data map[string]any) (Ack, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveCalls++
	s.lastSaveName = name
	s.lastSaveData = data
	if s.ackErr != nil {
		return Ack{}, s.ackErr
	}
	return s.ack, nil
}

func (s *stubBackend) AgentState(ctx context.Context) (AgentState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stateErr != nil {
		return AgentState{}, s.stateErr
	}
	return s.state, nil
}

func mustParse(value string) time.Time {
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return ts
}
