package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the app.
type Config struct {
	Backend   BackendConfig   `yaml:"backend"`
	Geo       GeoConfig       `yaml:"geo"`
	Dashboard DashboardConfig `yaml:"dashboard"`
}

// BackendConfig points at the WeatherWise agent backend.
type BackendConfig struct {
	BaseURL string `yaml:"baseUrl"`
}

// GeoConfig points at the IP geolocation provider.
type GeoConfig struct {
	BaseURL string `yaml:"baseUrl"`
}

// DashboardConfig controls the dashboard behavior.
type DashboardConfig struct {
	DefaultLocation string `yaml:"defaultLocation"`
	ForecastDays    int    `yaml:"forecastDays"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("WEATHERWISE_BASE_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv("GEOIP_BASE_URL"); v != "" {
		cfg.Geo.BaseURL = v
	}
	if v := os.Getenv("DEFAULT_LOCATION"); v != "" {
		cfg.Dashboard.DefaultLocation = v
	}
	if v := os.Getenv("FORECAST_DAYS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Dashboard.ForecastDays = parsed
		}
	}
}

func defaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL: "http://localhost:8000",
		},
		Geo: GeoConfig{
			BaseURL: "http://ip-api.com/json",
		},
		Dashboard: DashboardConfig{
			DefaultLocation: "London",
			ForecastDays:    3,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Backend.BaseURL) == "" {
		return errors.New("backend.baseUrl cannot be empty")
	}
	if strings.TrimSpace(c.Geo.BaseURL) == "" {
		return errors.New("geo.baseUrl cannot be empty")
	}
	if strings.TrimSpace(c.Dashboard.DefaultLocation) == "" {
		return errors.New("dashboard.defaultLocation cannot be empty")
	}
	if c.Dashboard.ForecastDays <= 0 {
		return errors.New("dashboard.forecastDays must be positive")
	}
	return nil
}
