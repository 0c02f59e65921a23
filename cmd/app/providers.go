package main

import (
	"log/slog"
	"os"

	"github.com/maryamfaizan53/weather-bot-new/internal/domain/dashboard"
	"github.com/maryamfaizan53/weather-bot-new/internal/infra/config"
	"github.com/maryamfaizan53/weather-bot-new/internal/infra/geoip"
	"github.com/maryamfaizan53/weather-bot-new/internal/infra/weatherwise"
	"github.com/maryamfaizan53/weather-bot-new/internal/interface/term"
)

func provideDashboardConfig(cfg *config.Config) dashboard.Config {
	return dashboard.Config{
		DefaultLocation: cfg.Dashboard.DefaultLocation,
		ForecastDays:    cfg.Dashboard.ForecastDays,
	}
}

func provideBackendClient(cfg *config.Config) *weatherwise.Client {
	return weatherwise.NewClient(cfg.Backend.BaseURL)
}

func provideGeoClient(cfg *config.Config) *geoip.Client {
	return geoip.NewClient(cfg.Geo.BaseURL)
}

func provideSearchInput(locator dashboard.Locator, logger *slog.Logger) *term.SearchInput {
	return term.NewSearchInput(locator, logger)
}

func provideUI(svc dashboard.Service, search *term.SearchInput, logger *slog.Logger) *term.UI {
	return term.NewUI(svc, search, os.Stdin, os.Stdout, logger)
}
