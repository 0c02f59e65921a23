//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/maryamfaizan53/weather-bot-new/internal/bootstrap"
	"github.com/maryamfaizan53/weather-bot-new/internal/domain/dashboard"
	"github.com/maryamfaizan53/weather-bot-new/internal/infra/config"
	"github.com/maryamfaizan53/weather-bot-new/internal/infra/geoip"
	"github.com/maryamfaizan53/weather-bot-new/internal/infra/weatherwise"
	"github.com/maryamfaizan53/weather-bot-new/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideDashboardConfig,
		provideBackendClient,
		provideGeoClient,
		provideSearchInput,
		provideUI,
		dashboard.NewService,
		wire.Bind(new(dashboard.BackendClient), new(*weatherwise.Client)),
		wire.Bind(new(dashboard.Locator), new(*geoip.Client)),
		bootstrap.NewApp,
	)
	return nil, nil
}
