package bootstrap

import (
	"context"
	"errors"
	"log/slog"

	"github.com/maryamfaizan53/weather-bot-new/internal/infra/config"
	"github.com/maryamfaizan53/weather-bot-new/internal/interface/term"
)

// App encapsulates the interactive dashboard lifecycle.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
	ui     *term.UI
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, ui *term.UI) *App {
	return &App{cfg: cfg, logger: logger.With("component", "bootstrap"), ui: ui}
}

// Run starts the dashboard loop and blocks until the user quits or the
// context is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("dashboard starting",
		"backend", a.cfg.Backend.BaseURL,
		"defaultLocation", a.cfg.Dashboard.DefaultLocation)

	err := a.ui.Run(ctx)
	if errors.Is(err, context.Canceled) {
		a.logger.Info("shutdown signal received")
		return nil
	}
	if err != nil {
		return err
	}
	a.logger.Info("dashboard stopped")
	return nil
}
