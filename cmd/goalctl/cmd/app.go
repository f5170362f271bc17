package cmd

import (
	"github.com/templui/goalpace/internal/app"
	"github.com/templui/goalpace/internal/config"
	"github.com/templui/goalpace/internal/logger"
)

// loadApp reads config, sets up logging and opens a migrated app. Callers close it.
func loadApp() (*app.App, error) {
	cfg := config.Load()
	logger.Init(cfg.IsDevelopment(), cfg.SentryDSN)

	return app.New(cfg)
}
