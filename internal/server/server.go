package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/templui/goalpace/internal/app"
	"github.com/templui/goalpace/internal/routes"
	"github.com/templui/goalpace/internal/scheduler"
)

// Run serves the API and, when enabled, the sweep scheduler until ctx is done.
func Run(ctx context.Context, app *app.App) error {
	cfg := app.Cfg

	var sched *scheduler.Scheduler
	if cfg.SweepEnabled {
		var err error
		sched, err = scheduler.New(app.SweeperService, cfg.SweepSchedule, cfg.SweepTimeout)
		if err != nil {
			return err
		}
		sched.Start()
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.SetupRoutes(app),
		ReadHeaderTimeout: 10 * time.Second,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv, "url", "http://localhost:"+cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		slog.Info("server shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if sched != nil {
		sched.Stop(shutdownCtx)
	}

	err := srv.Shutdown(shutdownCtx)
	if err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
