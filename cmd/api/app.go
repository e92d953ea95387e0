package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"popmatch.poplocal.org/internal/app"
	"popmatch.poplocal.org/internal/appconf"
	"popmatch.poplocal.org/internal/clock"
	"popmatch.poplocal.org/internal/geocode"
	"popmatch.poplocal.org/internal/logging"
	"popmatch.poplocal.org/internal/match"
	"popmatch.poplocal.org/internal/restapi"
)

// ParseAPIKeys splits a comma-separated string of API keys and trims whitespace from each key.
// Returns an empty slice if the input is empty.
func ParseAPIKeys(apiKeysFlag string) []string {
	if apiKeysFlag == "" {
		return []string{}
	}

	keys := strings.Split(apiKeysFlag, ",")
	for i := range keys {
		keys[i] = strings.TrimSpace(keys[i])
	}
	return keys
}

// BuildApplication creates and initializes the Application with all
// dependencies: logger, clock, geocoder, and the match manager. Returns an
// error if manager initialization fails.
func BuildApplication(cfg appconf.Config, matchCfg match.Config) (*app.Application, error) {
	logger := logging.NewStructuredLogger(os.Stdout, slog.LevelInfo)
	clk := clock.SystemClock{}

	manager, err := match.InitManager(matchCfg, geocode.NewDefaultStaticResolver(), clk)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize match manager: %w", err)
	}
	manager.PrintStatistics()

	coreApp := &app.Application{
		Config:       cfg,
		MatchManager: manager,
		Logger:       logger,
		Clock:        clk,
	}

	return coreApp, nil
}

// CreateServer creates and configures the HTTP server with routes and the
// full middleware chain applied.
func CreateServer(coreApp *app.Application, cfg appconf.Config) (*http.Server, *restapi.RestAPI) {
	api := restapi.NewRestAPI(coreApp)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.SetupAPIRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(coreApp.Logger.Handler(), slog.LevelError),
	}

	return srv, api
}

// Run manages the server lifecycle with graceful shutdown. It starts the
// server, waits for SIGINT/SIGTERM, then drains with a 30-second timeout
// before shutting down the API (rate limiter, cron, database).
func Run(srv *http.Server, api *restapi.RestAPI, logger *slog.Logger) error {
	logger.Info("starting server", "addr", srv.Addr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErrors := make(chan error, 1)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
		logger.Info("shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	if api != nil {
		api.Shutdown()
	}

	logger.Info("server exited")
	return nil
}
