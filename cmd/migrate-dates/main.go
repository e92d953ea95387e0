// Command migrate-dates runs one date-normalization sweep over the events
// table and exits. It is the on-demand version of the API server's nightly
// job, for backfilling after bulk imports.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"popmatch.poplocal.org/internal/appconf"
	"popmatch.poplocal.org/internal/clock"
	"popmatch.poplocal.org/internal/geocode"
	"popmatch.poplocal.org/internal/logging"
	"popmatch.poplocal.org/internal/match"
)

func main() {
	var dbPath string
	var dataPath string
	var envFlag string

	flag.StringVar(&dbPath, "db-path", "./popmatch.db", "Path to the SQLite database")
	flag.StringVar(&dataPath, "data-path", "", "Optional JSON seed file imported before the sweep")
	flag.StringVar(&envFlag, "env", "development", "Environment (development|test|production)")
	flag.Parse()

	logger := logging.NewStructuredLogger(os.Stdout, slog.LevelInfo)
	slog.SetDefault(logger)

	manager, err := match.InitManager(match.Config{
		DBPath:   dbPath,
		DataPath: dataPath,
		Env:      appconf.EnvFlagToEnvironment(envFlag),
	}, geocode.NewDefaultStaticResolver(), clock.SystemClock{})
	if err != nil {
		logger.Error("failed to initialize match manager", "error", err)
		os.Exit(1)
	}
	defer manager.Shutdown()

	result, err := manager.NormalizeEventDates(context.Background())
	if err != nil {
		logger.Error("date normalization failed", "error", err)
		os.Exit(1)
	}

	logger.Info("done",
		"scanned", result.Scanned,
		"normalized", result.Normalized,
		"unparsed", result.Unparsed)
}
