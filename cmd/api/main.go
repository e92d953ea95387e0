package main

import (
	"flag"
	"log/slog"
	"os"

	"popmatch.poplocal.org/internal/appconf"
	"popmatch.poplocal.org/internal/match"
)

func main() {
	var cfg appconf.Config
	var matchCfg match.Config
	var apiKeysFlag string
	var envFlag string
	var configPath string

	flag.IntVar(&cfg.Port, "port", 4000, "API server port")
	flag.StringVar(&envFlag, "env", "development", "Environment (development|test|production)")
	flag.StringVar(&apiKeysFlag, "api-keys", "test", "Comma Separated API Keys (test, etc)")
	flag.IntVar(&cfg.RateLimit, "rate-limit", 100, "Requests per second per client for rate limiting")
	flag.StringVar(&matchCfg.DBPath, "db-path", "./popmatch.db", "Path to the SQLite database")
	flag.StringVar(&matchCfg.DataPath, "data-path", "", "Optional JSON seed file with vendors and events")
	flag.StringVar(&matchCfg.NormalizeSchedule, "normalize-schedule", "0 0 * * *", "Cron schedule for the nightly date normalization job (empty disables)")
	flag.StringVar(&configPath, "config", "", "Optional JSON config file; overrides the other flags")
	flag.Parse()

	cfg.ApiKeys = ParseAPIKeys(apiKeysFlag)
	cfg.Env = appconf.EnvFlagToEnvironment(envFlag)

	if configPath != "" {
		fileConfig, err := appconf.LoadFromFile(configPath)
		if err != nil {
			logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
			logger.Error("failed to load config file", "path", configPath, "error", err)
			os.Exit(1)
		}
		cfg = fileConfig.ToConfig()
		matchCfg.DBPath = fileConfig.DBPath
		matchCfg.DataPath = fileConfig.DataPath
		matchCfg.NormalizeSchedule = fileConfig.NormalizeSchedule
	}

	cfg.Verbose = true
	matchCfg.Env = cfg.Env
	matchCfg.Verbose = cfg.Verbose

	coreApp, err := BuildApplication(cfg, matchCfg)
	if err != nil {
		logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
		logger.Error("failed to build application", "error", err)
		os.Exit(1)
	}

	srv, api := CreateServer(coreApp, cfg)

	if err := Run(srv, api, coreApp.Logger); err != nil {
		coreApp.Logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
