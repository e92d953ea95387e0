// Package app defines the Application aggregate shared by the API server
// and the command-line tools.
package app

import (
	"log/slog"

	"popmatch.poplocal.org/internal/appconf"
	"popmatch.poplocal.org/internal/clock"
	"popmatch.poplocal.org/internal/match"
)

// Application holds the dependencies every handler needs.
type Application struct {
	Config       appconf.Config
	MatchManager *match.Manager
	Logger       *slog.Logger
	Clock        clock.Clock
}
