// Package match orchestrates the matching engine: it owns the database, the
// date parser, the compatibility scorer, the geocoder, and the spatial index
// over event locations, and schedules the nightly date-normalization job.
package match

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/tidwall/rtree"

	"popmatch.poplocal.org/internal/clock"
	"popmatch.poplocal.org/internal/dateparse"
	"popmatch.poplocal.org/internal/geocode"
	"popmatch.poplocal.org/internal/matchdb"
	"popmatch.poplocal.org/internal/models"
	"popmatch.poplocal.org/internal/scoring"
	"popmatch.poplocal.org/internal/textsim"
)

var (
	ErrVendorNotFound = errors.New("vendor not found")
	ErrEventNotFound  = errors.New("event not found")
)

// Manager manages vendors, events, and rankings and provides methods to
// access them.
type Manager struct {
	DB *matchdb.Client

	scorer   *scoring.Scorer
	geocoder geocode.Resolver
	clk      clock.Clock

	eventIndexMutex sync.RWMutex
	eventIndex      *rtree.RTree

	cron         *cron.Cron
	config       Config
	shutdownOnce sync.Once
}

// InitManager initializes the Manager: it opens the database, loads any seed
// data, builds the event spatial index, and starts the nightly
// date-normalization job.
func InitManager(config Config, geocoder geocode.Resolver, clk clock.Clock) (*Manager, error) {
	db, err := matchdb.NewClient(matchdb.NewConfig(config.DBPath, config.Env, config.Verbose))
	if err != nil {
		return nil, fmt.Errorf("error opening match database: %w", err)
	}

	manager := &Manager{
		DB:       db,
		scorer:   scoring.NewScorer(textsim.Similarity),
		geocoder: geocode.NewCachingResolver(geocoder),
		clk:      clk,
		config:   config,
	}

	ctx := context.Background()

	if config.DataPath != "" {
		if err := manager.ImportFromFile(ctx, config.DataPath); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("error loading seed data: %w", err)
		}
	}

	if err := manager.RebuildEventIndex(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error building event spatial index: %w", err)
	}

	if config.NormalizeSchedule != "" {
		c := cron.New()
		_, err := c.AddFunc(config.NormalizeSchedule, func() {
			if _, err := manager.NormalizeEventDates(context.Background()); err != nil {
				slog.Error("scheduled date normalization failed", slog.Any("error", err))
			}
		})
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("invalid normalization schedule %q: %w", config.NormalizeSchedule, err)
		}
		c.Start()
		manager.cron = c
	}

	return manager, nil
}

// Shutdown gracefully shuts down the manager: it stops the cron runner,
// waits for an in-flight normalization to finish, and closes the database.
func (manager *Manager) Shutdown() {
	manager.shutdownOnce.Do(func() {
		if manager.cron != nil {
			<-manager.cron.Stop().Done()
		}
		if manager.DB != nil {
			_ = manager.DB.Close()
		}
	})
}

// Parser returns a date parser whose reference year is the clock's current
// year, read at call time so a long-running server keeps resolving
// year-less listings correctly across a year rollover.
func (manager *Manager) Parser() *dateparse.Parser {
	return dateparse.NewParser(manager.clk.Now().Year())
}

// GetVendor returns the vendor with the given ID.
func (manager *Manager) GetVendor(ctx context.Context, id string) (*models.Vendor, error) {
	vendor, err := manager.DB.Queries.GetVendor(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVendorNotFound
	}
	return vendor, err
}

// GetEvent returns the event with the given ID.
func (manager *Manager) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	event, err := manager.DB.Queries.GetEvent(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	return event, err
}

// UpsertVendor stores a vendor profile and invalidates its cached ranking.
func (manager *Manager) UpsertVendor(ctx context.Context, vendor *models.Vendor) error {
	if vendor.ID == "" {
		return errors.New("vendor ID is required")
	}
	if err := manager.DB.Queries.UpsertVendor(ctx, vendor, manager.clk.Now().UnixMilli()); err != nil {
		return err
	}
	manager.DB.DumpVendor(ctx, vendor.ID)
	return manager.DB.Queries.DeleteRanking(ctx, vendor.ID)
}

// UpsertEvent stores an event listing. The raw date string is normalized
// inline when no resolved range was supplied, the spatial index is rebuilt,
// and all cached rankings are invalidated since every vendor's ranking may
// change.
func (manager *Manager) UpsertEvent(ctx context.Context, event *models.Event) error {
	if event.ID == "" {
		return errors.New("event ID is required")
	}

	if !event.HasDateRange() && event.RawDate != "" {
		parsed, rule := manager.Parser().ParseWithRule(event.RawDate)
		recordParseOutcome(rule)
		if event.StartDate == nil {
			event.StartDate = parsed.Start
		}
		if event.EndDate == nil {
			event.EndDate = parsed.End
		}
	}

	if err := manager.DB.Queries.UpsertEvent(ctx, event, manager.clk.Now().UnixMilli()); err != nil {
		return err
	}
	manager.DB.DumpEvent(ctx, event.ID)
	if err := manager.DB.Queries.DeleteAllRankings(ctx); err != nil {
		return err
	}
	return manager.RebuildEventIndex(ctx)
}

// DeleteEvent removes an event, invalidates every cached ranking, and
// rebuilds the spatial index.
func (manager *Manager) DeleteEvent(ctx context.Context, id string) error {
	if _, err := manager.GetEvent(ctx, id); err != nil {
		return err
	}
	if err := manager.DB.Queries.DeleteEvent(ctx, id); err != nil {
		return err
	}
	if err := manager.DB.Queries.DeleteAllRankings(ctx); err != nil {
		return err
	}
	return manager.RebuildEventIndex(ctx)
}

// resolveEventCoordinates maps an event's city/state to coordinates. An
// unknown location is not an error; the zero value disables the location
// factor.
func (manager *Manager) resolveEventCoordinates(ctx context.Context, event *models.Event) (models.Coordinates, error) {
	if event.Location.City == "" && event.Location.State == "" {
		return models.Coordinates{}, nil
	}
	coords, ok, err := manager.geocoder.ResolveCoordinates(ctx, event.Location.City, event.Location.State)
	if err != nil {
		return models.Coordinates{}, err
	}
	if !ok {
		return models.Coordinates{}, nil
	}
	return coords, nil
}

// PrintStatistics logs table counts at startup.
func (manager *Manager) PrintStatistics() {
	counts, err := manager.DB.TableCounts()
	if err != nil {
		slog.Warn("could not read table counts", slog.Any("error", err))
		return
	}
	slog.Info("match database ready",
		slog.Int("vendors", counts["vendors"]),
		slog.Int("events", counts["events"]),
		slog.Int("cached_rankings", counts["rankings"]))
}
