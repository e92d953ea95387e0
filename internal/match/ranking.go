package match

import (
	"context"
	"database/sql"
	"errors"
	"runtime"
	"sort"
	"sync"

	"popmatch.poplocal.org/internal/models"
)

// RankEventsForVendor returns the vendor's events ranked by compatibility,
// best first. Results are cached per vendor; forceRefresh recomputes and
// overwrites the cache. A limit <= 0 returns the full ranking.
func (manager *Manager) RankEventsForVendor(ctx context.Context, vendorID string, limit int, forceRefresh bool) ([]models.RankedEvent, error) {
	vendor, err := manager.GetVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	if !forceRefresh {
		cached, err := manager.DB.Queries.GetRanking(ctx, vendorID)
		if err == nil {
			rankingCacheHits.Inc()
			return limitRanking(cached.Ranked, limit), nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
	}

	ranked, err := manager.computeRanking(ctx, vendor)
	if err != nil {
		return nil, err
	}

	if err := manager.DB.Queries.UpsertRanking(ctx, vendorID, ranked, manager.clk.Now()); err != nil {
		return nil, err
	}
	rankingsComputed.Inc()

	return limitRanking(ranked, limit), nil
}

// ScoreEventForVendor computes the breakdown for a single vendor/event pair,
// bypassing the ranking cache.
func (manager *Manager) ScoreEventForVendor(ctx context.Context, vendorID, eventID string) (*models.RankedEvent, error) {
	vendor, err := manager.GetVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	event, err := manager.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	coords, err := manager.resolveEventCoordinates(ctx, event)
	if err != nil {
		return nil, err
	}

	breakdown := manager.scorer.Score(vendor, event, coords)
	return &models.RankedEvent{
		Event:     event,
		Score:     breakdown.Total,
		Breakdown: breakdown,
	}, nil
}

// computeRanking scores the vendor against every upcoming event in parallel.
// Coordinate resolution happens up front on one goroutine so the memoizing
// geocoder is hit once per distinct city/state.
func (manager *Manager) computeRanking(ctx context.Context, vendor *models.Vendor) ([]models.RankedEvent, error) {
	events, err := manager.DB.Queries.ListEventsEndingAfter(ctx, manager.clk.Now())
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return []models.RankedEvent{}, nil
	}

	coords := make([]models.Coordinates, len(events))
	for i, event := range events {
		c, err := manager.resolveEventCoordinates(ctx, event)
		if err != nil {
			return nil, err
		}
		coords[i] = c
	}

	ranked := make([]models.RankedEvent, len(events))

	workers := runtime.NumCPU()
	chunkSize := (len(events) + workers - 1) / workers
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if start >= len(events) {
			break
		}
		if end > len(events) {
			end = len(events)
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				breakdown := manager.scorer.Score(vendor, events[i], coords[i])
				ranked[i] = models.RankedEvent{
					Event:     events[i],
					Score:     breakdown.Total,
					Breakdown: breakdown,
				}
			}
		}(start, end)
	}
	wg.Wait()

	// Ties break on event ID so repeated computations return a stable order.
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Event.ID < ranked[j].Event.ID
	})

	return ranked, nil
}

func limitRanking(ranked []models.RankedEvent, limit int) []models.RankedEvent {
	if limit <= 0 || limit >= len(ranked) {
		return ranked
	}
	return ranked[:limit]
}
