package match

import (
	"context"
	"math"
	"sort"

	"github.com/tidwall/rtree"

	"popmatch.poplocal.org/internal/models"
	"popmatch.poplocal.org/internal/scoring"
)

// indexedEvent is what the R-tree stores: the event plus its resolved
// coordinates, so proximity queries never re-geocode.
type indexedEvent struct {
	event  *models.Event
	coords models.Coordinates
}

// RebuildEventIndex reconstructs the spatial index from all events whose
// locations resolve to coordinates.
func (manager *Manager) RebuildEventIndex(ctx context.Context) error {
	events, err := manager.DB.Queries.ListEvents(ctx)
	if err != nil {
		return err
	}

	tree := &rtree.RTree{}
	for _, event := range events {
		coords, err := manager.resolveEventCoordinates(ctx, event)
		if err != nil {
			return err
		}
		if coords.IsZero() {
			continue
		}
		// For points, min and max are the same [lat, lng]
		tree.Insert(
			[2]float64{coords.Lat, coords.Lng},
			[2]float64{coords.Lat, coords.Lng},
			indexedEvent{event: event, coords: coords},
		)
	}

	manager.eventIndexMutex.Lock()
	manager.eventIndex = tree
	manager.eventIndexMutex.Unlock()
	return nil
}

type eventWithDistance struct {
	event    *models.Event
	distance float64
}

// EventsNear returns events within radiusMiles of the given point, nearest
// first, capped at maxCount when positive. The R-tree narrows candidates to
// a bounding box; exact distances filter and order the result.
func (manager *Manager) EventsNear(lat, lng, radiusMiles float64, maxCount int) []*models.Event {
	manager.eventIndexMutex.RLock()
	tree := manager.eventIndex
	manager.eventIndexMutex.RUnlock()

	if tree == nil || radiusMiles <= 0 {
		return []*models.Event{}
	}

	minBound, maxBound := boundsAround(lat, lng, radiusMiles)

	var candidates []eventWithDistance
	tree.Search(minBound, maxBound, func(min, max [2]float64, data interface{}) bool {
		if ie, ok := data.(indexedEvent); ok {
			distance := scoring.HaversineMiles(lat, lng, ie.coords.Lat, ie.coords.Lng)
			if distance <= radiusMiles {
				candidates = append(candidates, eventWithDistance{ie.event, distance})
			}
		}
		return true
	})

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	events := make([]*models.Event, 0, len(candidates))
	for i, candidate := range candidates {
		if maxCount > 0 && i >= maxCount {
			break
		}
		events = append(events, candidate.event)
	}
	return events
}

const milesPerDegreeLat = 69.0

// boundsAround computes a lat/lng bounding box covering a radius in miles.
// Longitude degrees shrink with latitude; near the poles the box widens to
// the full longitude range rather than dividing by ~zero.
func boundsAround(lat, lng, radiusMiles float64) (min, max [2]float64) {
	latDelta := radiusMiles / milesPerDegreeLat

	lngDelta := 180.0
	if cosLat := math.Cos(lat * math.Pi / 180); cosLat > 0.01 {
		lngDelta = radiusMiles / (milesPerDegreeLat * cosLat)
	}

	min = [2]float64{lat - latDelta, lng - lngDelta}
	max = [2]float64{lat + latDelta, lng + lngDelta}
	return min, max
}
