// Package geocode resolves event locations (city/state pairs) to
// coordinates. The scoring pipeline treats resolution as a pluggable
// collaborator so tests and offline runs never reach a network service.
package geocode

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"popmatch.poplocal.org/internal/models"
)

// Resolver turns a city/state pair into coordinates. Implementations return
// ok=false when the location is unknown; that is not an error, the caller
// scores the location factor as zero.
type Resolver interface {
	ResolveCoordinates(ctx context.Context, city, state string) (coords models.Coordinates, ok bool, err error)
}

// locationKey normalizes a city/state pair to a lookup key.
func locationKey(city, state string) string {
	city = strings.ToLower(strings.TrimSpace(city))
	state = strings.ToUpper(strings.TrimSpace(state))
	return fmt.Sprintf("%s, %s", city, state)
}

// StaticResolver resolves against a fixed in-memory table. It backs tests
// and the default offline deployment.
type StaticResolver struct {
	table map[string]models.Coordinates
}

// NewStaticResolver builds a resolver over the given city/state table. Keys
// are normalized the same way lookups are, so callers can pass
// human-readable entries.
func NewStaticResolver(entries map[string]models.Coordinates) *StaticResolver {
	table := make(map[string]models.Coordinates, len(entries))
	for key, coords := range entries {
		parts := strings.SplitN(key, ",", 2)
		if len(parts) != 2 {
			continue
		}
		table[locationKey(parts[0], parts[1])] = coords
	}
	return &StaticResolver{table: table}
}

// NewDefaultStaticResolver returns a resolver seeded with major US markets.
func NewDefaultStaticResolver() *StaticResolver {
	return NewStaticResolver(map[string]models.Coordinates{
		"New York, NY":      {Lat: 40.7128, Lng: -74.0060},
		"Brooklyn, NY":      {Lat: 40.6782, Lng: -73.9442},
		"Philadelphia, PA":  {Lat: 39.9526, Lng: -75.1652},
		"Boston, MA":        {Lat: 42.3601, Lng: -71.0589},
		"Washington, DC":    {Lat: 38.9072, Lng: -77.0369},
		"Chicago, IL":       {Lat: 41.8781, Lng: -87.6298},
		"Atlanta, GA":       {Lat: 33.7490, Lng: -84.3880},
		"Miami, FL":         {Lat: 25.7617, Lng: -80.1918},
		"Austin, TX":        {Lat: 30.2672, Lng: -97.7431},
		"Dallas, TX":        {Lat: 32.7767, Lng: -96.7970},
		"Houston, TX":       {Lat: 29.7604, Lng: -95.3698},
		"Nashville, TN":     {Lat: 36.1627, Lng: -86.7816},
		"Denver, CO":        {Lat: 39.7392, Lng: -104.9903},
		"Phoenix, AZ":       {Lat: 33.4484, Lng: -112.0740},
		"Seattle, WA":       {Lat: 47.6062, Lng: -122.3321},
		"Portland, OR":      {Lat: 45.5152, Lng: -122.6784},
		"San Francisco, CA": {Lat: 37.7749, Lng: -122.4194},
		"Los Angeles, CA":   {Lat: 34.0522, Lng: -118.2437},
		"San Diego, CA":     {Lat: 32.7157, Lng: -117.1611},
		"Detroit, MI":       {Lat: 42.3314, Lng: -83.0458},
		"Minneapolis, MN":   {Lat: 44.9778, Lng: -93.2650},
		"New Orleans, LA":   {Lat: 29.9511, Lng: -90.0715},
		"Charlotte, NC":     {Lat: 35.2271, Lng: -80.8431},
		"Pittsburgh, PA":    {Lat: 40.4406, Lng: -79.9959},
	})
}

func (r *StaticResolver) ResolveCoordinates(_ context.Context, city, state string) (models.Coordinates, bool, error) {
	coords, ok := r.table[locationKey(city, state)]
	return coords, ok, nil
}

// cacheEntry records a resolution outcome, including misses, so a repeated
// unknown location never re-queries the inner resolver.
type cacheEntry struct {
	coords models.Coordinates
	ok     bool
}

// CachingResolver memoizes another resolver. Errors are not cached.
type CachingResolver struct {
	inner Resolver

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

func NewCachingResolver(inner Resolver) *CachingResolver {
	return &CachingResolver{
		inner: inner,
		cache: make(map[string]cacheEntry),
	}
}

func (r *CachingResolver) ResolveCoordinates(ctx context.Context, city, state string) (models.Coordinates, bool, error) {
	key := locationKey(city, state)

	r.mu.RLock()
	entry, hit := r.cache[key]
	r.mu.RUnlock()
	if hit {
		return entry.coords, entry.ok, nil
	}

	coords, ok, err := r.inner.ResolveCoordinates(ctx, city, state)
	if err != nil {
		return models.Coordinates{}, false, err
	}

	r.mu.Lock()
	r.cache[key] = cacheEntry{coords: coords, ok: ok}
	r.mu.Unlock()

	return coords, ok, nil
}

// Size returns the number of memoized locations.
func (r *CachingResolver) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.cache)
}
