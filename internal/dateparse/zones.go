package dateparse

import (
	"strings"
	"sync"
	"time"
)

// zoneAbbreviations maps the timezone abbreviations that appear in event
// listings to IANA zone names. Lookups outside this table fall back to
// Eastern; absence of an abbreviation is a defined default, not an error.
var zoneAbbreviations = map[string]string{
	"EDT": "America/New_York",
	"EST": "America/New_York",
	"CDT": "America/Chicago",
	"CST": "America/Chicago",
	"MDT": "America/Denver",
	"MST": "America/Denver",
	"PDT": "America/Los_Angeles",
	"PST": "America/Los_Angeles",
}

const defaultZoneName = "America/New_York"

var (
	zoneMu    sync.Mutex
	zoneCache = map[string]*time.Location{}
)

// loadZone returns the IANA location for name, caching lookups. If the zone
// database cannot supply the location, UTC is returned so parsing still
// yields a usable instant.
func loadZone(name string) *time.Location {
	zoneMu.Lock()
	defer zoneMu.Unlock()

	if loc, ok := zoneCache[name]; ok {
		return loc
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		loc = time.UTC
	}
	zoneCache[name] = loc
	return loc
}

// ZoneForAbbreviation resolves a 3-4 letter zone abbreviation (e.g. "EDT")
// to its IANA location, defaulting to Eastern for unknown or empty input.
func ZoneForAbbreviation(abbr string) *time.Location {
	name, ok := zoneAbbreviations[strings.ToUpper(strings.TrimSpace(abbr))]
	if !ok {
		name = defaultZoneName
	}
	return loadZone(name)
}

func easternZone() *time.Location {
	return loadZone(defaultZoneName)
}

func centralZone() *time.Location {
	return loadZone("America/Chicago")
}
