package restapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"popmatch.poplocal.org/internal/app"
	"popmatch.poplocal.org/internal/appconf"
	"popmatch.poplocal.org/internal/clock"
	"popmatch.poplocal.org/internal/geocode"
	"popmatch.poplocal.org/internal/logging"
	"popmatch.poplocal.org/internal/match"
	"popmatch.poplocal.org/internal/models"
)

func testAppClock() clock.Clock {
	return clock.FixedClock{Time: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func createTestApi(t *testing.T) *RestAPI {
	t.Helper()

	clk := testAppClock()
	manager, err := match.InitManager(match.Config{
		DBPath: ":memory:",
		Env:    appconf.Test,
	}, geocode.NewDefaultStaticResolver(), clk)
	require.NoError(t, err)

	testApp := &app.Application{
		Config: appconf.Config{
			Env:       appconf.Test,
			ApiKeys:   []string{"test"},
			RateLimit: 1000,
		},
		MatchManager: manager,
		Logger:       logging.NewStructuredLogger(io.Discard, slog.LevelError),
		Clock:        clk,
	}

	api := NewRestAPI(testApp)
	t.Cleanup(api.Shutdown)
	return api
}

func seedTestVendor(t *testing.T, api *RestAPI, id string) *models.Vendor {
	t.Helper()
	vendor := &models.Vendor{
		ID:                 id,
		BusinessName:       "Brooklyn Candle Studio",
		Categories:         []string{"Home Goods"},
		Coordinates:        models.Coordinates{Lat: 40.6782, Lng: -73.9442},
		EventPreference:    []string{"Market"},
		Budget:             models.Budget{MaxVendorFee: 200},
		Demographic:        []string{"Families"},
		PreferredEventSize: models.SizeRange{Min: 100, Max: 500},
		Schedule:           models.Schedule{PreferredDays: []string{"Saturday"}},
		Description:        "Hand-poured soy candles",
	}
	require.NoError(t, api.MatchManager.UpsertVendor(t.Context(), vendor))
	return vendor
}

func seedTestEvent(t *testing.T, api *RestAPI, id, city, state string) *models.Event {
	t.Helper()
	start := time.Date(2025, 9, 13, 10, 0, 0, 0, time.UTC)
	end := time.Date(2025, 9, 13, 17, 0, 0, 0, time.UTC)
	event := &models.Event{
		ID:           id,
		Name:         "Fall Market " + id,
		Type:         []string{"Market"},
		VendorFee:    100,
		Demographics: []string{"Families"},
		Categories:   []string{"Home Goods"},
		Location:     models.Location{City: city, State: state},
		StartDate:    &start,
		EndDate:      &end,
		Headcount:    300,
		Description:  "A fall market with local makers",
	}
	require.NoError(t, api.MatchManager.UpsertEvent(t.Context(), event))
	return event
}

// seedEventModelForCache builds an event for direct Queries writes, used to
// test ranking-cache staleness without the manager's invalidation hooks.
func seedEventModelForCache(id string) *models.Event {
	return &models.Event{
		ID:           id,
		Name:         "Fall Market " + id,
		Type:         []string{"Market"},
		VendorFee:    100,
		Demographics: []string{"Families"},
		Categories:   []string{"Home Goods"},
		Location:     models.Location{City: "Brooklyn", State: "NY"},
		Headcount:    300,
		Description:  "A fall market with local makers",
	}
}

// serveApiAndRetrieveEndpoint spins up the full middleware stack, performs
// one GET, and decodes the envelope.
func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, models.ResponseModel) {
	t.Helper()

	server := httptest.NewServer(api.SetupAPIRoutes())
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope models.ResponseModel
	if len(body) > 0 && body[0] == '{' {
		require.NoError(t, json.Unmarshal(body, &envelope))
	}
	return resp, envelope
}
