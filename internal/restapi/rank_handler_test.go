package restapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeList(t *testing.T, data interface{}) []map[string]interface{} {
	t.Helper()
	container, ok := data.(map[string]interface{})
	require.True(t, ok, "data should be an object")
	rawList, ok := container["list"].([]interface{})
	require.True(t, ok, "data.list should be an array")

	list := make([]map[string]interface{}, len(rawList))
	for i, item := range rawList {
		entry, ok := item.(map[string]interface{})
		require.True(t, ok)
		list[i] = entry
	}
	return list
}

func TestRankHandler(t *testing.T) {
	api := createTestApi(t)
	seedTestVendor(t, api, "vendor-1")
	seedTestEvent(t, api, "brooklyn", "Brooklyn", "NY")
	seedTestEvent(t, api, "chicago", "Chicago", "IL")

	resp, envelope := serveApiAndRetrieveEndpoint(t, api, "/api/match/rank/vendor-1?key=test")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 200, envelope.Code)
	assert.Equal(t, 2, envelope.Version)

	list := decodeList(t, envelope.Data)
	require.Len(t, list, 2)

	first := list[0]["event"].(map[string]interface{})
	assert.Equal(t, "brooklyn", first["id"], "the nearby event should rank first")
	assert.Greater(t, list[0]["score"].(float64), list[1]["score"].(float64))

	breakdown := list[0]["scoreBreakdown"].(map[string]interface{})
	assert.InDelta(t, list[0]["score"].(float64), breakdown["total"].(float64), 0.0001)
}

func TestRankHandlerLimit(t *testing.T) {
	api := createTestApi(t)
	seedTestVendor(t, api, "vendor-1")
	seedTestEvent(t, api, "a", "Brooklyn", "NY")
	seedTestEvent(t, api, "b", "Philadelphia", "PA")
	seedTestEvent(t, api, "c", "Boston", "MA")

	resp, envelope := serveApiAndRetrieveEndpoint(t, api, "/api/match/rank/vendor-1?key=test&limit=2")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	list := decodeList(t, envelope.Data)
	assert.Len(t, list, 2)

	container := envelope.Data.(map[string]interface{})
	assert.Equal(t, true, container["limitExceeded"])
}

func TestRankHandlerInvalidLimit(t *testing.T) {
	api := createTestApi(t)
	seedTestVendor(t, api, "vendor-1")

	resp, envelope := serveApiAndRetrieveEndpoint(t, api, "/api/match/rank/vendor-1?key=test&limit=banana")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, http.StatusBadRequest, envelope.Code)
}

func TestRankHandlerWithoutVendorIDWritesNull(t *testing.T) {
	api := createTestApi(t)

	// Routing never matches an empty {id} segment, so invoke the handler
	// directly the way a misconfigured mount would.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/match/rank/", nil)
	api.rankHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))
}

func TestRankHandlerUnknownVendor(t *testing.T) {
	api := createTestApi(t)

	resp, envelope := serveApiAndRetrieveEndpoint(t, api, "/api/match/rank/missing?key=test")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, http.StatusNotFound, envelope.Code)
}

func TestRankHandlerScoresSingleEvent(t *testing.T) {
	api := createTestApi(t)
	seedTestVendor(t, api, "vendor-1")
	seedTestEvent(t, api, "brooklyn", "Brooklyn", "NY")

	resp, envelope := serveApiAndRetrieveEndpoint(t, api, "/api/match/rank/vendor-1?key=test&eventId=brooklyn")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	container := envelope.Data.(map[string]interface{})
	entry := container["entry"].(map[string]interface{})
	event := entry["event"].(map[string]interface{})
	assert.Equal(t, "brooklyn", event["id"])
	assert.Greater(t, entry["score"].(float64), 0.0)
}

func TestRankHandlerForceRefresh(t *testing.T) {
	api := createTestApi(t)
	seedTestVendor(t, api, "vendor-1")
	seedTestEvent(t, api, "a", "Brooklyn", "NY")

	_, envelope := serveApiAndRetrieveEndpoint(t, api, "/api/match/rank/vendor-1?key=test")
	assert.Len(t, decodeList(t, envelope.Data), 1)

	// Write an event behind the cache's back; only forceRefresh sees it.
	require.NoError(t, api.MatchManager.DB.Queries.UpsertEvent(t.Context(), seedEventModelForCache("b"), 1000))

	_, envelope = serveApiAndRetrieveEndpoint(t, api, "/api/match/rank/vendor-1?key=test")
	assert.Len(t, decodeList(t, envelope.Data), 1)

	_, envelope = serveApiAndRetrieveEndpoint(t, api, "/api/match/rank/vendor-1?key=test&forceRefresh=true")
	assert.Len(t, decodeList(t, envelope.Data), 2)
}

func TestRankHandlerRequiresAPIKey(t *testing.T) {
	api := createTestApi(t)
	seedTestVendor(t, api, "vendor-1")

	resp, envelope := serveApiAndRetrieveEndpoint(t, api, "/api/match/rank/vendor-1")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, envelope.Code)
}

func TestRankHandlerResponseIsValidJSON(t *testing.T) {
	api := createTestApi(t)
	seedTestVendor(t, api, "vendor-1")

	resp, envelope := serveApiAndRetrieveEndpoint(t, api, "/api/match/rank/vendor-1?key=test")
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.NotZero(t, envelope.CurrentTime)

	raw, err := json.Marshal(envelope)
	require.NoError(t, err)
	assert.NotEmpty(t, raw)
}
