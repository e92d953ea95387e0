package restapi

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCurrentTimeHandler(t *testing.T) {
	api := createTestApi(t)

	resp, envelope := serveApiAndRetrieveEndpoint(t, api, "/api/match/current-time.json?key=test")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 200, envelope.Code)
	assert.Equal(t, "OK", envelope.Text)
	assert.Equal(t, 2, envelope.Version)

	expected := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC).UnixMilli()
	assert.Equal(t, expected, envelope.CurrentTime)

	container := envelope.Data.(map[string]interface{})
	entry := container["entry"].(map[string]interface{})
	assert.Equal(t, float64(expected), entry["time"])
	assert.NotEmpty(t, entry["readableTime"])
}

func TestCurrentTimeHandlerRequiresKey(t *testing.T) {
	api := createTestApi(t)

	resp, _ := serveApiAndRetrieveEndpoint(t, api, "/api/match/current-time.json")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHealthzNeedsNoKey(t *testing.T) {
	api := createTestApi(t)

	resp, _ := serveApiAndRetrieveEndpoint(t, api, "/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMetricsEndpointNeedsNoKey(t *testing.T) {
	api := createTestApi(t)

	resp, _ := serveApiAndRetrieveEndpoint(t, api, "/metrics")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSecurityHeadersApplied(t *testing.T) {
	api := createTestApi(t)

	resp, _ := serveApiAndRetrieveEndpoint(t, api, "/healthz")
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}
