package restapi

import (
	"net/http"
	"net/http/pprof"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func registerPprofHandlers(mux *http.ServeMux) { // nolint:unused
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
}

// SetRoutes registers all API endpoints.
func (api *RestAPI) SetRoutes(mux *http.ServeMux) {
	// Health check and metrics - no authentication required
	mux.HandleFunc("GET /healthz", api.healthHandler)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.Handle("GET /api/match/current-time.json", rateLimitAndValidateAPIKey(api, api.currentTimeHandler))
	// Parsing is deterministic for a given input, so responses cache well.
	mux.Handle("GET /api/match/normalize-date.json",
		CacheControlMiddleware(3600, rateLimitAndValidateAPIKey(api, api.normalizeDateHandler)))
	mux.Handle("GET /api/match/events-near.json", rateLimitAndValidateAPIKey(api, api.eventsNearHandler))
	// Rankings change whenever vendors or events do; never cache at the edge.
	mux.Handle("GET /api/match/rank/{id}",
		CacheControlMiddleware(0, rateLimitAndValidateAPIKey(api, api.rankHandler)))
}

// SetupAPIRoutes creates and configures the API router with the global
// middleware chain applied.
func (api *RestAPI) SetupAPIRoutes() http.Handler {
	mux := http.NewServeMux()
	api.SetRoutes(mux)

	var handler http.Handler = mux
	handler = MetricsMiddleware(handler)
	handler = api.RequestLoggingMiddleware(handler)
	handler = securityHeaders(handler)
	handler = RequestIDMiddleware(handler)
	return handler
}
