package restapi

import (
	"fmt"
	"net/http"
)

// CacheControlMiddleware sets the route's HTTP caching policy. Parse
// results are deterministic for a given input and may cache publicly;
// rankings change whenever vendors or events do and must always
// revalidate, which a durationSeconds of 0 expresses.
func CacheControlMiddleware(durationSeconds int, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if durationSeconds > 0 {
			w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", durationSeconds))
		} else {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		}

		next.ServeHTTP(w, r)
	})
}
