package restapi

import (
	"encoding/json"
	"net/http"
)

// healthHandler reports process liveness and database reachability.
func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK

	if api.MatchManager != nil {
		if err := api.MatchManager.DB.DB.PingContext(r.Context()); err != nil {
			status = "database unreachable"
			code = http.StatusServiceUnavailable
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": status})
}
