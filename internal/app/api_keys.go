package app

import "net/http"

// IsInvalidAPIKey reports whether the given key is not one of the configured
// API keys. Comparison is exact; keys are never trimmed or case-folded.
func (app *Application) IsInvalidAPIKey(key string) bool {
	if key == "" {
		return true
	}
	for _, configured := range app.Config.ApiKeys {
		if key == configured {
			return false
		}
	}
	return true
}

// RequestHasInvalidAPIKey checks the request's "key" query parameter.
func (app *Application) RequestHasInvalidAPIKey(r *http.Request) bool {
	return app.IsInvalidAPIKey(r.URL.Query().Get("key"))
}
