package restapi

import (
	"net/http"
	"strconv"

	"popmatch.poplocal.org/internal/models"
)

const (
	defaultNearRadiusMiles = 50.0
	maxNearRadiusMiles     = 500.0
	defaultNearMaxCount    = 100
)

// eventsNearHandler returns events close to a point, nearest first. Query
// params: lat, lon (required), radius in miles (default 50, max 500), and
// maxCount (default 100).
func (api *RestAPI) eventsNearHandler(w http.ResponseWriter, r *http.Request) {
	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil || lat < -90 || lat > 90 {
		api.validationErrorResponse(w, r, "lat must be a number between -90 and 90")
		return
	}

	lon, err := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err != nil || lon < -180 || lon > 180 {
		api.validationErrorResponse(w, r, "lon must be a number between -180 and 180")
		return
	}

	radius := defaultNearRadiusMiles
	if rawRadius := r.URL.Query().Get("radius"); rawRadius != "" {
		radius, err = strconv.ParseFloat(rawRadius, 64)
		if err != nil || radius <= 0 {
			api.validationErrorResponse(w, r, "radius must be a positive number")
			return
		}
	}
	if radius > maxNearRadiusMiles {
		radius = maxNearRadiusMiles
	}

	maxCount := defaultNearMaxCount
	if rawMaxCount := r.URL.Query().Get("maxCount"); rawMaxCount != "" {
		maxCount, err = strconv.Atoi(rawMaxCount)
		if err != nil || maxCount <= 0 {
			api.validationErrorResponse(w, r, "maxCount must be a positive integer")
			return
		}
	}

	events := api.MatchManager.EventsNear(lat, lon, radius, maxCount)

	response := models.NewListResponse(events, len(events) == maxCount, api.Clock)
	api.sendResponse(w, r, response)
}
