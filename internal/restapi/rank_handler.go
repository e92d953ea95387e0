package restapi

import (
	"errors"
	"net/http"
	"strconv"

	"popmatch.poplocal.org/internal/match"
	"popmatch.poplocal.org/internal/models"
)

const (
	defaultRankLimit = 20
	maxRankLimit     = 250
)

// rankHandler ranks all events for the vendor in the path, best match
// first. Query params: limit (default 20, max 250), forceRefresh (bypass
// the ranking cache), eventId (score that single event instead).
func (api *RestAPI) rankHandler(w http.ResponseWriter, r *http.Request) {
	vendorID := r.PathValue("id")
	if vendorID == "" {
		api.sendNull(w, r)
		return
	}

	if eventID := r.URL.Query().Get("eventId"); eventID != "" {
		api.scorePair(w, r, vendorID, eventID)
		return
	}

	limit := defaultRankLimit
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed <= 0 {
			api.validationErrorResponse(w, r, "limit must be a positive integer")
			return
		}
		limit = parsed
	}
	if limit > maxRankLimit {
		limit = maxRankLimit
	}

	forceRefresh := false
	if rawRefresh := r.URL.Query().Get("forceRefresh"); rawRefresh != "" {
		parsed, err := strconv.ParseBool(rawRefresh)
		if err != nil {
			api.validationErrorResponse(w, r, "forceRefresh must be a boolean")
			return
		}
		forceRefresh = parsed
	}

	ranked, err := api.MatchManager.RankEventsForVendor(r.Context(), vendorID, limit, forceRefresh)
	if err != nil {
		if errors.Is(err, match.ErrVendorNotFound) {
			api.notFoundResponse(w, r, "vendor not found")
			return
		}
		api.serverErrorResponse(w, r, err)
		return
	}

	response := models.NewListResponse(ranked, len(ranked) == limit, api.Clock)
	api.sendResponse(w, r, response)
}

func (api *RestAPI) scorePair(w http.ResponseWriter, r *http.Request, vendorID, eventID string) {
	result, err := api.MatchManager.ScoreEventForVendor(r.Context(), vendorID, eventID)
	if err != nil {
		switch {
		case errors.Is(err, match.ErrVendorNotFound):
			api.notFoundResponse(w, r, "vendor not found")
		case errors.Is(err, match.ErrEventNotFound):
			api.notFoundResponse(w, r, "event not found")
		default:
			api.serverErrorResponse(w, r, err)
		}
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(result, api.Clock))
}
