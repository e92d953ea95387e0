package restapi

import (
	"errors"
	"net/http"

	"popmatch.poplocal.org/internal/match"
	"popmatch.poplocal.org/internal/models"
)

// normalizeDateHandler parses the raw date string in the "input" query
// param and returns the resolved range plus the recognizer that fired. When
// an eventId is supplied, the parsed range is also persisted to that event.
func (api *RestAPI) normalizeDateHandler(w http.ResponseWriter, r *http.Request) {
	input := r.URL.Query().Get("input")
	if input == "" {
		api.validationErrorResponse(w, r, "input is required")
		return
	}

	parsed, rule := api.MatchManager.NormalizeRaw(input)

	if eventID := r.URL.Query().Get("eventId"); eventID != "" && !parsed.IsEmpty() {
		event, err := api.MatchManager.GetEvent(r.Context(), eventID)
		if err != nil {
			if errors.Is(err, match.ErrEventNotFound) {
				api.notFoundResponse(w, r, "event not found")
				return
			}
			api.serverErrorResponse(w, r, err)
			return
		}

		// A partial parse only overwrites the side it resolved; a date the
		// event already carries is never nulled.
		if parsed.Start != nil {
			event.StartDate = parsed.Start
		}
		if parsed.End != nil {
			event.EndDate = parsed.End
		}
		if err := api.MatchManager.UpsertEvent(r.Context(), event); err != nil {
			api.serverErrorResponse(w, r, err)
			return
		}
	}

	entry := map[string]interface{}{
		"input": input,
		"start": parsed.Start,
		"end":   parsed.End,
		"rule":  rule,
	}
	api.sendResponse(w, r, models.NewEntryResponse(entry, api.Clock))
}
