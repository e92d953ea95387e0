package restapi

import (
	"net/http"
	"time"

	"popmatch.poplocal.org/internal/models"
)

// currentTimeHandler writes a JSON response with information about the
// current time.
func (api *RestAPI) currentTimeHandler(w http.ResponseWriter, r *http.Request) {
	now := api.Clock.Now()
	timeData := map[string]interface{}{
		"entry": map[string]interface{}{
			"time":         now.UnixMilli(),
			"readableTime": now.Format(time.RFC3339),
		},
	}
	response := models.NewOKResponse(timeData, api.Clock)

	api.sendResponse(w, r, response)
}
