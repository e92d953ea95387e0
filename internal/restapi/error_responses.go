package restapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"popmatch.poplocal.org/internal/models"
)

// sendResponse serializes a response envelope as JSON. The envelope's HTTP
// status is always 200; the embedded code carries the API-level outcome.
func (api *RestAPI) sendResponse(w http.ResponseWriter, r *http.Request, response models.ResponseModel) {
	api.sendResponseWithStatus(w, r, http.StatusOK, response)
}

func (api *RestAPI) sendResponseWithStatus(w http.ResponseWriter, r *http.Request, status int, response models.ResponseModel) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("failed to encode response",
			slog.String("path", r.URL.Path),
			slog.Any("error", err))
	}
}

// sendNull writes a literal JSON null, matching the envelope-less error
// shape some clients expect for hard failures.
func (api *RestAPI) sendNull(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, err := w.Write([]byte("null"))
	if err != nil {
		slog.Error("failed to write null response",
			slog.String("path", r.URL.Path),
			slog.Any("error", err))
	}
}

func (api *RestAPI) validationErrorResponse(w http.ResponseWriter, r *http.Request, message string) {
	response := models.NewResponse(http.StatusBadRequest, nil, message, api.Clock)
	api.sendResponseWithStatus(w, r, http.StatusBadRequest, response)
}

func (api *RestAPI) notFoundResponse(w http.ResponseWriter, r *http.Request, message string) {
	response := models.NewResponse(http.StatusNotFound, nil, message, api.Clock)
	api.sendResponseWithStatus(w, r, http.StatusNotFound, response)
}

func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("internal server error",
		slog.String("path", r.URL.Path),
		slog.Any("error", err))
	response := models.NewResponse(http.StatusInternalServerError, nil, "internal server error", api.Clock)
	api.sendResponseWithStatus(w, r, http.StatusInternalServerError, response)
}

func (api *RestAPI) invalidAPIKeyResponse(w http.ResponseWriter, r *http.Request) {
	response := models.NewResponse(http.StatusUnauthorized, nil, "permission denied", api.Clock)
	api.sendResponseWithStatus(w, r, http.StatusUnauthorized, response)
}
