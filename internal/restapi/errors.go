package restapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"transit.smartcity.org/internal/logging"
	"transit.smartcity.org/internal/models"
	"transit.smartcity.org/internal/timetable"
)

// invalidAPIKeyResponse sends a 401 Unauthorized response with the required format
// for invalid API key errors
func (api *RestAPI) invalidAPIKeyResponse(w http.ResponseWriter, r *http.Request) {
	response := models.NewErrorResponse(http.StatusUnauthorized, "permission denied")
	response.Version = 1
	api.sendResponse(w, r, response)
}

func (api *RestAPI) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	api.sendResponse(w, r, models.NewErrorResponse(http.StatusMethodNotAllowed, "method not allowed"))
}

func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(api.Logger, "request failed", err,
		slog.String("path", r.URL.Path),
		slog.String("request_id", RequestIDFromContext(r.Context())))
	api.sendResponse(w, r, models.NewErrorResponse(http.StatusInternalServerError, "internal server error"))
}

// sourceErrorResponse reports a timetable source failure: 504 when the
// mobility service timed out, 503 otherwise.
func (api *RestAPI) sourceErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusServiceUnavailable
	text := "timetable source unavailable"

	var upstream *timetable.UpstreamError
	if (errors.As(err, &upstream) && upstream.Timeout()) || errors.Is(err, context.DeadlineExceeded) {
		status = http.StatusGatewayTimeout
		text = "timetable source timed out"
	}

	logging.LogError(api.Logger, text, err,
		slog.String("path", r.URL.Path),
		slog.Int("status", status),
		slog.String("request_id", RequestIDFromContext(r.Context())))
	api.sendResponse(w, r, models.NewErrorResponse(status, text))
}

// validationErrorResponse sends a 400 Bad Request response with field-specific validation errors
func (api *RestAPI) validationErrorResponse(w http.ResponseWriter, r *http.Request, fieldErrors map[string][]string) {
	response := struct {
		FieldErrors map[string][]string `json:"fieldErrors"`
	}{
		FieldErrors: fieldErrors,
	}
	api.sendJSON(w, r, http.StatusBadRequest, response)
}
