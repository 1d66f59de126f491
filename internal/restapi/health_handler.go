package restapi

import (
	"context"
	"net/http"
	"time"

	"transit.smartcity.org/internal/models"
)

const healthCheckTimeout = 2 * time.Second

// healthHandler reports whether the timetable source answers.
func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	status := models.HealthStatus{
		Status:    "ok",
		Source:    "connected",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	code := http.StatusOK

	if _, err := api.Source.ListLines(ctx); err != nil {
		status.Status = "error"
		status.Source = "disconnected"
		status.Error = err.Error()
		code = http.StatusServiceUnavailable
	}

	api.sendJSON(w, r, code, status)
}
