package restapi

import (
	"errors"
	"net/http"
	"strings"

	"transit.smartcity.org/internal/planner"
	"transit.smartcity.org/internal/utils"
)

// planificationHandler answers GET /planification?depart=&arrivee=&heure_depart=
func (api *RestAPI) planificationHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	rawDeparture := query.Get("depart")
	rawArrival := query.Get("arrivee")
	departureTime := strings.TrimSpace(query.Get("heure_depart"))

	if fieldErrors := utils.ValidatePlanningParams(rawDeparture, rawArrival, departureTime); len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	result, err := api.Planner.Plan(r.Context(), planner.Request{
		Departure:     utils.SanitizeInput(rawDeparture),
		Arrival:       utils.SanitizeInput(rawArrival),
		DepartureTime: departureTime,
	})
	switch {
	case errors.Is(err, planner.ErrInvalidRequest):
		api.validationErrorResponse(w, r, map[string][]string{"request": {err.Error()}})
		return
	case errors.Is(err, planner.ErrSourceUnavailable):
		api.sourceErrorResponse(w, r, err)
		return
	case err != nil:
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendJSON(w, r, http.StatusOK, result)
}
