package restapi

import (
	"fmt"
	"net/http"

	"transit.smartcity.org/internal/models"
	"transit.smartcity.org/internal/planner"
	"transit.smartcity.org/internal/utils"
)

// linesHandler answers GET /lignes with the lines of the timetable source.
func (api *RestAPI) linesHandler(w http.ResponseWriter, r *http.Request) {
	lines, err := api.Source.ListLines(r.Context())
	if err != nil {
		api.sourceErrorResponse(w, r, err)
		return
	}
	if lines == nil {
		lines = []planner.Line{}
	}
	api.sendJSON(w, r, http.StatusOK, lines)
}

// lineScheduleHandler answers GET /horaires/:numero with the stop events of
// the line whose number matches.
func (api *RestAPI) lineScheduleHandler(w http.ResponseWriter, r *http.Request) {
	number := utils.ExtractIDFromParams(r, "numero")
	if err := utils.ValidateLineNumber(number); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"numero": {err.Error()}})
		return
	}

	lines, err := api.Source.ListLines(r.Context())
	if err != nil {
		api.sourceErrorResponse(w, r, err)
		return
	}

	var line *planner.Line
	for i := range lines {
		if lines[i].Number == number {
			line = &lines[i]
			break
		}
	}
	if line == nil {
		api.sendResponse(w, r, models.NewErrorResponse(http.StatusNotFound, fmt.Sprintf("line %s not found", number)))
		return
	}

	events, err := api.Source.ListStopEvents(r.Context(), *line)
	if err != nil {
		api.sourceErrorResponse(w, r, err)
		return
	}

	api.sendJSON(w, r, http.StatusOK, models.NewLineSchedule(line.Number, events))
}
