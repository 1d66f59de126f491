package restapi

import (
	"encoding/json"
	"net/http"

	"transit.smartcity.org/internal/models"
)

// sendJSON writes body as-is with the given status. The planning and
// timetable endpoints answer in the dashboard format, without an envelope.
func (api *RestAPI) sendJSON(w http.ResponseWriter, r *http.Request, status int, body interface{}) {
	setJSONResponseType(&w)
	w.WriteHeader(status)
	if err := jsonEncode(w, body); err != nil {
		api.Logger.Error("failed to encode response", "error", err, "path", r.URL.Path)
	}
}

func (api *RestAPI) sendResponse(w http.ResponseWriter, r *http.Request, response models.ResponseModel) {
	api.sendJSON(w, r, response.Code, response)
}

func (api *RestAPI) sendNotFound(w http.ResponseWriter, r *http.Request) {
	api.sendResponse(w, r, models.NewErrorResponse(http.StatusNotFound, "resource not found"))
}

func jsonEncode(w http.ResponseWriter, v interface{}) error {
	return json.NewEncoder(w).Encode(v)
}

func setJSONResponseType(w *http.ResponseWriter) {
	(*w).Header().Set("Content-Type", "application/json")
}
