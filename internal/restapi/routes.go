package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"transit.smartcity.org/internal/appconf"
	"transit.smartcity.org/internal/webui"
)

type handlerFunc func(w http.ResponseWriter, r *http.Request)

func validateAPIKey(api *RestAPI, finalHandler handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
}

// SetRoutes registers the API endpoints on router.
func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	router.Handler(http.MethodGet, "/planification", instrument("planification", validateAPIKey(api, api.planificationHandler)))
	router.Handler(http.MethodGet, "/lignes", instrument("lignes", validateAPIKey(api, api.linesHandler)))
	router.Handler(http.MethodGet, "/horaires/:numero", instrument("horaires", validateAPIKey(api, api.lineScheduleHandler)))
	router.Handler(http.MethodGet, "/health", instrument("health", http.HandlerFunc(api.healthHandler)))
	router.Handler(http.MethodGet, "/metrics", promhttp.Handler())

	router.NotFound = http.HandlerFunc(api.sendNotFound)
	router.MethodNotAllowed = http.HandlerFunc(api.methodNotAllowedResponse)
}

// Router builds the router with every route, including the debug pages
// outside production.
func (api *RestAPI) Router() *httprouter.Router {
	router := httprouter.New()
	api.SetRoutes(router)

	if api.Config.Env != appconf.Production {
		ui := &webui.WebUI{Application: api.Application}
		ui.SetWebUIRoutes(router)
	}
	return router
}
