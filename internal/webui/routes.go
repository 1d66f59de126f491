package webui

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"transit.smartcity.org/internal/app"
)

// WebUI serves developer pages that dump the live timetable.
type WebUI struct {
	*app.Application
}

func (webUI *WebUI) SetWebUIRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/debug/timetable", webUI.debugIndexHandler)
}
