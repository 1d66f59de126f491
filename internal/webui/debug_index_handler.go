package webui

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/davecgh/go-spew/spew"

	"transit.smartcity.org/internal/planner"
)

//go:embed debug_index.html
var templateFS embed.FS

var debugTemplate = template.Must(template.ParseFS(templateFS, "debug_index.html"))

type debugData struct {
	Title string
	Pre   string
}

func writeDebugData(w http.ResponseWriter, title string, data interface{}) {
	dataStruct := debugData{
		Title: title,
		Pre:   spew.Sdump(data),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := debugTemplate.Execute(w, dataStruct); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	dataType := r.URL.Query().Get("dataType")

	var data interface{}
	var title string

	switch dataType {
	case "lines":
		lines, err := webUI.Source.ListLines(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		data = lines
		title = "Timetable - Lines"
	case "events":
		tt, err := planner.LoadTimetable(r.Context(), webUI.Source, webUI.Config.Planner.FetchConcurrency, webUI.Logger)
		if err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		data = tt.StopEvents
		title = "Timetable - Stop events by line"
	default:
		data = map[string]string{
			"error": "Please use one of the following: lines, events.",
		}
		title = "Choose a data type"
	}

	writeDebugData(w, title, data)
}
