package planner

import "github.com/prometheus/client_golang/prometheus"

var (
	planDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "planner_plan_duration_seconds",
		Help:    "Time spent answering a planning request, timetable load included",
		Buckets: prometheus.DefBuckets,
	})
	planResults = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "planner_plan_itineraries",
		Help:    "Number of itineraries returned per planning request",
		Buckets: []float64{0, 1, 2, 3, 4, 5},
	})
	planFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "planner_plan_source_failures_total",
		Help: "Planning requests that failed because the timetable could not be loaded",
	})
)

func init() {
	prometheus.MustRegister(planDuration, planResults, planFailures)
}
