package timetable

import "github.com/prometheus/client_golang/prometheus"

var (
	downloadCount = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_download_count",
		Help: "Number of successful downloads from the timetable source",
	}, []string{"endpoint"})
	errorCount = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_error_count",
		Help: "Number of failed requests to the timetable source",
	}, []string{"endpoint"})
	retryCount = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_retry_count",
		Help: "Number of retried requests to the timetable source",
	}, []string{"endpoint"})
	cachedCount = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_cached_count",
		Help: "Number of timetable lookups answered from the cache",
	}, []string{"endpoint"})
)

func init() {
	prometheus.MustRegister(downloadCount, errorCount, retryCount, cachedCount)
}
