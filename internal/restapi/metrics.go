package restapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestCount = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_request_count",
		Help: "Number of HTTP requests served, by endpoint and status",
	}, []string{"endpoint", "status"})
	requestDuration = prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Name: "http_request_duration_seconds",
		Help: "Time spent serving HTTP requests",
	}, []string{"endpoint"})
)

func init() {
	prometheus.MustRegister(requestCount, requestDuration)
}

// instrument counts requests to next and observes how long they take.
func instrument(endpoint string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		requestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
		requestCount.WithLabelValues(endpoint, strconv.Itoa(wrapped.statusCode)).Inc()
	})
}
