package timetable

import "time"

// RESTConfig configures the client of the mobility REST service.
type RESTConfig struct {
	// BaseURL is the root of the mobility service, e.g. http://mobility-service:8000.
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
	UserAgent  string
}

// DefaultRESTConfig returns the settings of the original gateway.
func DefaultRESTConfig(baseURL string) RESTConfig {
	return RESTConfig{
		BaseURL:    baseURL,
		Timeout:    10 * time.Second,
		MaxRetries: 3,
		RetryDelay: 2 * time.Second,
		UserAgent:  "transit-planner (+https://transit.smartcity.org)",
	}
}
