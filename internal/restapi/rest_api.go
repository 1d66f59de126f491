package restapi

import (
	"net/http"
	"time"

	"transit.smartcity.org/internal/app"
)

type RestAPI struct {
	*app.Application
	rateLimiter *RateLimitMiddleware
}

// NewRestAPI creates a new RestAPI instance with initialized rate limiter
func NewRestAPI(app *app.Application) *RestAPI {
	return &RestAPI{
		Application: app,
		rateLimiter: NewRateLimitMiddleware(app.Config.RateLimit, time.Second, app.IsKnownAPIKey),
	}
}

// Handler returns the router wrapped in the middleware chain. From the
// outside in: request logging, security headers, CORS, rate limiting and
// compression.
func (api *RestAPI) Handler() http.Handler {
	var handler http.Handler = api.Router()
	handler = CompressionMiddleware(handler)
	handler = api.rateLimiter.Handler(handler)
	handler = NewCORSMiddleware(api.Config.AllowedOrigins)(handler)
	handler = api.WithSecurityHeaders(handler)
	handler = NewRequestLoggingMiddleware(api.Logger)(handler)
	return handler
}

// Shutdown releases background resources held by the middleware.
func (api *RestAPI) Shutdown() {
	api.rateLimiter.Stop()
}
