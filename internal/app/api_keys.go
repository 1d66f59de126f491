package app

import "net/http"

// RequestHasInvalidAPIKey checks the "key" query parameter.
func (app *Application) RequestHasInvalidAPIKey(r *http.Request) bool {
	key := r.URL.Query().Get("key")
	return app.IsInvalidAPIKey(key)
}

// IsInvalidAPIKey reports whether key is refused. With no keys configured
// the API is open and every key, blank included, is accepted.
func (app *Application) IsInvalidAPIKey(key string) bool {
	validKeys := app.Config.ApiKeys
	if len(validKeys) == 0 {
		return false
	}

	if key == "" {
		return true
	}

	for _, validKey := range validKeys {
		if key == validKey {
			return false
		}
	}

	return true
}

// IsKnownAPIKey reports whether key is one of the configured keys. It is
// always false on an open API.
func (app *Application) IsKnownAPIKey(key string) bool {
	return len(app.Config.ApiKeys) > 0 && !app.IsInvalidAPIKey(key)
}
