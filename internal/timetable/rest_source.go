package timetable

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"transit.smartcity.org/internal/logging"
	"transit.smartcity.org/internal/planner"
)

const (
	linesEndpoint     = "lignes"
	schedulesEndpoint = "horaires"
)

// RESTSource reads the timetable from the mobility REST service:
// GET /lignes for the lines and GET /horaires/{numero} for each line.
type RESTSource struct {
	config RESTConfig
	client *http.Client
	logger *slog.Logger
}

// NewRESTSource creates a client for the mobility service at config.BaseURL.
func NewRESTSource(config RESTConfig, logger *slog.Logger) (*RESTSource, error) {
	base, err := url.Parse(config.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid mobility service URL %q", config.BaseURL)
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	if logger == nil {
		logger = slog.Default()
	}

	return &RESTSource{
		config: config,
		client: &http.Client{
			Timeout:   config.Timeout,
			Transport: newTransport(config.UserAgent),
		},
		logger: logger.With(slog.String("component", "mobility_rest_client")),
	}, nil
}

// schedulesResponse is the body of GET /horaires/{numero}.
type schedulesResponse struct {
	Line      string              `json:"ligne"`
	Schedules []planner.StopEvent `json:"horaires"`
}

// ListLines returns every line published by the mobility service.
func (s *RESTSource) ListLines(ctx context.Context) ([]planner.Line, error) {
	var lines []planner.Line
	if err := s.getJSON(ctx, linesEndpoint, "/lignes", &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// ListStopEvents returns the schedule of one line, looked up by its number.
func (s *RESTSource) ListStopEvents(ctx context.Context, line planner.Line) ([]planner.StopEvent, error) {
	var body schedulesResponse
	if err := s.getJSON(ctx, schedulesEndpoint, "/horaires/"+url.PathEscape(line.Number), &body); err != nil {
		return nil, err
	}

	for i := range body.Schedules {
		if body.Schedules[i].LineID == "" {
			body.Schedules[i].LineID = line.ID
		}
	}
	return body.Schedules, nil
}

// Ping checks that the mobility service answers the line listing.
func (s *RESTSource) Ping(ctx context.Context) error {
	_, err := s.ListLines(ctx)
	return err
}

func (s *RESTSource) getJSON(ctx context.Context, endpoint, path string, target any) error {
	for attempt := 0; ; attempt++ {
		err := s.fetch(ctx, endpoint, path, target)
		if err == nil {
			downloadCount.WithLabelValues(endpoint).Inc()
			return nil
		}

		var upstream *UpstreamError
		if !errors.As(err, &upstream) || !upstream.retryable() || attempt >= s.config.MaxRetries || ctx.Err() != nil {
			errorCount.WithLabelValues(endpoint).Inc()
			return err
		}

		retryCount.WithLabelValues(endpoint).Inc()
		s.logger.Warn("retrying mobility service request",
			slog.String("path", path),
			slog.Int("attempt", attempt+1),
			slog.String("error", err.Error()))

		select {
		case <-ctx.Done():
			errorCount.WithLabelValues(endpoint).Inc()
			return &UpstreamError{Endpoint: path, Err: ctx.Err()}
		case <-time.After(s.config.RetryDelay):
		}
	}
}

func (s *RESTSource) fetch(ctx context.Context, endpoint, path string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.config.BaseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return &UpstreamError{Endpoint: path, Err: err}
	}
	defer logging.SafeCloseWithLogging(resp.Body, s.logger, "http_response_body")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &UpstreamError{
			Endpoint:   path,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("malformed %s response from %s: %w", endpoint, path, err)
	}
	return nil
}

type userAgentTransport struct {
	userAgent string
	base      http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(request *http.Request) (*http.Response, error) {
	r := request.Clone(request.Context())
	r.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(r)
}

func newTransport(userAgent string) http.RoundTripper {
	if userAgent == "" {
		return http.DefaultTransport
	}
	return &userAgentTransport{
		userAgent: userAgent,
		base:      http.DefaultTransport,
	}
}
