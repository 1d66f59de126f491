package timetable

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jamespfennell/gtfs"

	"transit.smartcity.org/internal/logging"
	"transit.smartcity.org/internal/planner"
)

// GTFSConfig configures a timetable built from a static GTFS feed.
type GTFSConfig struct {
	// URL is either an http(s) URL or a path to a local zip file.
	URL string
	// RefreshInterval applies to remote feeds only. Zero means 24 hours.
	RefreshInterval time.Duration
}

// GTFSSource serves lines and stop events derived from a static GTFS feed.
// Remote feeds are downloaded again periodically until Shutdown is called.
type GTFSSource struct {
	source      string
	isLocalFile bool
	logger      *slog.Logger

	mu          sync.RWMutex
	timetable   planner.Timetable
	lastUpdated time.Time

	shutdownChan chan struct{}
	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

// NewGTFSSource loads the feed at config.URL.
func NewGTFSSource(ctx context.Context, config GTFSConfig, logger *slog.Logger) (*GTFSSource, error) {
	if logger == nil {
		logger = slog.Default()
	}
	isLocalFile := !strings.HasPrefix(config.URL, "http://") && !strings.HasPrefix(config.URL, "https://")

	staticData, err := loadGTFSData(ctx, config.URL, isLocalFile)
	if err != nil {
		return nil, err
	}

	s := &GTFSSource{
		source:       config.URL,
		isLocalFile:  isLocalFile,
		logger:       logger.With(slog.String("component", "gtfs_timetable")),
		shutdownChan: make(chan struct{}),
	}
	s.setStatic(staticData)

	if !isLocalFile {
		interval := config.RefreshInterval
		if interval <= 0 {
			interval = 24 * time.Hour
		}
		s.wg.Add(1)
		go s.refreshPeriodically(interval)
	}

	return s, nil
}

// NewGTFSSourceFromStatic serves an already parsed feed. It never refreshes.
func NewGTFSSourceFromStatic(staticData *gtfs.Static) *GTFSSource {
	s := &GTFSSource{
		isLocalFile:  true,
		logger:       slog.Default().With(slog.String("component", "gtfs_timetable")),
		shutdownChan: make(chan struct{}),
	}
	s.setStatic(staticData)
	return s
}

func (s *GTFSSource) ListLines(ctx context.Context) ([]planner.Line, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.timetable.Lines, nil
}

func (s *GTFSSource) ListStopEvents(ctx context.Context, line planner.Line) ([]planner.StopEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.timetable.EventsFor(line.ID), nil
}

// LastUpdated returns when the feed was last loaded.
func (s *GTFSSource) LastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdated
}

// Shutdown stops the background refresh, if any.
func (s *GTFSSource) Shutdown() {
	s.shutdownOnce.Do(func() {
		close(s.shutdownChan)
		s.wg.Wait()
	})
}

func (s *GTFSSource) setStatic(staticData *gtfs.Static) {
	tt := BuildTimetable(staticData)

	s.mu.Lock()
	s.timetable = tt
	s.lastUpdated = time.Now()
	s.mu.Unlock()

	logging.LogOperation(s.logger, "gtfs_timetable_loaded",
		slog.String("source", s.source),
		slog.Int("lines", len(tt.Lines)),
		slog.Int("routes_with_events", len(tt.StopEvents)))
}

func (s *GTFSSource) refreshPeriodically(interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			staticData, err := loadGTFSData(ctx, s.source, false)
			cancel()

			if err != nil {
				logging.LogError(s.logger, "error updating GTFS timetable", err,
					slog.String("source", s.source))
				continue
			}
			s.setStatic(staticData)
		case <-s.shutdownChan:
			logging.LogOperation(s.logger, "shutting_down_gtfs_updates")
			return
		}
	}
}

func rawGtfsData(ctx context.Context, source string, isLocalFile bool) ([]byte, error) {
	if isLocalFile {
		b, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("error reading local GTFS file: %w", err)
		}
		return b, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error downloading GTFS data: %w", err)
	}
	defer resp.Body.Close() // nolint

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error downloading GTFS data: HTTP %d", resp.StatusCode)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading GTFS data: %w", err)
	}
	return b, nil
}

// loadGTFSData loads and parses GTFS data from either a URL or a local file
func loadGTFSData(ctx context.Context, source string, isLocalFile bool) (*gtfs.Static, error) {
	b, err := rawGtfsData(ctx, source, isLocalFile)
	if err != nil {
		return nil, err
	}

	staticData, err := gtfs.ParseStatic(b, gtfs.ParseStaticOptions{})
	if err != nil {
		return nil, fmt.Errorf("error parsing GTFS data: %w", err)
	}
	return staticData, nil
}

// BuildTimetable turns a GTFS feed into planner input. Every route becomes a
// line; every pair of consecutive stops of a trip becomes a stop event
// leaving the first stop and reaching the second. Times past midnight
// (GTFS allows 25:10) fold back onto the clock.
func BuildTimetable(staticData *gtfs.Static) planner.Timetable {
	tt := planner.Timetable{
		StopEvents: make(map[string][]planner.StopEvent),
	}
	if staticData == nil {
		return tt
	}

	firstTrip := make(map[string]*gtfs.ScheduledTrip)
	for i := range staticData.Trips {
		trip := &staticData.Trips[i]
		if trip.Route == nil {
			continue
		}
		routeID := trip.Route.Id

		stopTimes := make([]gtfs.ScheduledStopTime, len(trip.StopTimes))
		copy(stopTimes, trip.StopTimes)
		sort.SliceStable(stopTimes, func(a, b int) bool {
			return stopTimes[a].StopSequence < stopTimes[b].StopSequence
		})

		if _, ok := firstTrip[routeID]; !ok && len(stopTimes) > 0 {
			firstTrip[routeID] = trip
		}

		for j := 0; j+1 < len(stopTimes); j++ {
			from, to := stopTimes[j], stopTimes[j+1]
			tt.StopEvents[routeID] = append(tt.StopEvents[routeID], planner.StopEvent{
				ID:          fmt.Sprintf("%s:%d", trip.ID, from.StopSequence),
				LineID:      routeID,
				Station:     stopName(from.Stop),
				Destination: stopName(to.Stop),
				Departure:   clockFromDuration(from.DepartureTime),
				Arrival:     clockFromDuration(to.ArrivalTime),
			})
		}
	}

	for i := range staticData.Routes {
		route := &staticData.Routes[i]

		number := route.ShortName
		if number == "" {
			number = route.Id
		}
		name := route.LongName
		if name == "" {
			name = number
		}

		line := planner.Line{
			ID:            route.Id,
			Number:        number,
			Name:          name,
			TransportMode: routeMode(int(route.Type)),
			Active:        true,
		}
		if trip := firstTrip[route.Id]; trip != nil {
			line.StartTerminus, line.EndTerminus = termini(trip)
		}
		tt.Lines = append(tt.Lines, line)
	}

	return tt
}

func termini(trip *gtfs.ScheduledTrip) (string, string) {
	first, last := trip.StopTimes[0], trip.StopTimes[0]
	for _, st := range trip.StopTimes {
		if st.StopSequence < first.StopSequence {
			first = st
		}
		if st.StopSequence > last.StopSequence {
			last = st
		}
	}
	return stopName(first.Stop), stopName(last.Stop)
}

func stopName(stop *gtfs.Stop) string {
	if stop == nil {
		return ""
	}
	if stop.Name != "" {
		return stop.Name
	}
	return stop.Id
}

func clockFromDuration(d time.Duration) planner.Clock {
	return planner.ClockFromMinutes(int(d / time.Minute))
}

// routeMode maps a GTFS route_type onto the transport labels used by the
// mobility service.
func routeMode(routeType int) string {
	switch routeType {
	case 0:
		return "tramway"
	case 1:
		return "metro"
	case 2:
		return "train"
	case 3:
		return "bus"
	case 4:
		return "ferry"
	case 5:
		return "cable tram"
	case 6:
		return "aerial lift"
	case 7:
		return "funicular"
	case 11:
		return "trolleybus"
	case 12:
		return "monorail"
	default:
		return "bus"
	}
}
