package timetable

import (
	"context"
	"time"

	"github.com/bluele/gcache"

	"transit.smartcity.org/internal/planner"
)

const linesCacheKey = "lines"

// CachedSource keeps recent answers of another source for a short time so
// that bursts of planning requests do not each hit the mobility service.
// Failed lookups are never cached. Returned slices are shared and must not
// be modified.
type CachedSource struct {
	source planner.Source
	cache  gcache.Cache
}

// NewCachedSource wraps source with an LRU cache of at most size entries,
// each kept for ttl.
func NewCachedSource(source planner.Source, ttl time.Duration, size int) *CachedSource {
	if size <= 0 {
		size = 1024
	}
	return &CachedSource{
		source: source,
		cache: gcache.New(size).
			LRU().
			Expiration(ttl).
			Build(),
	}
}

func (c *CachedSource) ListLines(ctx context.Context) ([]planner.Line, error) {
	if v, err := c.cache.Get(linesCacheKey); err == nil {
		cachedCount.WithLabelValues(linesEndpoint).Inc()
		return v.([]planner.Line), nil
	}

	lines, err := c.source.ListLines(ctx)
	if err != nil {
		return nil, err
	}
	_ = c.cache.Set(linesCacheKey, lines)
	return lines, nil
}

func (c *CachedSource) ListStopEvents(ctx context.Context, line planner.Line) ([]planner.StopEvent, error) {
	key := "events:" + line.ID
	if v, err := c.cache.Get(key); err == nil {
		cachedCount.WithLabelValues(schedulesEndpoint).Inc()
		return v.([]planner.StopEvent), nil
	}

	events, err := c.source.ListStopEvents(ctx, line)
	if err != nil {
		return nil, err
	}
	_ = c.cache.Set(key, events)
	return events, nil
}

// Purge drops every cached entry.
func (c *CachedSource) Purge() {
	c.cache.Purge()
}
