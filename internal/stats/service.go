// Package stats computes collection aggregates and caches them against a
// TTL and the backing file's modification time.
package stats

import (
	"context"
	"math"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ruchirachamara/assessment/internal/metrics"
	"github.com/ruchirachamara/assessment/pkg/models"
)

// Invalidation sources, used as the metric label.
const (
	SourceManual = "manual"
	SourceWatch  = "watch"
)

// ItemSource is the collection the aggregates are computed over.
// *catalog.Store satisfies it.
type ItemSource interface {
	Load() ([]models.Item, error)
	Path() string
}

// Service serves cached aggregates over an ItemSource. A cached value is
// valid while it is younger than the TTL and the backing file's modtime has
// not moved; either failing forces a recomputation.
type Service struct {
	source ItemSource
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time

	mu          sync.Mutex
	data        *models.Stats
	cachedAt    time.Time
	fileModTime time.Time
}

// New creates a stats service over source with the given cache TTL.
func New(source ItemSource, ttl time.Duration, logger *zap.Logger) *Service {
	return &Service{
		source: source,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// Compute aggregates the collection: item count and mean price rounded to
// the cent, half away from zero. Absent prices count as zero. An empty
// collection yields zero values rather than a division error.
func Compute(items []models.Item) models.Stats {
	if len(items) == 0 {
		return models.Stats{}
	}
	var sum float64
	for _, it := range items {
		sum += it.PriceValue()
	}
	avg := math.Round(sum/float64(len(items))*100) / 100
	return models.Stats{Total: len(items), AveragePrice: avg}
}

// Get returns the aggregates, recomputing only when the cache is stale.
// Concurrent stale reads serialize on the mutex so the collection is read
// once, not once per caller.
func (s *Service) Get() (models.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cacheValidLocked() {
		metrics.StatsCacheHits.Inc()
		s.logger.Debug("stats served from cache")
		return *s.data, nil
	}

	metrics.StatsCacheMisses.Inc()
	return s.recomputeLocked()
}

// Invalidate drops the cache so the next Get recomputes. source labels the
// invalidation metric.
func (s *Service) Invalidate(source string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = nil
	s.cachedAt = time.Time{}
	s.fileModTime = time.Time{}
	metrics.StatsCacheInvalidations.WithLabelValues(source).Inc()
	s.logger.Info("stats cache invalidated", zap.String("source", source))
}

// Status reports the cache state without touching the collection.
func (s *Service) Status() models.CacheStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return models.CacheStatus{}
	}
	age := s.now().Sub(s.cachedAt).Milliseconds()
	updated := s.cachedAt.UTC().Format(time.RFC3339)
	return models.CacheStatus{
		Cached:      true,
		CacheAge:    &age,
		CacheValid:  s.cacheValidLocked(),
		LastUpdated: &updated,
	}
}

// Run consumes change events and invalidates the cache for each one. It
// returns when ctx is canceled or events is closed.
func (s *Service) Run(ctx context.Context, events <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-events:
			if !ok {
				return
			}
			s.Invalidate(SourceWatch)
		}
	}
}

func (s *Service) cacheValidLocked() bool {
	if s.data == nil {
		return false
	}
	if s.now().Sub(s.cachedAt) >= s.ttl {
		return false
	}
	return s.modTime().Equal(s.fileModTime)
}

// recomputeLocked reads the collection and refreshes the cache. The modtime
// is captured before the read: if the file changes in between, the cached
// modtime is already stale and the next Get recomputes again.
func (s *Service) recomputeLocked() (models.Stats, error) {
	modTime := s.modTime()
	items, err := s.source.Load()
	if err != nil {
		return models.Stats{}, err
	}

	stats := Compute(items)
	s.data = &stats
	s.cachedAt = s.now()
	s.fileModTime = modTime
	metrics.ItemsTotal.Set(float64(stats.Total))
	s.logger.Debug("stats recomputed",
		zap.Int("total", stats.Total),
		zap.Float64("average_price", stats.AveragePrice))
	return stats, nil
}

// modTime returns the backing file's modification time, or the zero time
// when the file cannot be stat'd. Load is the authority on read errors; a
// zero modtime only means "changed" relative to a cached one.
func (s *Service) modTime() time.Time {
	info, err := os.Stat(s.source.Path())
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
