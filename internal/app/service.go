// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/melodig/trackmix/internal/adapters/catalog"
	"github.com/melodig/trackmix/internal/adapters/dataset"
	"github.com/melodig/trackmix/internal/domain/blend"
	"github.com/melodig/trackmix/internal/domain/history"
	"github.com/melodig/trackmix/internal/domain/model"
	"github.com/melodig/trackmix/internal/domain/similar"
	"github.com/melodig/trackmix/internal/domain/types"
	"github.com/melodig/trackmix/pkg/logger"
	"github.com/melodig/trackmix/pkg/metrics"
)

// Service wires the candidate snapshot, session history cache and blending
// engine, and implements the API dependencies.
type Service struct {
	mu sync.RWMutex

	// Core components
	snapshot     *catalog.Snapshot
	historyCache history.Cache
	engine       *blend.Engine

	// Configuration
	source            dataset.Source
	defaultCount      int
	maxCount          int
	offlineFetchLimit int
	redisAddr         string
	redisDB           int
	redisKeyPrefix    string
	useRedisHistory   bool

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithDataSource sets the dataset source used at startup.
func WithDataSource(source dataset.Source) Option {
	return func(s *Service) {
		if source != nil {
			s.source = source
		}
	}
}

// WithHistoryCache injects a prebuilt session history cache, overriding the
// backend selection.
func WithHistoryCache(cache history.Cache) Option {
	return func(s *Service) {
		if cache != nil {
			s.historyCache = cache
		}
	}
}

// WithRedisHistory selects the redis history backend.
func WithRedisHistory(addr string, db int, keyPrefix string) Option {
	return func(s *Service) {
		if addr != "" {
			s.useRedisHistory = true
			s.redisAddr = addr
			s.redisDB = db
			s.redisKeyPrefix = keyPrefix
		}
	}
}

// WithDefaultCount sets the recommendation count used when requests omit n.
func WithDefaultCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.defaultCount = count
		}
	}
}

// WithMaxCount caps the per-request recommendation count.
func WithMaxCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.maxCount = count
		}
	}
}

// WithOfflineFetchLimit sets how many offline candidates the engine fetches
// for merging.
func WithOfflineFetchLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.offlineFetchLimit = limit
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		defaultCount:      50,
		maxCount:          100,
		offlineFetchLimit: 100,
		logger:            nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the candidate datasets and assembles the blending pipeline.
// Dataset load failures degrade to empty tables; Start fails only when a
// configured external backend (redis history) is unreachable.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting recommendation service...")

	if s.source == nil {
		s.source = dataset.NewLocalSource("data")
	}

	tables := dataset.NewLoader(s.source, dataset.WithLogger(s.logger.Named("loader"))).Load(ctx)
	s.snapshot = catalog.NewSnapshot(tables)

	if s.historyCache == nil {
		if s.useRedisHistory {
			cache, err := history.NewRedisCache(ctx, s.redisAddr, s.redisDB, s.redisKeyPrefix)
			if err != nil {
				return err
			}
			s.historyCache = cache
			s.logger.Info(ctx, "using redis history cache", logger.String("addr", s.redisAddr))
		} else {
			s.historyCache = history.NewInMemoryCache()
			s.logger.Info(ctx, "using in-memory history cache")
		}
	}

	s.engine = blend.New(
		s.snapshot,
		s.historyCache,
		similar.NewAggregator(s.snapshot),
		blend.WithOfflineFetchLimit(s.offlineFetchLimit),
	)

	stats := s.snapshot.Stats()
	metrics.UpdateOfflineUsers(stats.OfflineUsers)

	s.started = true
	s.logger.Info(ctx, "recommendation service started",
		logger.Int("offlineUsers", stats.OfflineUsers),
		logger.Int("similarityRows", stats.SimilarityRows),
		logger.Int("popularityRows", stats.PopularityRows),
		logger.Int("catalogTracks", stats.CatalogTracks),
	)

	return nil
}

// Stop releases external resources held by the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping recommendation service...")

	if closer, ok := s.historyCache.(interface{ Close() error }); ok {
		_ = closer.Close()
	}

	s.started = false
	s.logger.Info(context.Background(), "recommendation service stopped")
}

// Recommend runs the blending engine for userID with the requested count.
// A non-positive n falls back to the configured default.
func (s *Service) Recommend(ctx context.Context, userID types.UserID, n int) ([]types.Recommendation, types.Strategy, error) {
	if n <= 0 {
		n = s.defaultCount
	}

	start := time.Now()
	recs, strategy, err := s.engine.Recommend(ctx, userID, n)
	if err != nil {
		return nil, "", err
	}
	metrics.RecordBlendLatency(float64(time.Since(start).Milliseconds()))
	metrics.RecordRecommendationServed(string(strategy))
	if len(recs) == 0 {
		metrics.RecordRecommendationEmpty()
	}

	s.logger.Debug(ctx, "recommendations served",
		logger.Int64("userID", userID),
		logger.Int("n", n),
		logger.String("strategy", string(strategy)),
		logger.Int("count", len(recs)),
	)

	return recs, strategy, nil
}

// UpdateHistory replaces the user's session history wholesale and returns
// the accepted track count.
func (s *Service) UpdateHistory(ctx context.Context, userID types.UserID, trackIDs []types.TrackID) (int, error) {
	if err := s.historyCache.Set(ctx, userID, trackIDs); err != nil {
		return 0, err
	}
	metrics.RecordHistoryUpdate()
	metrics.UpdateHistoryCacheSize(s.historyCache.Size(ctx))
	return len(trackIDs), nil
}

// ClearHistory removes the user's session history. The boolean reports
// whether an entry existed.
func (s *Service) ClearHistory(ctx context.Context, userID types.UserID) (bool, error) {
	found, err := s.historyCache.Clear(ctx, userID)
	if err != nil {
		return false, err
	}
	metrics.RecordHistoryClear()
	metrics.UpdateHistoryCacheSize(s.historyCache.Size(ctx))
	return found, nil
}

// Health returns the immutable snapshot sizes.
func (s *Service) Health(_ context.Context) catalog.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snapshot == nil {
		return catalog.Stats{}
	}
	return s.snapshot.Stats()
}

// Track resolves catalog metadata for a track id.
func (s *Service) Track(_ context.Context, id types.TrackID) (model.Track, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snapshot == nil {
		return model.Track{}, false
	}
	return s.snapshot.Track(id)
}

// DefaultCount returns the recommendation count used when requests omit n.
func (s *Service) DefaultCount() int { return s.defaultCount }

// MaxCount returns the per-request recommendation count cap.
func (s *Service) MaxCount() int { return s.maxCount }

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":           s.started,
		"defaultCount":      s.defaultCount,
		"maxCount":          s.maxCount,
		"offlineFetchLimit": s.offlineFetchLimit,
	}

	if s.started {
		snap := s.snapshot.Stats()
		stats["offlineUsers"] = snap.OfflineUsers
		stats["similarityRows"] = snap.SimilarityRows
		stats["popularityRows"] = snap.PopularityRows
		stats["catalogTracks"] = snap.CatalogTracks

		size := s.historyCache.Size(context.Background())
		stats["historyEntries"] = size
		metrics.UpdateHistoryCacheSize(size)
	}

	return stats
}
