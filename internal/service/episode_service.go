package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/lshepard/theaiwhotaughtme/internal/feed"
	"github.com/lshepard/theaiwhotaughtme/internal/models"
	appErrors "github.com/lshepard/theaiwhotaughtme/pkg/errors"
)

const (
	cacheKeyFeedRaw      = "feed:raw"
	cacheKeyFeedEpisodes = "feed:episodes"
)

type feedFetcher interface {
	FetchRaw(ctx context.Context) ([]byte, error)
}

type feedCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// EpisodeService serves the parsed episode list and the raw feed proxy, both
// behind a short revalidation cache that keeps load off the podcast host.
//
// Episode display is best-effort: Episodes never returns an error, only an
// empty list.
type EpisodeService struct {
	fetcher feedFetcher
	cache   feedCache
	ttl     time.Duration
	metrics *MetricsService
	logger  *zap.Logger
}

// NewEpisodeService constructs the service.
func NewEpisodeService(fetcher feedFetcher, cache feedCache, ttl time.Duration, metrics *MetricsService, logger *zap.Logger) *EpisodeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EpisodeService{
		fetcher: fetcher,
		cache:   cache,
		ttl:     ttl,
		metrics: metrics,
		logger:  logger,
	}
}

// Episodes returns the parsed episode list. Any failure yields an empty
// list; feed display is non-critical and must never take a page down.
func (s *EpisodeService) Episodes(ctx context.Context) []models.Episode {
	var episodes []models.Episode
	if s.cacheGet(ctx, cacheKeyFeedEpisodes, &episodes) {
		return episodes
	}

	raw, err := s.RawFeed(ctx)
	if err != nil {
		return []models.Episode{}
	}

	episodes, err = feed.Parse(raw)
	if err != nil {
		s.logger.Error("feed parse failed", zap.Error(err))
		return []models.Episode{}
	}

	s.cacheSet(ctx, cacheKeyFeedEpisodes, episodes)
	return episodes
}

// RawFeed returns the upstream feed body for proxying.
func (s *EpisodeService) RawFeed(ctx context.Context) ([]byte, error) {
	var raw []byte
	if s.cacheGet(ctx, cacheKeyFeedRaw, &raw) {
		return raw, nil
	}

	raw, err := s.fetcher.FetchRaw(ctx)
	if err != nil {
		s.logger.Error("feed fetch failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "error fetching RSS feed")
	}

	s.cacheSet(ctx, cacheKeyFeedRaw, raw)
	return raw, nil
}

func (s *EpisodeService) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	start := time.Now()
	err := s.cache.Get(ctx, key, dest)
	hit := err == nil
	s.metrics.RecordCacheOperation(hit, time.Since(start))
	if err != nil && !errors.Is(err, appErrors.ErrCacheMiss) {
		s.logger.Warn("feed cache read failed", zap.String("key", key), zap.Error(err))
	}
	return hit
}

func (s *EpisodeService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
		s.logger.Warn("feed cache write failed", zap.String("key", key), zap.Error(err))
	}
}
