package advisory

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/zatekoja/ayurvedaclinic/backend/internal/domain/entities"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/domain/providers"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/infrastructure/observability"
)

const searchCacheName = "advisory_search"

// CachedProvider wraps an AdvisoryProvider and caches knowledge search answers.
// Patient calls are passed through; their text depends on the full record.
type CachedProvider struct {
	providers.AdvisoryProvider
	cache   providers.CacheProvider
	ttl     int
	metrics *observability.Metrics
}

// NewCachedProvider creates a new cached advisory provider. ttlSeconds <= 0 disables caching.
func NewCachedProvider(inner providers.AdvisoryProvider, cache providers.CacheProvider, ttlSeconds int, metrics *observability.Metrics) *CachedProvider {
	return &CachedProvider{
		AdvisoryProvider: inner,
		cache:            cache,
		ttl:              ttlSeconds,
		metrics:          metrics,
	}
}

var _ providers.AdvisoryProvider = (*CachedProvider)(nil)

// searchCacheKey folds case and whitespace so equivalent queries share an entry
func searchCacheKey(query string) string {
	return "search:" + strings.Join(strings.Fields(strings.ToLower(query)), " ")
}

// Search returns a cached answer when one exists, otherwise asks the wrapped provider
func (p *CachedProvider) Search(ctx context.Context, query string) (*entities.SearchResponse, error) {
	if p.ttl <= 0 || strings.TrimSpace(query) == "" {
		return p.AdvisoryProvider.Search(ctx, query)
	}

	logger := observability.LoggerFromContext(ctx)
	key := searchCacheKey(query)

	if cached, err := p.cache.Get(ctx, key); err == nil {
		var resp entities.SearchResponse
		if err := json.Unmarshal(cached, &resp); err == nil {
			observability.RecordCacheHit(ctx, p.metrics, searchCacheName)
			return &resp, nil
		}
		logger.Warn().Str("key", key).Msg("discarding unreadable cached search response")
	}
	observability.RecordCacheMiss(ctx, p.metrics, searchCacheName)

	resp, err := p.AdvisoryProvider.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(resp); err == nil {
		if err := p.cache.Set(ctx, key, data, p.ttl); err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("failed to cache search response")
		}
	}
	return resp, nil
}
