package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/matchiq/predictions-api/internal/logic"
	"github.com/matchiq/predictions-api/internal/models"
)

// RedisClient defines the interface for the Redis cache client.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// Per-endpoint cache lifetimes. Season aggregates move slowly; markets
// and news churn.
const (
	statsTTL    = 6 * time.Hour
	formTTL     = 6 * time.Hour
	h2hTTL      = 24 * time.Hour
	injuriesTTL = time.Hour
	weatherTTL  = 30 * time.Minute
	oddsTTL     = 15 * time.Minute
	newsTTL     = 15 * time.Minute
)

// CachingProvider decorates a DataProvider with a Redis read-through
// cache. Cache failures fall through to the inner provider; caching never
// turns a working read into a failed one.
type CachingProvider struct {
	inner  logic.DataProvider
	redis  RedisClient
	logger *zap.SugaredLogger
}

func NewCachingProvider(inner logic.DataProvider, rdb RedisClient, logger *zap.Logger) *CachingProvider {
	return &CachingProvider{inner: inner, redis: rdb, logger: logger.Sugar()}
}

func fetchCached[T any](ctx context.Context, p *CachingProvider, key string, ttl time.Duration, fetch func() (T, error)) (T, error) {
	var zero T

	if raw, err := p.redis.Get(ctx, key).Result(); err == nil {
		var cached T
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return cached, nil
		}
		p.logger.Debugw("dropping malformed cache entry", "key", key)
	}

	value, err := fetch()
	if err != nil {
		return zero, err
	}

	if raw, err := json.Marshal(value); err == nil {
		if err := p.redis.Set(ctx, key, raw, ttl).Err(); err != nil {
			p.logger.Debugw("cache write failed", "key", key, "error", err)
		}
	}
	return value, nil
}

func (p *CachingProvider) TeamStatistics(ctx context.Context, teamID int) (*models.TeamStatistics, error) {
	key := fmt.Sprintf("provider:stats:%d", teamID)
	return fetchCached(ctx, p, key, statsTTL, func() (*models.TeamStatistics, error) {
		return p.inner.TeamStatistics(ctx, teamID)
	})
}

func (p *CachingProvider) TeamForm(ctx context.Context, teamID, lastN int) ([]models.FormResult, error) {
	key := fmt.Sprintf("provider:form:%d:%d", teamID, lastN)
	return fetchCached(ctx, p, key, formTTL, func() ([]models.FormResult, error) {
		return p.inner.TeamForm(ctx, teamID, lastN)
	})
}

func (p *CachingProvider) HeadToHead(ctx context.Context, homeID, awayID, lastN int) ([]models.H2HFixture, error) {
	key := fmt.Sprintf("provider:h2h:%d:%d:%d", homeID, awayID, lastN)
	return fetchCached(ctx, p, key, h2hTTL, func() ([]models.H2HFixture, error) {
		return p.inner.HeadToHead(ctx, homeID, awayID, lastN)
	})
}

func (p *CachingProvider) Injuries(ctx context.Context, teamID int) ([]models.Injury, error) {
	key := fmt.Sprintf("provider:injuries:%d", teamID)
	return fetchCached(ctx, p, key, injuriesTTL, func() ([]models.Injury, error) {
		return p.inner.Injuries(ctx, teamID)
	})
}

func (p *CachingProvider) Weather(ctx context.Context, location string) (*models.Weather, error) {
	key := "provider:weather:" + location
	return fetchCached(ctx, p, key, weatherTTL, func() (*models.Weather, error) {
		return p.inner.Weather(ctx, location)
	})
}

func (p *CachingProvider) Odds(ctx context.Context, matchID string) ([]models.OddsRecord, error) {
	key := "provider:odds:" + matchID
	return fetchCached(ctx, p, key, oddsTTL, func() ([]models.OddsRecord, error) {
		return p.inner.Odds(ctx, matchID)
	})
}

func (p *CachingProvider) TeamNews(ctx context.Context, teamName string) ([]models.NewsArticle, error) {
	key := "provider:news:" + teamName
	return fetchCached(ctx, p, key, newsTTL, func() ([]models.NewsArticle, error) {
		return p.inner.TeamNews(ctx, teamName)
	})
}
