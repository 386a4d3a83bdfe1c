package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/sweetshop/inventory-api/internal/core/domain"
)

const (
	catalogListKey = "catalog:list"
	catalogListTTL = 30 * time.Second
)

// CatalogCache is a short-TTL Redis cache for the full catalog listing.
// Every catalog mutation invalidates it; a short TTL caps staleness when an
// invalidation is lost. All operations are best-effort and only log on
// failure.
type CatalogCache struct {
	client *redis.Client
	log    zerolog.Logger
}

// NewCatalogCache creates a CatalogCache wrapping the given Redis client.
func NewCatalogCache(client *redis.Client, log zerolog.Logger) *CatalogCache {
	return &CatalogCache{client: client, log: log}
}

// GetList returns the cached catalog and true on a hit.
func (c *CatalogCache) GetList(ctx context.Context) ([]*domain.Sweet, bool) {
	b, err := c.client.Get(ctx, catalogListKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Msg("catalog cache read failed")
		}
		return nil, false
	}
	var sweets []*domain.Sweet
	if err := json.Unmarshal(b, &sweets); err != nil {
		c.log.Warn().Err(err).Msg("catalog cache entry corrupt, dropping")
		_ = c.client.Del(ctx, catalogListKey).Err()
		return nil, false
	}
	return sweets, true
}

// SetList stores the catalog listing with the cache TTL.
func (c *CatalogCache) SetList(ctx context.Context, sweets []*domain.Sweet) {
	b, err := json.Marshal(sweets)
	if err != nil {
		c.log.Warn().Err(err).Msg("catalog cache encode failed")
		return
	}
	if err := c.client.Set(ctx, catalogListKey, b, catalogListTTL).Err(); err != nil {
		c.log.Warn().Err(err).Msg("catalog cache write failed")
	}
}

// Invalidate drops the cached listing after a catalog mutation.
func (c *CatalogCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, catalogListKey).Err(); err != nil {
		c.log.Warn().Err(err).Msg("catalog cache invalidation failed")
	}
}
