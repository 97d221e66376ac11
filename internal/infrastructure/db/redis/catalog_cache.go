package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/brightpaths/org-system/internal/api/metrics"
	"github.com/brightpaths/org-system/internal/core/ports"
)

const defaultCatalogTTL = 5 * time.Minute

// CatalogCache is a read-through Redis cache over the program-site catalog.
// Redis failures fail open: the lookup falls through to the backing catalog
// so validation never degrades because the cache is down.
// Key format: catalog:<program>
type CatalogCache struct {
	client *redis.Client
	next   ports.ProgramCatalog
	ttl    time.Duration
	log    zerolog.Logger
}

// NewCatalogCache wraps the given catalog with a Redis cache. A non-positive
// ttl falls back to defaultCatalogTTL.
func NewCatalogCache(client *redis.Client, next ports.ProgramCatalog, ttl time.Duration, log zerolog.Logger) *CatalogCache {
	if ttl <= 0 {
		ttl = defaultCatalogTTL
	}
	return &CatalogCache{client: client, next: next, ttl: ttl, log: log}
}

func (c *CatalogCache) SitesFor(ctx context.Context, program string) ([]string, error) {
	key := c.key(program)

	raw, err := c.client.Get(ctx, key).Result()
	if err == nil {
		var sites []string
		if jsonErr := json.Unmarshal([]byte(raw), &sites); jsonErr == nil {
			metrics.CatalogCacheTotal.WithLabelValues("hit").Inc()
			return sites, nil
		}
		// Unreadable entry: treat as a miss and overwrite below.
	} else if err != redis.Nil {
		c.log.Warn().Err(err).Str("program", program).Msg("catalog cache read failed, falling through")
	}

	metrics.CatalogCacheTotal.WithLabelValues("miss").Inc()
	sites, err := c.next.SitesFor(ctx, program)
	if err != nil {
		return nil, err
	}

	if encoded, jsonErr := json.Marshal(sites); jsonErr == nil {
		if setErr := c.client.Set(ctx, key, encoded, c.ttl).Err(); setErr != nil {
			c.log.Warn().Err(setErr).Str("program", program).Msg("catalog cache write failed")
		}
	}
	return sites, nil
}

func (c *CatalogCache) key(program string) string {
	return fmt.Sprintf("catalog:%s", program)
}
