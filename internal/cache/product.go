package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Skotchmaster/electro_shop/internal/logging"
	"github.com/Skotchmaster/electro_shop/internal/models"
)

const DefaultTTL = 60 * time.Second

// ProductCache is a read-through cache of single products.
// A nil *ProductCache or a nil client disables caching.
type ProductCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *ProductCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ProductCache{Client: client, TTL: ttl}
}

func Key(id uuid.UUID) string { return "product:" + id.String() }

func (c *ProductCache) enabled() bool { return c != nil && c.Client != nil }

func (c *ProductCache) Get(ctx context.Context, id uuid.UUID) (*models.Product, bool) {
	if !c.enabled() {
		return nil, false
	}
	raw, err := c.Client.Get(ctx, Key(id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			logging.FromContext(ctx).Debug("product_cache_get_failed", "product_id", id, "error", err)
		}
		return nil, false
	}
	var p models.Product
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, false
	}
	return &p, true
}

func (c *ProductCache) Set(ctx context.Context, p *models.Product) {
	if !c.enabled() {
		return
	}
	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := c.Client.Set(ctx, Key(p.ID), data, c.TTL).Err(); err != nil {
		logging.FromContext(ctx).Debug("product_cache_set_failed", "product_id", p.ID, "error", err)
	}
}

func (c *ProductCache) Invalidate(ctx context.Context, ids ...uuid.UUID) {
	if !c.enabled() || len(ids) == 0 {
		return
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, Key(id))
	}
	if err := c.Client.Del(ctx, keys...).Err(); err != nil {
		logging.FromContext(ctx).Warn("product_cache_invalidate_failed", "keys", len(keys), "error", err)
	}
}

func (c *ProductCache) Ping(ctx context.Context) error {
	if !c.enabled() {
		return nil
	}
	return c.Client.Ping(ctx).Err()
}
