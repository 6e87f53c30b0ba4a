package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rohits-web03/ideaorbit/internal/config"
	"github.com/rohits-web03/ideaorbit/internal/models"
	"gorm.io/gorm"
)

const countTTL = time.Hour

// CountCache keeps per-idea like/connection counts in Redis. The database
// rows stay authoritative; the cache only spares the COUNT query on hot
// ideas and is invalidated on every mutation.
type CountCache struct {
	Client *redis.Client
}

// NewCountCache initializes the Redis client. Only Addr is mandatory.
func NewCountCache(cfg config.RedisConfig) *CountCache {
	opts := &redis.Options{Addr: cfg.Addr}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB != 0 {
		opts.DB = cfg.DB
	}
	return &CountCache{Client: redis.NewClient(opts)}
}

func (c *CountCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

func likeKey(ideaID uuid.UUID) string {
	return fmt.Sprintf("ideas:likes:%s", ideaID)
}

func connectionKey(ideaID uuid.UUID) string {
	return fmt.Sprintf("ideas:connections:%s", ideaID)
}

// Get returns the cached count for key. The second return reports a hit.
func (c *CountCache) get(ctx context.Context, key string) (int64, bool, error) {
	val, err := c.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	} else if err != nil {
		return 0, false, err
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

func (c *CountCache) set(ctx context.Context, key string, count int64) error {
	return c.Client.Set(ctx, key, count, countTTL).Err()
}

// Invalidate drops both counts for an idea after a mutation.
func (c *CountCache) Invalidate(ctx context.Context, ideaID uuid.UUID) error {
	return c.Client.Del(ctx, likeKey(ideaID), connectionKey(ideaID)).Err()
}

// Counts resolves an idea's like/connection counts, cache first with the
// database as fallback. A nil cache degrades to plain COUNT queries.
type Counts struct {
	db    *gorm.DB
	cache *CountCache
}

func NewCounts(db *gorm.DB, cache *CountCache) *Counts {
	return &Counts{db: db, cache: cache}
}

func (c *Counts) Likes(ctx context.Context, ideaID uuid.UUID) (int64, error) {
	return c.resolve(ctx, likeKey(ideaID), &models.Like{}, ideaID)
}

func (c *Counts) Connections(ctx context.Context, ideaID uuid.UUID) (int64, error) {
	return c.resolve(ctx, connectionKey(ideaID), &models.Connection{}, ideaID)
}

// Invalidate drops cached counts; a nil cache is a no-op.
func (c *Counts) Invalidate(ctx context.Context, ideaID uuid.UUID) {
	if c.cache == nil {
		return
	}
	// cache errors never fail the request
	_ = c.cache.Invalidate(ctx, ideaID)
}

func (c *Counts) resolve(ctx context.Context, key string, model any, ideaID uuid.UUID) (int64, error) {
	if c.cache != nil {
		if n, hit, err := c.cache.get(ctx, key); err == nil && hit {
			return n, nil
		}
	}

	var count int64
	err := c.db.WithContext(ctx).Model(model).Where("idea_id = ?", ideaID).Count(&count).Error
	if err != nil {
		return 0, err
	}

	if c.cache != nil {
		_ = c.cache.set(ctx, key, count)
	}
	return count, nil
}
