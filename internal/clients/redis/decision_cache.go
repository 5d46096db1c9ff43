package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/goalflow-ai/goalflow-backend/internal/platform/logger"
	"github.com/goalflow-ai/goalflow-backend/internal/types"
)

// DecisionCache is a read-through hot cache for exact-key decision lookups.
// Misses and errors are both "not cached" — Postgres stays the source of truth.
type DecisionCache interface {
	Get(ctx context.Context, uniqueKey, contextHash string) (*types.DecisionRecord, bool)
	Set(ctx context.Context, rec *types.DecisionRecord, ttl time.Duration)
	Close() error
}

type decisionCache struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
	maxTTL time.Duration
}

func NewDecisionCache(log *logger.Logger) (DecisionCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	prefix := strings.TrimSpace(os.Getenv("REDIS_DECISION_PREFIX"))
	if prefix == "" {
		prefix = "decision"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &decisionCache{
		log:    log.With("service", "RedisDecisionCache"),
		rdb:    rdb,
		prefix: prefix,
		maxTTL: 24 * time.Hour,
	}, nil
}

func (c *decisionCache) key(uniqueKey, contextHash string) string {
	return c.prefix + ":" + uniqueKey + ":" + contextHash
}

func (c *decisionCache) Get(ctx context.Context, uniqueKey, contextHash string) (*types.DecisionRecord, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, c.key(uniqueKey, contextHash)).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Debug("redis get failed", "error", err)
		}
		return nil, false
	}
	var rec types.DecisionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		c.log.Warn("redis cached record unparseable, dropping", "error", err)
		_ = c.rdb.Del(ctx, c.key(uniqueKey, contextHash)).Err()
		return nil, false
	}
	return &rec, true
}

func (c *decisionCache) Set(ctx context.Context, rec *types.DecisionRecord, ttl time.Duration) {
	if c == nil || c.rdb == nil || rec == nil {
		return
	}
	if ttl <= 0 || ttl > c.maxTTL {
		ttl = c.maxTTL
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, c.key(rec.UniqueKey, rec.ContextHash), raw, ttl).Err(); err != nil {
		c.log.Debug("redis set failed", "error", err)
	}
}

func (c *decisionCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
