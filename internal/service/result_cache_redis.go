package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"role-profile/internal/domain"
	"role-profile/internal/metrics"
)

// ResultCache memoises pipeline outputs. Scoring is a pure function of the
// answers and the tables content, so no user data is involved.
type ResultCache interface {
	Get(ctx context.Context, key string) (ScoringOutput, bool)
	Set(ctx context.Context, key string, out ScoringOutput)
}

type redisResultCache struct {
	client  redisGetSetter
	ttl     time.Duration
	timeout time.Duration
	logger  *zap.Logger
}

type redisGetSetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// NewRedisResultCache returns nil when client is nil so callers can pass the
// result straight to NewScoringPipeline.
func NewRedisResultCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) ResultCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &redisResultCache{
		client:  client,
		ttl:     ttl,
		timeout: 500 * time.Millisecond,
		logger:  logger,
	}
}

// CacheKey identifies an answer vector under one set of tables. The version
// keeps keys readable; the fingerprint separates tables edited in place.
func CacheKey(version, fingerprint string, answers domain.AnswerVector) string {
	parts := make([]string, len(answers))
	for i, a := range answers {
		parts[i] = strconv.Itoa(a)
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, ",")))
	return "scoring:" + version + ":" + fingerprint + ":" + hex.EncodeToString(sum[:])
}

// Get fails open: any redis or decode error is reported as a miss.
func (c *redisResultCache) Get(ctx context.Context, key string) (ScoringOutput, bool) {
	if c == nil || c.client == nil {
		return ScoringOutput{}, false
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.ResultCacheLookups.WithLabelValues("miss").Inc()
		} else {
			metrics.ResultCacheLookups.WithLabelValues("error").Inc()
			c.logger.Warn("result cache get failed", zap.Error(err))
		}
		return ScoringOutput{}, false
	}

	var out ScoringOutput
	if err := json.Unmarshal(data, &out); err != nil {
		metrics.ResultCacheLookups.WithLabelValues("error").Inc()
		c.logger.Warn("result cache entry unreadable", zap.String("key", key), zap.Error(err))
		return ScoringOutput{}, false
	}
	metrics.ResultCacheLookups.WithLabelValues("hit").Inc()
	return out, true
}

func (c *redisResultCache) Set(ctx context.Context, key string, out ScoringOutput) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(out)
	if err != nil {
		c.logger.Warn("result cache encode failed", zap.Error(err))
		return
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("result cache set failed", zap.Error(err))
	}
}
