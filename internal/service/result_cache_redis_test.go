package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"role-profile/internal/domain"
)

type failingRedis struct {
	err error
}

func (f *failingRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx, "get", key)
	cmd.SetErr(f.err)
	return cmd
}

func (f *failingRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx, "set", key, value)
	cmd.SetErr(f.err)
	return cmd
}

func sampleOutput() ScoringOutput {
	return ScoringOutput{
		TablesVersion:      "v1",
		Roles:              []domain.Role{{ID: "leader", Name: "Leader", Percentage: 70}},
		Competencies:       []domain.Competency{{ID: "planning", Name: "Planning", Percentage: 55}},
		TopCompetencies:    []domain.Competency{{ID: "planning", Name: "Planning", Percentage: 55}},
		BottomCompetencies: []domain.Competency{{ID: "planning", Name: "Planning", Percentage: 55}},
		Recommendations:    []string{"one", "two", "three"},
	}
}

func TestCacheKey(t *testing.T) {
	a := CacheKey("v1", "fp", domain.AnswerVector{1, 2, 3})
	assert.True(t, strings.HasPrefix(a, "scoring:v1:fp:"))
	assert.Equal(t, a, CacheKey("v1", "fp", domain.AnswerVector{1, 2, 3}))
	assert.NotEqual(t, a, CacheKey("v2", "fp", domain.AnswerVector{1, 2, 3}))
	assert.NotEqual(t, a, CacheKey("v1", "other", domain.AnswerVector{1, 2, 3}))
	assert.NotEqual(t, a, CacheKey("v1", "fp", domain.AnswerVector{1, 2, 4}))
	assert.NotEqual(t, CacheKey("v1", "fp", domain.AnswerVector{1, 23}), CacheKey("v1", "fp", domain.AnswerVector{12, 3}))
}

func TestRedisResultCacheRoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	cache := NewRedisResultCache(client, 2*time.Minute, zap.NewNop())
	require.NotNil(t, cache)
	ctx := context.Background()

	_, ok := cache.Get(ctx, "scoring:v1:missing")
	assert.False(t, ok)

	cache.Set(ctx, "scoring:v1:abc", sampleOutput())
	got, ok := cache.Get(ctx, "scoring:v1:abc")
	require.True(t, ok)
	assert.Equal(t, sampleOutput(), got)
	assert.Equal(t, 2*time.Minute, mr.TTL("scoring:v1:abc"))
}

func TestRedisResultCacheCorruptEntryIsMiss(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	require.NoError(t, mr.Set("scoring:v1:bad", "not-json"))
	cache := NewRedisResultCache(client, time.Minute, nil)
	_, ok := cache.Get(context.Background(), "scoring:v1:bad")
	assert.False(t, ok)
}

func TestRedisResultCacheFailsOpen(t *testing.T) {
	c := &redisResultCache{
		client:  &failingRedis{err: errors.New("redis down")},
		ttl:     time.Minute,
		timeout: 100 * time.Millisecond,
		logger:  zap.NewNop(),
	}
	_, ok := c.Get(context.Background(), "k")
	assert.False(t, ok)
	assert.NotPanics(t, func() { c.Set(context.Background(), "k", sampleOutput()) })

	var nilCache *redisResultCache
	_, ok = nilCache.Get(context.Background(), "k")
	assert.False(t, ok)
}

func TestNewRedisResultCacheNilClient(t *testing.T) {
	assert.Nil(t, NewRedisResultCache(nil, time.Minute, nil))
}
