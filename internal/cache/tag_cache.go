package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// TagListKey タグ一覧をキャッシュするRedisキー
const TagListKey = "cache:tags"

// TagCache タグ名一覧のキャッシュ
type TagCache interface {
	Get(ctx context.Context) ([]string, bool)
	Set(ctx context.Context, tags []string)
	Invalidate(ctx context.Context)
}

// redisTagCache Redis版TagCache
type redisTagCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewTagCache TagCacheを作成（rdbがnilならキャッシュしない）
func NewTagCache(rdb *redis.Client, ttl time.Duration) TagCache {
	if rdb == nil {
		return noopTagCache{}
	}
	return &redisTagCache{rdb: rdb, ttl: ttl}
}

// Get キャッシュされたタグ一覧を取得
func (c *redisTagCache) Get(ctx context.Context) ([]string, bool) {
	data, err := c.rdb.Get(ctx, TagListKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Ctx(ctx).Warn().Err(err).Msg("タグキャッシュの取得に失敗しました")
		}
		return nil, false
	}

	var tags []string
	if err := json.Unmarshal(data, &tags); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("タグキャッシュが壊れています")
		return nil, false
	}
	return tags, true
}

// Set タグ一覧をキャッシュ
func (c *redisTagCache) Set(ctx context.Context, tags []string) {
	data, err := json.Marshal(tags)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, TagListKey, data, c.ttl).Err(); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("タグキャッシュの保存に失敗しました")
	}
}

// Invalidate キャッシュを破棄
func (c *redisTagCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Del(ctx, TagListKey).Err(); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("タグキャッシュの破棄に失敗しました")
	}
}

type noopTagCache struct{}

func (noopTagCache) Get(context.Context) ([]string, bool) { return nil, false }
func (noopTagCache) Set(context.Context, []string)        {}
func (noopTagCache) Invalidate(context.Context)           {}
