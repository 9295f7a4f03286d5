package cache

import (
	"context"
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestNoopTagCache(t *testing.T) {
	c := NewTagCache(nil, time.Minute)
	ctx := context.Background()

	c.Set(ctx, []string{"go"})
	if _, ok := c.Get(ctx); ok {
		t.Error("Redisなしではキャッシュされないはずです")
	}
	c.Invalidate(ctx)
}

// Redisへの実接続をテストする（REDIS_ADDRが設定されている場合のみ実行）
func TestRedisTagCache(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR が設定されていないため、テストをスキップします")
	}

	ctx := context.Background()
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		t.Fatalf("Redisへの接続に失敗しました: %v", err)
	}

	c := NewTagCache(rdb, time.Minute)
	c.Invalidate(ctx)

	want := []string{"dragons", "go"}
	c.Set(ctx, want)
	got, ok := c.Get(ctx)
	if !ok || !reflect.DeepEqual(got, want) {
		t.Errorf("got %v (%v), want %v", got, ok, want)
	}

	c.Invalidate(ctx)
	if _, ok := c.Get(ctx); ok {
		t.Error("破棄後もキャッシュが残っています")
	}
}
