package services_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/mediumclone/mediumclone_backend/internal/repository"
	"github.com/mediumclone/mediumclone_backend/internal/services"
	"github.com/mediumclone/mediumclone_backend/internal/testutil"
)

// memoryTagCache テスト用のメモリ上のTagCache
type memoryTagCache struct {
	tags        []string
	cached      bool
	invalidated int
}

func (c *memoryTagCache) Get(context.Context) ([]string, bool) { return c.tags, c.cached }

func (c *memoryTagCache) Set(_ context.Context, tags []string) {
	c.tags = tags
	c.cached = true
}

func (c *memoryTagCache) Invalidate(context.Context) {
	c.tags = nil
	c.cached = false
	c.invalidated++
}

func TestTagServiceCache(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	tagCache := &memoryTagCache{}
	tags := services.NewTagService(repository.NewTagRepository(db), tagCache)

	if err := tags.Register(ctx, []string{"go", "dragons"}); err != nil {
		t.Fatalf("Register に失敗しました: %v", err)
	}
	if tagCache.invalidated != 1 {
		t.Errorf("新規タグでキャッシュが破棄されていません: %d", tagCache.invalidated)
	}

	got, err := tags.List(ctx)
	if err != nil {
		t.Fatalf("List に失敗しました: %v", err)
	}
	if want := []string{"dragons", "go"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if !tagCache.cached {
		t.Error("一覧がキャッシュされていません")
	}

	// 既存タグのみなら破棄しない
	if err := tags.Register(ctx, []string{"go"}); err != nil {
		t.Fatalf("Register に失敗しました: %v", err)
	}
	if tagCache.invalidated != 1 {
		t.Errorf("既存タグでキャッシュが破棄されました: %d", tagCache.invalidated)
	}

	// キャッシュがあればDBを見ない
	tagCache.tags = []string{"cached"}
	got, err = tags.List(ctx)
	if err != nil {
		t.Fatalf("List に失敗しました: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"cached"}) {
		t.Errorf("キャッシュが使われていません: %v", got)
	}
}
