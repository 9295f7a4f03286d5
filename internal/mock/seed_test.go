package mock

import (
	"context"
	"testing"

	"github.com/mediumclone/mediumclone_backend/internal/models"
	"github.com/mediumclone/mediumclone_backend/internal/testutil"
)

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)

	first, err := Seed(ctx, db)
	if err != nil {
		t.Fatalf("Seed に失敗しました: %v", err)
	}
	if first.Users != len(Users) || first.Articles != len(Articles) || first.Follows != len(Follows) {
		t.Errorf("投入件数が不正です: %+v", first)
	}

	second, err := Seed(ctx, db)
	if err != nil {
		t.Fatalf("2回目の Seed に失敗しました: %v", err)
	}
	if second != (Result{}) {
		t.Errorf("2回目は何も投入しないはずです: %+v", second)
	}

	var welcome models.Article
	if err := db.Where("title = ?", "Welcome to Medium clone").First(&welcome).Error; err != nil {
		t.Fatalf("記事が見つかりません: %v", err)
	}
	if welcome.FavoritesCount != 2 {
		t.Errorf("お気に入り数が不正です: %d", welcome.FavoritesCount)
	}

	var count int64
	db.Model(&models.Tag{}).Count(&count)
	if count != int64(len(Tags)) {
		t.Errorf("タグ数が不正です: %d", count)
	}
}
