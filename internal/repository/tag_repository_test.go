package repository_test

import (
	"context"
	"testing"

	"github.com/mediumclone/mediumclone_backend/internal/repository"
	"github.com/mediumclone/mediumclone_backend/internal/testutil"
)

func TestTagRepository(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewTagRepository(testutil.NewDB(t))

	for _, name := range []string{"golang", "go", " dragons "} {
		if _, created, err := repo.FindOrCreate(ctx, name); err != nil || !created {
			t.Fatalf("FindOrCreate(%q): created=%v err=%v", name, created, err)
		}
	}

	tag, created, err := repo.FindOrCreate(ctx, "go")
	if err != nil || created {
		t.Fatalf("既存タグが再作成されました: created=%v err=%v", created, err)
	}
	if tag.Name != "go" {
		t.Errorf("既存タグが返されていません: %+v", tag)
	}
	if _, _, err := repo.FindOrCreate(ctx, "  "); err == nil {
		t.Error("空のタグ名でエラーになりません")
	}

	tags, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List に失敗しました: %v", err)
	}
	got := make([]string, 0, len(tags))
	for _, tag := range tags {
		got = append(got, tag.Name)
	}
	if len(got) != 3 || got[0] != "dragons" || got[1] != "go" || got[2] != "golang" {
		t.Errorf("名前順の一覧になっていません: %v", got)
	}
}
