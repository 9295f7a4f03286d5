package services_test

import (
	"context"
	"net/http"
	"reflect"
	"regexp"
	"testing"

	"github.com/mediumclone/mediumclone_backend/internal/services"
)

func TestCreateArticle(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t)
	jake := env.register(t, "jake")

	article := env.createArticle(t, jake, "How to train your dragon", "dragons", " training ", "dragons", "")

	if !regexp.MustCompile(`^how-to-train-your-dragon-[0-9a-z]{1,6}$`).MatchString(article.Slug) {
		t.Errorf("スラッグの形式が不正です: %s", article.Slug)
	}
	if want := []string{"dragons", "training"}; !reflect.DeepEqual([]string(article.TagList), want) {
		t.Errorf("タグが正規化されていません: %v", article.TagList)
	}
	if article.Author.Username != "jake" {
		t.Errorf("著者が設定されていません: %+v", article.Author)
	}

	tags, err := env.tagService.List(ctx)
	if err != nil {
		t.Fatalf("タグ一覧の取得に失敗しました: %v", err)
	}
	if want := []string{"dragons", "training"}; !reflect.DeepEqual(tags, want) {
		t.Errorf("タグが登録されていません: %v", tags)
	}

	if got := env.events.types(); len(got) != 1 || got[0] != services.ArticleCreated {
		t.Errorf("作成イベントが送信されていません: %v", got)
	}
}

func TestCreateArticleWithoutTitle(t *testing.T) {
	env := newEnv(t)
	jake := env.register(t, "jake")

	_, err := env.article.Create(context.Background(), jake.ID, services.ArticleInput{Title: strPtr("  ")})
	assertStatus(t, err, http.StatusUnprocessableEntity)

	_, err = env.article.Create(context.Background(), jake.ID, services.ArticleInput{})
	assertStatus(t, err, http.StatusUnprocessableEntity)
}

func TestCreateArticleWithoutTags(t *testing.T) {
	env := newEnv(t)
	jake := env.register(t, "jake")

	view, err := env.article.Create(context.Background(), jake.ID, services.ArticleInput{Title: strPtr("No tags")})
	if err != nil {
		t.Fatalf("Create に失敗しました: %v", err)
	}
	if view.Article.TagList == nil || len(view.Article.TagList) != 0 {
		t.Errorf("タグ一覧は空スライスになるべきです: %#v", view.Article.TagList)
	}
}

func TestUpdateAndDeleteRequireAuthor(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t)
	jake := env.register(t, "jake")
	jane := env.register(t, "jane")
	article := env.createArticle(t, jake, "Original title")

	_, err := env.article.Update(ctx, jane.ID, article.Slug, services.ArticleInput{Body: strPtr("hijacked")})
	assertStatus(t, err, http.StatusForbidden)

	err = env.article.Delete(ctx, jane.ID, article.Slug)
	assertStatus(t, err, http.StatusForbidden)

	_, err = env.article.Update(ctx, jake.ID, "missing", services.ArticleInput{})
	assertStatus(t, err, http.StatusNotFound)

	err = env.article.Delete(ctx, jake.ID, "missing")
	assertStatus(t, err, http.StatusNotFound)

	updated, err := env.article.Update(ctx, jake.ID, article.Slug, services.ArticleInput{
		Title: strPtr("Brand new title"),
		Body:  strPtr("new body"),
	})
	if err != nil {
		t.Fatalf("Update に失敗しました: %v", err)
	}
	if updated.Article.Body != "new body" || updated.Article.Description != "" {
		t.Errorf("更新結果が不正です: %+v", updated.Article)
	}
	if !regexp.MustCompile(`^brand-new-title-[0-9a-z]{1,6}$`).MatchString(updated.Article.Slug) {
		t.Errorf("スラッグが作り直されていません: %s", updated.Article.Slug)
	}
	if updated.Article.UpdatedAt.Before(article.UpdatedAt) {
		t.Errorf("updated_atが更新されていません")
	}

	if _, err := env.article.GetBySlug(ctx, 0, updated.Article.Slug); err != nil {
		t.Errorf("新しいスラッグで取得できません: %v", err)
	}

	if err := env.article.Delete(ctx, jake.ID, updated.Article.Slug); err != nil {
		t.Fatalf("Delete に失敗しました: %v", err)
	}
	_, err = env.article.GetBySlug(ctx, 0, updated.Article.Slug)
	assertStatus(t, err, http.StatusNotFound)

	want := []string{services.ArticleCreated, services.ArticleUpdated, services.ArticleDeleted}
	if got := env.events.types(); !reflect.DeepEqual(got, want) {
		t.Errorf("イベントが不正です: %v", got)
	}
}

func TestFavoriteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t)
	jake := env.register(t, "jake")
	jane := env.register(t, "jane")
	article := env.createArticle(t, jake, "Favorite me")

	for i := 0; i < 2; i++ {
		view, err := env.article.AddFavorite(ctx, jane.ID, article.Slug)
		if err != nil {
			t.Fatalf("AddFavorite に失敗しました: %v", err)
		}
		if !view.Favorited || view.Article.FavoritesCount != 1 {
			t.Errorf("%d回目: favorited=%v count=%d", i+1, view.Favorited, view.Article.FavoritesCount)
		}
	}

	for i := 0; i < 2; i++ {
		view, err := env.article.RemoveFavorite(ctx, jane.ID, article.Slug)
		if err != nil {
			t.Fatalf("RemoveFavorite に失敗しました: %v", err)
		}
		if view.Favorited || view.Article.FavoritesCount != 0 {
			t.Errorf("%d回目: favorited=%v count=%d", i+1, view.Favorited, view.Article.FavoritesCount)
		}
	}

	// お気に入りしていない記事の解除も何もしない
	view, err := env.article.RemoveFavorite(ctx, jake.ID, article.Slug)
	if err != nil {
		t.Fatalf("RemoveFavorite に失敗しました: %v", err)
	}
	if view.Article.FavoritesCount != 0 {
		t.Errorf("件数が負になっています: %d", view.Article.FavoritesCount)
	}

	_, err = env.article.AddFavorite(ctx, jane.ID, "missing")
	assertStatus(t, err, http.StatusNotFound)

	want := []string{services.ArticleCreated, services.ArticleFavorited, services.ArticleUnfavorited}
	if got := env.events.types(); !reflect.DeepEqual(got, want) {
		t.Errorf("イベントが不正です: %v", got)
	}
}

func TestListArticles(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t)
	jake := env.register(t, "jake")
	jane := env.register(t, "jane")
	lonely := env.register(t, "lonely")

	a1 := env.createArticle(t, jake, "Go channels", "go")
	env.createArticle(t, jake, "Golang generics", "golang")
	a3 := env.createArticle(t, jane, "Dragons", "dragons", "go")

	if _, err := env.article.AddFavorite(ctx, jane.ID, a1.Slug); err != nil {
		t.Fatalf("AddFavorite に失敗しました: %v", err)
	}

	cases := []struct {
		name  string
		query services.ListQuery
		want  []string
		total int64
	}{
		{"all", services.ListQuery{}, nil, 3},
		{"tag exact match", services.ListQuery{Tag: "go"}, []string{a3.Slug, a1.Slug}, 2},
		{"author", services.ListQuery{Author: "jane"}, []string{a3.Slug}, 1},
		{"unknown author", services.ListQuery{Author: "ghost"}, []string{}, 0},
		{"favorited", services.ListQuery{Favorited: "jane"}, []string{a1.Slug}, 1},
		{"favorited none", services.ListQuery{Favorited: "lonely"}, []string{}, 0},
		{"favorited unknown", services.ListQuery{Favorited: "ghost"}, []string{}, 0},
		{"limit", services.ListQuery{Limit: 1}, []string{a3.Slug}, 3},
		{"offset beyond", services.ListQuery{Offset: 10}, []string{}, 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			views, total, err := env.article.List(ctx, lonely.ID, tc.query)
			if err != nil {
				t.Fatalf("List に失敗しました: %v", err)
			}
			if total != tc.total {
				t.Errorf("総数が不正です: got %d, want %d", total, tc.total)
			}
			if tc.want == nil {
				return
			}
			got := make([]string, 0, len(views))
			for _, v := range views {
				got = append(got, v.Article.Slug)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}

	// favoritedは閲覧者ごとに決まる
	views, _, err := env.article.List(ctx, jane.ID, services.ListQuery{Author: "jake"})
	if err != nil {
		t.Fatalf("List に失敗しました: %v", err)
	}
	for _, v := range views {
		if v.Favorited != (v.Article.ID == a1.ID) {
			t.Errorf("%s のfavoritedが不正です: %v", v.Article.Slug, v.Favorited)
		}
	}

	viewsAnon, _, err := env.article.List(ctx, 0, services.ListQuery{})
	if err != nil {
		t.Fatalf("List に失敗しました: %v", err)
	}
	for _, v := range viewsAnon {
		if v.Favorited || v.Following {
			t.Errorf("未ログインで%sのフラグが立っています", v.Article.Slug)
		}
	}
}

func TestFeed(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t)
	jake := env.register(t, "jake")
	jane := env.register(t, "jane")
	bob := env.register(t, "bob")

	views, total, err := env.article.Feed(ctx, jake.ID, 0, 0)
	if err != nil {
		t.Fatalf("Feed に失敗しました: %v", err)
	}
	if total != 0 || len(views) != 0 {
		t.Errorf("フォローしていなければ空のはずです: %d %d", total, len(views))
	}

	j1 := env.createArticle(t, jane, "Jane one")
	env.createArticle(t, bob, "Bob one")
	j2 := env.createArticle(t, jane, "Jane two")

	if _, err := env.profile.Follow(ctx, jake.ID, "jane"); err != nil {
		t.Fatalf("Follow に失敗しました: %v", err)
	}

	views, total, err = env.article.Feed(ctx, jake.ID, 0, 0)
	if err != nil {
		t.Fatalf("Feed に失敗しました: %v", err)
	}
	if total != 2 || len(views) != 2 {
		t.Fatalf("フィードの件数が不正です: %d %d", total, len(views))
	}
	if views[0].Article.ID != j2.ID || views[1].Article.ID != j1.ID {
		t.Errorf("新着順になっていません: %s, %s", views[0].Article.Slug, views[1].Article.Slug)
	}
	if !views[0].Following {
		t.Error("フォロー中の著者なのにfollowingがfalseです")
	}

	views, total, err = env.article.Feed(ctx, jake.ID, 1, 1)
	if err != nil {
		t.Fatalf("Feed に失敗しました: %v", err)
	}
	if total != 2 || len(views) != 1 || views[0].Article.ID != j1.ID {
		t.Errorf("ページングが不正です: total=%d len=%d", total, len(views))
	}
}
