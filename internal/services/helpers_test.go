package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mediumclone/mediumclone_backend/internal/cache"
	"github.com/mediumclone/mediumclone_backend/internal/models"
	"github.com/mediumclone/mediumclone_backend/internal/repository"
	"github.com/mediumclone/mediumclone_backend/internal/services"
	"github.com/mediumclone/mediumclone_backend/internal/testutil"
	"github.com/mediumclone/mediumclone_backend/internal/utils"
)

// recordingPublisher 送信されたイベントを記録する
type recordingPublisher struct {
	mu     sync.Mutex
	events []services.ArticleEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event services.ArticleEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type testEnv struct {
	users    repository.UserRepository
	articles repository.ArticleRepository
	follows  repository.FollowRepository
	tags     repository.TagRepository
	events   *recordingPublisher

	auth       services.AuthService
	profile    services.ProfileService
	tagService services.TagService
	article    services.ArticleService
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewDB(t)

	env := &testEnv{
		users:    repository.NewUserRepository(db),
		articles: repository.NewArticleRepository(db),
		follows:  repository.NewFollowRepository(db),
		tags:     repository.NewTagRepository(db),
		events:   &recordingPublisher{},
	}
	env.auth = services.NewAuthService(env.users, utils.NewTokenSigner("test-secret", time.Hour))
	env.profile = services.NewProfileService(env.users, env.follows)
	env.tagService = services.NewTagService(env.tags, cache.NewTagCache(nil, 0))
	env.article = services.NewArticleService(env.articles, env.users, env.follows, env.tagService, env.events)
	return env
}

func (e *testEnv) register(t *testing.T, name string) *models.User {
	t.Helper()
	user, _, err := e.auth.Register(context.Background(), name, name+"@example.com", "password")
	if err != nil {
		t.Fatalf("ユーザー登録に失敗しました: %v", err)
	}
	return user
}

func (e *testEnv) createArticle(t *testing.T, author *models.User, title string, tags ...string) *models.Article {
	t.Helper()
	view, err := e.article.Create(context.Background(), author.ID, services.ArticleInput{
		Title:   &title,
		Body:    strPtr("body of " + title),
		TagList: &tags,
	})
	if err != nil {
		t.Fatalf("記事作成に失敗しました: %v", err)
	}
	return view.Article
}

func strPtr(s string) *string { return &s }

// assertStatus errがAppErrorでstatusを持つか確認
func assertStatus(t *testing.T, err error, status int) {
	t.Helper()
	var appErr *services.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("AppErrorではありません: %v", err)
	}
	if appErr.Status != status {
		t.Errorf("ステータスが不正です: got %d (%s), want %d", appErr.Status, appErr.Message, status)
	}
}
