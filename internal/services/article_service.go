package services

import (
	"context"
	"errors"
	"strings"

	"github.com/mediumclone/mediumclone_backend/internal/models"
	"github.com/mediumclone/mediumclone_backend/internal/repository"
	"github.com/mediumclone/mediumclone_backend/internal/utils"

	"gorm.io/gorm"
)

// 一覧取得の件数
const (
	DefaultArticleLimit = 20
	MaxArticleLimit     = 100
)

// ArticleView 閲覧者から見た記事（favoritedとfollowingを含む）
type ArticleView struct {
	Article   *models.Article
	Favorited bool
	Following bool
}

// ListQuery 記事一覧の絞り込み条件（authorとfavoritedはユーザー名）
type ListQuery struct {
	Tag       string
	Author    string
	Favorited string
	Limit     int
	Offset    int
}

// ArticleInput 記事の作成・更新内容（nilのフィールドは変更しない）
type ArticleInput struct {
	Title       *string
	Description *string
	Body        *string
	TagList     *[]string
}

// ArticleService 記事に関するサービスインターフェース
type ArticleService interface {
	List(ctx context.Context, currentUserID uint, query ListQuery) ([]ArticleView, int64, error)
	Feed(ctx context.Context, currentUserID uint, limit, offset int) ([]ArticleView, int64, error)
	GetBySlug(ctx context.Context, currentUserID uint, slug string) (*ArticleView, error)
	Create(ctx context.Context, authorID uint, input ArticleInput) (*ArticleView, error)
	Update(ctx context.Context, currentUserID uint, slug string, input ArticleInput) (*ArticleView, error)
	Delete(ctx context.Context, currentUserID uint, slug string) error
	AddFavorite(ctx context.Context, currentUserID uint, slug string) (*ArticleView, error)
	RemoveFavorite(ctx context.Context, currentUserID uint, slug string) (*ArticleView, error)
}

// articleService ArticleServiceの実装
type articleService struct {
	articleRepo repository.ArticleRepository
	userRepo    repository.UserRepository
	followRepo  repository.FollowRepository
	tagService  TagService
	events      ArticleEventPublisher
}

// NewArticleService ArticleServiceを作成
func NewArticleService(
	articleRepo repository.ArticleRepository,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	tagService TagService,
	events ArticleEventPublisher,
) ArticleService {
	if events == nil {
		events = NoopEventPublisher{}
	}
	return &articleService{
		articleRepo: articleRepo,
		userRepo:    userRepo,
		followRepo:  followRepo,
		tagService:  tagService,
		events:      events,
	}
}

// clampLimit 件数を既定値と上限に収める
func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultArticleLimit
	}
	if limit > MaxArticleLimit {
		return MaxArticleLimit
	}
	return limit
}

func clampOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

// List 記事一覧を取得
func (s *articleService) List(ctx context.Context, currentUserID uint, query ListQuery) ([]ArticleView, int64, error) {
	filter := repository.ArticleFilter{
		Tag:    strings.TrimSpace(query.Tag),
		Limit:  clampLimit(query.Limit),
		Offset: clampOffset(query.Offset),
	}

	// 存在しないユーザー名での絞り込みは空の結果になる
	if query.Author != "" {
		author, err := s.userRepo.FindByUsername(ctx, query.Author)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, 0, err
			}
			filter.AuthorIDs = []uint{}
		} else {
			filter.AuthorIDs = []uint{author.ID}
		}
	}

	if query.Favorited != "" {
		user, err := s.userRepo.FindByUsername(ctx, query.Favorited)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, 0, err
			}
			filter.IDs = []uint{}
		} else {
			ids, err := s.articleRepo.FavoritedArticleIDs(ctx, user.ID)
			if err != nil {
				return nil, 0, err
			}
			filter.IDs = ids
		}
	}

	articles, total, err := s.articleRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	views, err := s.annotate(ctx, currentUserID, articles)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// Feed フォロー中のユーザーの記事を新着順で取得
func (s *articleService) Feed(ctx context.Context, currentUserID uint, limit, offset int) ([]ArticleView, int64, error) {
	followingIDs, err := s.followRepo.FollowingIDs(ctx, currentUserID)
	if err != nil {
		return nil, 0, err
	}

	articles, total, err := s.articleRepo.List(ctx, repository.ArticleFilter{
		AuthorIDs: followingIDs,
		Limit:     clampLimit(limit),
		Offset:    clampOffset(offset),
	})
	if err != nil {
		return nil, 0, err
	}

	views, err := s.annotate(ctx, currentUserID, articles)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// annotate 閲覧者のお気に入り・フォロー状態を付与
func (s *articleService) annotate(ctx context.Context, currentUserID uint, articles []models.Article) ([]ArticleView, error) {
	views := make([]ArticleView, 0, len(articles))
	if len(articles) == 0 {
		return views, nil
	}

	articleIDs := make([]uint, 0, len(articles))
	authorIDs := make([]uint, 0, len(articles))
	for _, article := range articles {
		articleIDs = append(articleIDs, article.ID)
		authorIDs = append(authorIDs, article.AuthorID)
	}

	favorited, err := s.articleRepo.FavoritedAmong(ctx, currentUserID, articleIDs)
	if err != nil {
		return nil, err
	}
	following, err := s.followRepo.FollowingAmong(ctx, currentUserID, authorIDs)
	if err != nil {
		return nil, err
	}

	for i := range articles {
		article := &articles[i]
		views = append(views, ArticleView{
			Article:   article,
			Favorited: favorited[article.ID],
			Following: following[article.AuthorID],
		})
	}
	return views, nil
}

func (s *articleService) view(ctx context.Context, currentUserID uint, article *models.Article) (*ArticleView, error) {
	views, err := s.annotate(ctx, currentUserID, []models.Article{*article})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *articleService) findBySlug(ctx context.Context, slug string) (*models.Article, error) {
	article, err := s.articleRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("記事が見つかりません")
		}
		return nil, err
	}
	return article, nil
}

// findOwned 記事を取得し著者本人か確認
func (s *articleService) findOwned(ctx context.Context, currentUserID uint, slug string) (*models.Article, error) {
	article, err := s.findBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if article.AuthorID != currentUserID {
		return nil, NewForbiddenError("この記事を変更する権限がありません")
	}
	return article, nil
}

// GetBySlug スラッグで記事を取得
func (s *articleService) GetBySlug(ctx context.Context, currentUserID uint, slug string) (*ArticleView, error) {
	article, err := s.findBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, currentUserID, article)
}

// Create 新しい記事を作成
func (s *articleService) Create(ctx context.Context, authorID uint, input ArticleInput) (*ArticleView, error) {
	var title string
	if input.Title != nil {
		title = strings.TrimSpace(*input.Title)
	}
	if title == "" {
		return nil, NewUnprocessableError("タイトルは必須です")
	}

	author, err := s.userRepo.FindByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewUnauthorizedError("ユーザーが見つかりません")
		}
		return nil, err
	}

	article := &models.Article{
		Slug:     utils.GenerateSlug(title),
		Title:    title,
		TagList:  models.StringList{},
		AuthorID: author.ID,
	}
	if input.Description != nil {
		article.Description = *input.Description
	}
	if input.Body != nil {
		article.Body = *input.Body
	}
	if input.TagList != nil {
		article.TagList = models.NormalizeTags(*input.TagList)
	}

	if err := s.articleRepo.Create(ctx, article); err != nil {
		return nil, err
	}
	article.Author = *author

	if err := s.tagService.Register(ctx, article.TagList); err != nil {
		return nil, err
	}

	s.events.Publish(ctx, NewArticleEvent(ArticleCreated, article, authorID))

	// 新規記事はお気に入り・フォローされていない
	return &ArticleView{Article: article}, nil
}

// Update 記事を更新（著者のみ）
func (s *articleService) Update(ctx context.Context, currentUserID uint, slug string, input ArticleInput) (*ArticleView, error) {
	article, err := s.findOwned(ctx, currentUserID, slug)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, NewUnprocessableError("タイトルは空にできません")
		}
		// タイトルが変わったらスラッグを作り直す
		if title != article.Title {
			article.Title = title
			article.Slug = utils.GenerateSlug(title)
		}
	}
	if input.Description != nil {
		article.Description = *input.Description
	}
	if input.Body != nil {
		article.Body = *input.Body
	}
	if input.TagList != nil {
		article.TagList = models.NormalizeTags(*input.TagList)
	}

	if err := s.articleRepo.Update(ctx, article); err != nil {
		return nil, err
	}

	if input.TagList != nil {
		if err := s.tagService.Register(ctx, article.TagList); err != nil {
			return nil, err
		}
	}

	s.events.Publish(ctx, NewArticleEvent(ArticleUpdated, article, currentUserID))

	return s.view(ctx, currentUserID, article)
}

// Delete 記事を削除（著者のみ）
func (s *articleService) Delete(ctx context.Context, currentUserID uint, slug string) error {
	article, err := s.findOwned(ctx, currentUserID, slug)
	if err != nil {
		return err
	}

	if err := s.articleRepo.Delete(ctx, article.ID); err != nil {
		return err
	}

	s.events.Publish(ctx, NewArticleEvent(ArticleDeleted, article, currentUserID))
	return nil
}

// AddFavorite 記事をお気に入りに追加（既にお気に入りなら何もしない）
func (s *articleService) AddFavorite(ctx context.Context, currentUserID uint, slug string) (*ArticleView, error) {
	article, err := s.findBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	added, err := s.articleRepo.AddFavorite(ctx, currentUserID, article.ID)
	if err != nil {
		return nil, err
	}
	if added {
		article.FavoritesCount++
		s.events.Publish(ctx, NewArticleEvent(ArticleFavorited, article, currentUserID))
	}

	return s.view(ctx, currentUserID, article)
}

// RemoveFavorite 記事をお気に入りから削除（お気に入りでなければ何もしない）
func (s *articleService) RemoveFavorite(ctx context.Context, currentUserID uint, slug string) (*ArticleView, error) {
	article, err := s.findBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	removed, err := s.articleRepo.RemoveFavorite(ctx, currentUserID, article.ID)
	if err != nil {
		return nil, err
	}
	if removed && article.FavoritesCount > 0 {
		article.FavoritesCount--
	}
	if removed {
		s.events.Publish(ctx, NewArticleEvent(ArticleUnfavorited, article, currentUserID))
	}

	return s.view(ctx, currentUserID, article)
}
