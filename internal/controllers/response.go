package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/mediumclone/mediumclone_backend/internal/models"
	"github.com/mediumclone/mediumclone_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// UserBody ログインユーザーのレスポンス（パスワードは含めない）
type UserBody struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Bio      string `json:"bio"`
	Image    string `json:"image"`
	Token    string `json:"token"`
}

// ProfileBody 公開プロフィールのレスポンス（メールアドレスは含めない）
type ProfileBody struct {
	Username  string `json:"username"`
	Bio       string `json:"bio"`
	Image     string `json:"image"`
	Following bool   `json:"following"`
}

// ArticleBody 記事のレスポンス
type ArticleBody struct {
	Slug           string      `json:"slug"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Body           string      `json:"body"`
	TagList        []string    `json:"tagList"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
	Favorited      bool        `json:"favorited"`
	FavoritesCount int         `json:"favoritesCount"`
	Author         ProfileBody `json:"author"`
}

// ArticleListResponse 記事一覧のレスポンス
type ArticleListResponse struct {
	Articles      []ArticleBody `json:"articles"`
	ArticlesCount int64         `json:"articlesCount"`
}

func newUserBody(user *models.User, token string) UserBody {
	return UserBody{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
		Bio:      user.Bio,
		Image:    user.Image,
		Token:    token,
	}
}

func newProfileBody(user *models.User, following bool) ProfileBody {
	return ProfileBody{
		Username:  user.Username,
		Bio:       user.Bio,
		Image:     user.Image,
		Following: following,
	}
}

func newArticleBody(view *services.ArticleView) ArticleBody {
	article := view.Article
	tags := []string(article.TagList)
	if tags == nil {
		tags = []string{}
	}
	return ArticleBody{
		Slug:           article.Slug,
		Title:          article.Title,
		Description:    article.Description,
		Body:           article.Body,
		TagList:        tags,
		CreatedAt:      article.CreatedAt,
		UpdatedAt:      article.UpdatedAt,
		Favorited:      view.Favorited,
		FavoritesCount: article.FavoritesCount,
		Author:         newProfileBody(&article.Author, view.Following),
	}
}

func newArticleList(views []services.ArticleView, total int64) ArticleListResponse {
	articles := make([]ArticleBody, 0, len(views))
	for i := range views {
		articles = append(articles, newArticleBody(&views[i]))
	}
	return ArticleListResponse{Articles: articles, ArticlesCount: total}
}

// respondError サービスのエラーをHTTPレスポンスに変換
func respondError(ctx *gin.Context, err error) {
	var appErr *services.AppError
	if errors.As(err, &appErr) {
		ctx.JSON(appErr.Status, gin.H{"error": appErr.Message})
		return
	}

	log.Ctx(ctx.Request.Context()).Error().Err(err).
		Str("path", ctx.Request.URL.Path).
		Msg("リクエストの処理に失敗しました")
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": "サーバーエラーが発生しました"})
}

// respondBindError リクエストのバインドエラーは422
func respondBindError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
}
