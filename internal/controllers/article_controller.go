package controllers

import (
	"net/http"
	"strconv"

	"github.com/mediumclone/mediumclone_backend/internal/middlewares"
	"github.com/mediumclone/mediumclone_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// ArticleController 記事に関するコントローラー
type ArticleController struct {
	articleService services.ArticleService
}

// NewArticleController ArticleControllerを作成
func NewArticleController(articleService services.ArticleService) *ArticleController {
	return &ArticleController{
		articleService: articleService,
	}
}

// ArticleRequest 記事の作成・更新リクエスト
type ArticleRequest struct {
	Article struct {
		Title       *string   `json:"title"`
		Description *string   `json:"description"`
		Body        *string   `json:"body"`
		TagList     *[]string `json:"tagList"`
	} `json:"article"`
}

func (r ArticleRequest) input() services.ArticleInput {
	return services.ArticleInput{
		Title:       r.Article.Title,
		Description: r.Article.Description,
		Body:        r.Article.Body,
		TagList:     r.Article.TagList,
	}
}

// queryInt 数値のクエリパラメータを解析（不正なら既定値）
func queryInt(ctx *gin.Context, key string, def int) int {
	value, err := strconv.Atoi(ctx.DefaultQuery(key, strconv.Itoa(def)))
	if err != nil || value < 0 {
		return def
	}
	return value
}

func respondArticle(ctx *gin.Context, status int, view *services.ArticleView, err error) {
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(status, gin.H{"article": newArticleBody(view)})
}

// List 記事一覧を取得
func (c *ArticleController) List(ctx *gin.Context) {
	query := services.ListQuery{
		Tag:       ctx.Query("tag"),
		Author:    ctx.Query("author"),
		Favorited: ctx.Query("favorited"),
		Limit:     queryInt(ctx, "limit", services.DefaultArticleLimit),
		Offset:    queryInt(ctx, "offset", 0),
	}

	views, total, err := c.articleService.List(ctx.Request.Context(), middlewares.CurrentUserID(ctx), query)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newArticleList(views, total))
}

// Feed フォロー中のユーザーの記事一覧
func (c *ArticleController) Feed(ctx *gin.Context) {
	views, total, err := c.articleService.Feed(
		ctx.Request.Context(),
		middlewares.CurrentUserID(ctx),
		queryInt(ctx, "limit", services.DefaultArticleLimit),
		queryInt(ctx, "offset", 0),
	)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newArticleList(views, total))
}

// Get スラッグで記事を取得
func (c *ArticleController) Get(ctx *gin.Context) {
	view, err := c.articleService.GetBySlug(ctx.Request.Context(), middlewares.CurrentUserID(ctx), ctx.Param("slug"))
	respondArticle(ctx, http.StatusOK, view, err)
}

// Create 新しい記事を作成
func (c *ArticleController) Create(ctx *gin.Context) {
	var req ArticleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	view, err := c.articleService.Create(ctx.Request.Context(), middlewares.CurrentUserID(ctx), req.input())
	respondArticle(ctx, http.StatusCreated, view, err)
}

// Update 記事を更新
func (c *ArticleController) Update(ctx *gin.Context) {
	var req ArticleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	view, err := c.articleService.Update(ctx.Request.Context(), middlewares.CurrentUserID(ctx), ctx.Param("slug"), req.input())
	respondArticle(ctx, http.StatusOK, view, err)
}

// Delete 記事を削除
func (c *ArticleController) Delete(ctx *gin.Context) {
	if err := c.articleService.Delete(ctx.Request.Context(), middlewares.CurrentUserID(ctx), ctx.Param("slug")); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{})
}

// Favorite お気に入りに追加
func (c *ArticleController) Favorite(ctx *gin.Context) {
	view, err := c.articleService.AddFavorite(ctx.Request.Context(), middlewares.CurrentUserID(ctx), ctx.Param("slug"))
	respondArticle(ctx, http.StatusOK, view, err)
}

// Unfavorite お気に入りから削除
func (c *ArticleController) Unfavorite(ctx *gin.Context) {
	view, err := c.articleService.RemoveFavorite(ctx.Request.Context(), middlewares.CurrentUserID(ctx), ctx.Param("slug"))
	respondArticle(ctx, http.StatusOK, view, err)
}
