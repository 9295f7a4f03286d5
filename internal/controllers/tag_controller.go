package controllers

import (
	"net/http"

	"github.com/mediumclone/mediumclone_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// TagController タグに関するコントローラー
type TagController struct {
	tagService services.TagService
}

// NewTagController TagControllerを作成
func NewTagController(tagService services.TagService) *TagController {
	return &TagController{
		tagService: tagService,
	}
}

// List タグ一覧を取得
func (c *TagController) List(ctx *gin.Context) {
	tags, err := c.tagService.List(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"tags": tags})
}
