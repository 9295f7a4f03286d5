package controllers

import (
	"net/http"

	"github.com/mediumclone/mediumclone_backend/internal/middlewares"
	"github.com/mediumclone/mediumclone_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// ProfileController プロフィールに関するコントローラー
type ProfileController struct {
	profileService services.ProfileService
}

// NewProfileController ProfileControllerを作成
func NewProfileController(profileService services.ProfileService) *ProfileController {
	return &ProfileController{
		profileService: profileService,
	}
}

func respondProfile(ctx *gin.Context, profile *services.Profile, err error) {
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"profile": newProfileBody(profile.User, profile.Following)})
}

// Get プロフィールを取得
func (c *ProfileController) Get(ctx *gin.Context) {
	profile, err := c.profileService.GetProfile(ctx.Request.Context(), middlewares.CurrentUserID(ctx), ctx.Param("username"))
	respondProfile(ctx, profile, err)
}

// Follow ユーザーをフォロー
func (c *ProfileController) Follow(ctx *gin.Context) {
	profile, err := c.profileService.Follow(ctx.Request.Context(), middlewares.CurrentUserID(ctx), ctx.Param("username"))
	respondProfile(ctx, profile, err)
}

// Unfollow フォローを解除
func (c *ProfileController) Unfollow(ctx *gin.Context) {
	profile, err := c.profileService.Unfollow(ctx.Request.Context(), middlewares.CurrentUserID(ctx), ctx.Param("username"))
	respondProfile(ctx, profile, err)
}
