package controllers

import (
	"net/http"

	"github.com/mediumclone/mediumclone_backend/internal/middlewares"
	"github.com/mediumclone/mediumclone_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// 10MB
const maxAvatarSize = 10 << 20

// UserController ユーザーに関するコントローラー
type UserController struct {
	userService services.UserService
	authService services.AuthService
}

// NewUserController UserControllerを作成
func NewUserController(userService services.UserService, authService services.AuthService) *UserController {
	return &UserController{
		userService: userService,
		authService: authService,
	}
}

// UpdateUserRequest ユーザー更新リクエスト（指定したフィールドのみ更新）
type UpdateUserRequest struct {
	User struct {
		Email    *string `json:"email" binding:"omitempty,email"`
		Username *string `json:"username"`
		Password *string `json:"password"`
		Bio      *string `json:"bio"`
		Image    *string `json:"image"`
	} `json:"user"`
}

// respondUser ユーザーを新しいトークン付きで返す
func (c *UserController) respondUser(ctx *gin.Context, status int, userID uint) {
	user, err := c.userService.GetByID(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	token, err := c.authService.GenerateToken(user)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(status, gin.H{"user": newUserBody(user, token)})
}

// GetMe 自分のユーザー情報を取得
func (c *UserController) GetMe(ctx *gin.Context) {
	c.respondUser(ctx, http.StatusOK, middlewares.CurrentUserID(ctx))
}

// Update 自分のユーザー情報を更新
func (c *UserController) Update(ctx *gin.Context) {
	var req UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	user, err := c.userService.Update(ctx.Request.Context(), middlewares.CurrentUserID(ctx), services.UpdateUserInput{
		Email:    req.User.Email,
		Username: req.User.Username,
		Password: req.User.Password,
		Bio:      req.User.Bio,
		Image:    req.User.Image,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	c.respondUser(ctx, http.StatusOK, user.ID)
}

// UploadImage アバター画像をアップロード（multipartのimageフィールド）
func (c *UserController) UploadImage(ctx *gin.Context) {
	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, maxAvatarSize)

	fileHeader, err := ctx.FormFile("image")
	if err != nil {
		respondBindError(ctx, err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondBindError(ctx, err)
		return
	}
	defer file.Close()

	user, err := c.userService.UploadImage(ctx.Request.Context(), middlewares.CurrentUserID(ctx), file)
	if err != nil {
		respondError(ctx, err)
		return
	}

	c.respondUser(ctx, http.StatusOK, user.ID)
}
