package middlewares

import (
	"net/http"
	"strings"

	"github.com/mediumclone/mediumclone_backend/internal/models"
	"github.com/mediumclone/mediumclone_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// コンテキストにユーザーを保存するキー
const userKey = "user"

// tokenFromHeader "Bearer <token>" と "Token <token>" の両方を受け付ける
func tokenFromHeader(authHeader string) string {
	for _, prefix := range []string{"Bearer ", "Token "} {
		if strings.HasPrefix(authHeader, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
		}
	}
	return ""
}

// OptionalAuthMiddleware オプショナル認証ミドルウェア（認証がない場合もエラーを返さない）
func OptionalAuthMiddleware(authService services.AuthService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString := tokenFromHeader(ctx.GetHeader("Authorization"))

		// トークンがない場合は認証なしで続行
		if tokenString == "" {
			ctx.Next()
			return
		}

		// ユーザーを取得
		user, err := authService.GetUserFromToken(ctx.Request.Context(), tokenString)
		if err != nil {
			log.Ctx(ctx.Request.Context()).Debug().Err(err).Msg("トークンを検証できませんでした")
			ctx.Next()
			return
		}

		// ユーザーをコンテキストに保存
		ctx.Set(userKey, user)
		ctx.Next()
	}
}

// AuthMiddleware 認証必須ミドルウェア（OptionalAuthMiddlewareの後に置く）
func AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if _, ok := CurrentUser(ctx); !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "認証が必要です"})
			return
		}
		ctx.Next()
	}
}

// CurrentUser コンテキストからログイン中のユーザーを取得
func CurrentUser(ctx *gin.Context) (*models.User, bool) {
	value, exists := ctx.Get(userKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok && user != nil
}

// CurrentUserID ログイン中のユーザーID（未ログインなら0）
func CurrentUserID(ctx *gin.Context) uint {
	if user, ok := CurrentUser(ctx); ok {
		return user.ID
	}
	return 0
}
