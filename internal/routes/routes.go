package routes

import (
	"github.com/mediumclone/mediumclone_backend/internal/cache"
	"github.com/mediumclone/mediumclone_backend/internal/config"
	"github.com/mediumclone/mediumclone_backend/internal/controllers"
	"github.com/mediumclone/mediumclone_backend/internal/middlewares"
	"github.com/mediumclone/mediumclone_backend/internal/repository"
	"github.com/mediumclone/mediumclone_backend/internal/services"
	"github.com/mediumclone/mediumclone_backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SetupRouter ルーターを設定（rdbはnil可）
func SetupRouter(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*gin.Engine, error) {
	// Ginルーターを作成
	r := gin.New()

	// ミドルウェアを設定
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.ErrorMiddleware())
	r.Use(middlewares.CORSMiddleware(cfg.Server.AllowedOrigins))

	// リポジトリを作成
	userRepo := repository.NewUserRepository(db)
	articleRepo := repository.NewArticleRepository(db)
	followRepo := repository.NewFollowRepository(db)
	tagRepo := repository.NewTagRepository(db)

	// Cloudinaryサービスを作成（未設定ならアップロードは503）
	var avatars services.AvatarUploader
	if cfg.Cloudinary.Enabled() {
		uploader, err := services.NewCloudinaryService(cfg.Cloudinary)
		if err != nil {
			return nil, err
		}
		avatars = uploader
	} else {
		log.Info().Msg("Cloudinaryが設定されていないため、画像アップロードは無効です")
	}

	// 記事イベントの送信先を作成
	events, err := services.NewArticleEventPublisher(cfg.AWS)
	if err != nil {
		return nil, err
	}

	// サービスを作成
	signer := utils.NewTokenSigner(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)
	authService := services.NewAuthService(userRepo, signer)
	userService := services.NewUserService(userRepo, avatars)
	profileService := services.NewProfileService(userRepo, followRepo)
	tagService := services.NewTagService(tagRepo, cache.NewTagCache(rdb, cfg.Redis.TagTTL))
	articleService := services.NewArticleService(articleRepo, userRepo, followRepo, tagService, events)
	healthService := services.NewHealthService(db)

	// コントローラーを作成
	authController := controllers.NewAuthController(authService)
	userController := controllers.NewUserController(userService, authService)
	profileController := controllers.NewProfileController(profileService)
	articleController := controllers.NewArticleController(articleService)
	tagController := controllers.NewTagController(tagService)
	healthController := controllers.NewHealthController(healthService)

	// 認証ミドルウェア
	authMiddleware := middlewares.AuthMiddleware()

	// APIグループを作成（トークンがあれば全ルートでユーザーを読み込む）
	api := r.Group("/api")
	api.Use(middlewares.OptionalAuthMiddleware(authService))
	{
		// ヘルスチェックルート（認証不要）
		api.GET("/health", healthController.Check)

		// 認証ルート
		users := api.Group("/users")
		{
			users.POST("", authController.Register)
			users.POST("/login", authController.Login)
		}

		// ログインユーザールート
		user := api.Group("/user", authMiddleware)
		{
			user.GET("", userController.GetMe)
			user.PUT("", userController.Update)
			user.POST("/image", userController.UploadImage)
		}

		// プロフィールルート
		profiles := api.Group("/profiles")
		{
			profiles.GET("/:username", profileController.Get)
			profiles.POST("/:username/follow", authMiddleware, profileController.Follow)
			profiles.DELETE("/:username/follow", authMiddleware, profileController.Unfollow)
		}

		// 記事ルート
		articles := api.Group("/articles")
		{
			// 認証不要
			articles.GET("", articleController.List)
			articles.GET("/:slug", articleController.Get)

			// 認証が必要
			articles.GET("/feed", authMiddleware, articleController.Feed)
			articles.POST("", authMiddleware, articleController.Create)
			articles.PUT("/:slug", authMiddleware, articleController.Update)
			articles.DELETE("/:slug", authMiddleware, articleController.Delete)
			articles.POST("/:slug/favorite", authMiddleware, articleController.Favorite)
			articles.DELETE("/:slug/favorite", authMiddleware, articleController.Unfavorite)
		}

		// タグルート
		api.GET("/tags", tagController.List)
	}

	return r, nil
}
