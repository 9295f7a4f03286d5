package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mediumclone/mediumclone_backend/internal/config"
	"github.com/mediumclone/mediumclone_backend/internal/logger"
	"github.com/mediumclone/mediumclone_backend/internal/routes"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	// 設定をロード
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("設定の読み込みに失敗しました")
	}

	logger.New(cfg.Log.Level, cfg.Log.Format, os.Stdout)
	log.Info().Msg("サーバーを起動しています...")

	if cfg.Auth.JWTSecret == config.DefaultJWTSecret {
		log.Warn().Msg("JWT_SECRET が既定値のままです。本番環境では必ず変更してください")
	}

	// Gin モードの設定
	gin.SetMode(cfg.Server.GinMode)

	// カスタムログフォーマットを設定
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {
		log.Debug().
			Str("method", httpMethod).
			Str("path", absolutePath).
			Str("handler", handlerName).
			Int("handlers", nuHandlers).
			Msg("エンドポイント登録")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// データベース接続
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("データベース接続に失敗しました")
	}

	// Redis接続（任意）
	rdb, err := config.InitRedis(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Redis接続に失敗しました")
	}

	// ルーターをセットアップ
	router, err := routes.SetupRouter(cfg, db, rdb)
	if err != nil {
		log.Fatal().Err(err).Msg("ルーターの初期化に失敗しました")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// サーバー起動
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("サーバーを開始しています...")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("サーバーの起動に失敗しました")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("シャットダウンしています...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("シャットダウンに失敗しました")
	}

	if rdb != nil {
		_ = rdb.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Info().Msg("サーバーを停止しました")
}
