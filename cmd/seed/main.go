package main

import (
	"context"
	"os"

	"github.com/mediumclone/mediumclone_backend/internal/config"
	"github.com/mediumclone/mediumclone_backend/internal/logger"
	"github.com/mediumclone/mediumclone_backend/internal/migrations"
	"github.com/mediumclone/mediumclone_backend/internal/mock"

	"github.com/rs/zerolog/log"
)

func main() {
	// 設定をロード
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("設定の読み込みに失敗しました")
	}
	logger.New(cfg.Log.Level, cfg.Log.Format, os.Stdout)

	// データベース接続
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("データベース接続に失敗しました")
	}

	ctx := log.Logger.WithContext(context.Background())

	// 未適用のマイグレーションがあれば先に適用
	if _, err := migrations.New(db, migrations.All).Up(ctx); err != nil {
		log.Fatal().Err(err).Msg("マイグレーションに失敗しました")
	}

	if _, err := mock.Seed(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("デモデータの投入に失敗しました")
	}
}
