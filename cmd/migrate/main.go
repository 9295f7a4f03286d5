package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/mediumclone/mediumclone_backend/internal/config"
	"github.com/mediumclone/mediumclone_backend/internal/logger"
	"github.com/mediumclone/mediumclone_backend/internal/migrations"

	"github.com/rs/zerolog/log"
)

func main() {
	// 引数をチェック
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "使用方法: migrate [up|down [n]|status]")
		os.Exit(2)
	}

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

	ctx := context.Background()
	m := migrations.New(db, migrations.All)

	command := os.Args[1]

	switch command {
	case "up":
		// マイグレーションを実行
		applied, err := m.Up(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("マイグレーションに失敗しました")
		}
		log.Info().Strs("applied", applied).Msg("マイグレーションが成功しました")

	case "down":
		// 指定がなければ1件だけ巻き戻す
		steps := 1
		if len(os.Args) > 2 {
			steps, err = strconv.Atoi(os.Args[2])
			if err != nil {
				log.Fatal().Str("arg", os.Args[2]).Msg("巻き戻す件数が不正です")
			}
		}
		reverted, err := m.Down(ctx, steps)
		if err != nil {
			log.Fatal().Err(err).Msg("巻き戻しに失敗しました")
		}
		log.Info().Strs("reverted", reverted).Msg("巻き戻しが成功しました")

	case "status":
		statuses, err := m.Status(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("適用状況の取得に失敗しました")
		}
		for _, s := range statuses {
			if s.Applied {
				fmt.Printf("[x] %s (%s)\n", s.ID, s.AppliedAt.Format("2006-01-02 15:04:05"))
			} else {
				fmt.Printf("[ ] %s\n", s.ID)
			}
		}

	default:
		log.Fatal().Str("command", command).Msg("不明なコマンドです")
	}
}
