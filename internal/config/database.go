package config

import (
	"fmt"
	"time"

	"github.com/mediumclone/mediumclone_backend/internal/logger"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newGormLogger zerologに出力するgormロガー
func newGormLogger(level string) gormlogger.Interface {
	return logger.GormLogger{
		Logger:                    log.Logger,
		Level:                     parseGormLogLevel(level),
		SlowThreshold:             time.Second, // 1秒以上のクエリを遅いと判断
		IgnoreRecordNotFoundError: true,
	}
}

func parseGormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

// Dialector ドライバー設定からgormのDialectorを作成
func (c DatabaseConfig) Dialector() (gorm.Dialector, error) {
	switch c.Driver {
	case "", "mysql":
		dsn := c.DSN
		if dsn == "" {
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
				c.Username, c.Password, c.Host, c.Port, c.DBName)
		}
		return mysql.Open(dsn), nil
	case "postgres":
		dsn := c.DSN
		if dsn == "" {
			dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
				c.Host, c.Port, c.Username, c.Password, c.DBName)
		}
		return postgres.Open(dsn), nil
	case "sqlite":
		dsn := c.DSN
		if dsn == "" {
			dsn = c.DBName + ".db"
		}
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("未対応のDBドライバーです: %s", c.Driver)
	}
}

// InitDB データベース接続を初期化
func InitDB(cfg *Config) (*gorm.DB, error) {
	dialector, err := cfg.Database.Dialector()
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("driver", dialector.Name()).
		Str("host", cfg.Database.Host).
		Str("db", cfg.Database.DBName).
		Msg("データベースに接続中")

	// GORM設定（外部キー制約はサービス層で扱う）
	gormConfig := &gorm.Config{
		Logger:                                   newGormLogger(cfg.Database.LogLevel),
		DisableForeignKeyConstraintWhenMigrating: true,
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, err
	}

	// 接続プールの設定
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if dialector.Name() == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	// 接続テスト
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("データベース接続テストに失敗: %w", err)
	}

	log.Info().Msg("データベース接続に成功しました")

	return db, nil
}
