// Package testutil テスト用のインメモリDBなど
package testutil

import (
	"context"
	"testing"

	"github.com/mediumclone/mediumclone_backend/internal/migrations"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB マイグレーション適用前のインメモリSQLiteを開く
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("テスト用DBの作成に失敗しました: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("SQLDBインスタンス取得に失敗しました: %v", err)
	}
	// :memory: は接続ごとに別DBになるため1本に固定
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

// NewDB 全マイグレーションを適用したインメモリSQLiteを返す
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db := OpenDB(t)
	if _, err := migrations.New(db, migrations.All).Up(context.Background()); err != nil {
		t.Fatalf("マイグレーションに失敗しました: %v", err)
	}
	return db
}
