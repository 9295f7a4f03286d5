package migrations

import (
	"context"
	"fmt"
	"time"

	"github.com/mediumclone/mediumclone_backend/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Migration 順序付きスキーマ変更の1ステップ
type Migration struct {
	ID   string
	Up   func(tx *gorm.DB) error
	Down func(tx *gorm.DB) error
}

// SchemaMigration 適用済みマイグレーションの記録
type SchemaMigration struct {
	ID        string    `gorm:"primaryKey;size:255"`
	AppliedAt time.Time `gorm:"not null"`
}

// TableName テーブル名指定
func (SchemaMigration) TableName() string {
	return "schema_migrations"
}

// Status マイグレーションの適用状況
type Status struct {
	ID        string
	Applied   bool
	AppliedAt time.Time
}

func createTable(value interface{}) func(tx *gorm.DB) error {
	return func(tx *gorm.DB) error {
		return tx.Migrator().CreateTable(value)
	}
}

func dropTable(value interface{}) func(tx *gorm.DB) error {
	return func(tx *gorm.DB) error {
		return tx.Migrator().DropTable(value)
	}
}

// usersV2 usernameカラム追加前のusersテーブル
type usersV2 struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"size:255;uniqueIndex;not null"`
	Password  string    `gorm:"size:255;not null"`
	Bio       string    `gorm:"size:1024;not null;default:''"`
	Image     string    `gorm:"size:1024;not null;default:''"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (usersV2) TableName() string { return "users" }

// usersV3 0003で追加するカラム
type usersV3 struct {
	Username string `gorm:"size:255;not null;default:''"`
}

func (usersV3) TableName() string { return "users" }

func addUsernameToUsers(tx *gorm.DB) error {
	m := tx.Migrator()
	if err := m.AddColumn(&usersV3{}, "Username"); err != nil {
		return err
	}
	return m.CreateIndex(&models.User{}, "Username")
}

func dropUsernameFromUsers(tx *gorm.DB) error {
	m := tx.Migrator()
	if err := m.DropIndex(&models.User{}, "Username"); err != nil {
		return err
	}
	return m.DropColumn(&usersV3{}, "Username")
}

// All 適用順のマイグレーション一覧
var All = []Migration{
	{ID: "0001_create_tags", Up: createTable(&models.Tag{}), Down: dropTable(&models.Tag{})},
	{ID: "0002_create_users", Up: createTable(&usersV2{}), Down: dropTable(&usersV2{})},
	{ID: "0003_add_username_to_users", Up: addUsernameToUsers, Down: dropUsernameFromUsers},
	{ID: "0004_create_articles", Up: createTable(&models.Article{}), Down: dropTable(&models.Article{})},
	{ID: "0005_create_follows", Up: createTable(&models.Follow{}), Down: dropTable(&models.Follow{})},
	{ID: "0006_create_users_favorites_articles", Up: createTable(&models.Favorite{}), Down: dropTable(&models.Favorite{})},
}

// Migrator マイグレーションを適用・巻き戻しする
type Migrator struct {
	db         *gorm.DB
	migrations []Migration
}

// New Migratorを作成
func New(db *gorm.DB, migrations []Migration) *Migrator {
	return &Migrator{db: db, migrations: migrations}
}

func (m *Migrator) ensureTable(ctx context.Context) error {
	return m.db.WithContext(ctx).AutoMigrate(&SchemaMigration{})
}

func (m *Migrator) applied(ctx context.Context) (map[string]SchemaMigration, error) {
	var rows []SchemaMigration
	if err := m.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]SchemaMigration, len(rows))
	for _, row := range rows {
		out[row.ID] = row
	}
	return out, nil
}

// Up 未適用のマイグレーションを順に適用し、適用したIDを返す
func (m *Migrator) Up(ctx context.Context) ([]string, error) {
	if err := m.ensureTable(ctx); err != nil {
		return nil, err
	}
	done, err := m.applied(ctx)
	if err != nil {
		return nil, err
	}

	var ran []string
	for _, mig := range m.migrations {
		if _, ok := done[mig.ID]; ok {
			continue
		}
		err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := mig.Up(tx); err != nil {
				return err
			}
			return tx.Create(&SchemaMigration{ID: mig.ID, AppliedAt: time.Now()}).Error
		})
		if err != nil {
			return ran, fmt.Errorf("マイグレーション %s に失敗しました: %w", mig.ID, err)
		}
		log.Info().Str("migration", mig.ID).Msg("マイグレーションを適用しました")
		ran = append(ran, mig.ID)
	}
	return ran, nil
}

// Down 適用済みのマイグレーションを新しい順にsteps件巻き戻す（0以下なら全件）
func (m *Migrator) Down(ctx context.Context, steps int) ([]string, error) {
	if err := m.ensureTable(ctx); err != nil {
		return nil, err
	}
	done, err := m.applied(ctx)
	if err != nil {
		return nil, err
	}

	var reverted []string
	for i := len(m.migrations) - 1; i >= 0; i-- {
		if steps > 0 && len(reverted) >= steps {
			break
		}
		mig := m.migrations[i]
		if _, ok := done[mig.ID]; !ok {
			continue
		}
		err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := mig.Down(tx); err != nil {
				return err
			}
			return tx.Delete(&SchemaMigration{ID: mig.ID}).Error
		})
		if err != nil {
			return reverted, fmt.Errorf("マイグレーション %s の巻き戻しに失敗しました: %w", mig.ID, err)
		}
		log.Info().Str("migration", mig.ID).Msg("マイグレーションを巻き戻しました")
		reverted = append(reverted, mig.ID)
	}
	return reverted, nil
}

// Status 各マイグレーションの適用状況を返す
func (m *Migrator) Status(ctx context.Context) ([]Status, error) {
	if err := m.ensureTable(ctx); err != nil {
		return nil, err
	}
	done, err := m.applied(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Status, 0, len(m.migrations))
	for _, mig := range m.migrations {
		row, ok := done[mig.ID]
		out = append(out, Status{ID: mig.ID, Applied: ok, AppliedAt: row.AppliedAt})
	}
	return out, nil
}
