package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/mediumclone/mediumclone_backend/internal/models"

	"gorm.io/gorm"
)

// TagRepository タグに関するデータベース操作を行うインターフェース
type TagRepository interface {
	FindOrCreate(ctx context.Context, name string) (*models.Tag, bool, error)
	List(ctx context.Context) ([]models.Tag, error)
}

// tagRepository TagRepositoryの実装
type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository TagRepositoryを作成
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

// FindOrCreate タグを検索または作成（作成した場合はtrue）
func (r *tagRepository) FindOrCreate(ctx context.Context, name string) (*models.Tag, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, errors.New("タグ名は空にできません")
	}

	var tag models.Tag
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// タグが見つからない場合は新規作成
			tag.Name = name
			if err := r.db.WithContext(ctx).Create(&tag).Error; err != nil {
				return nil, false, err
			}
			return &tag, true, nil
		}
		return nil, false, err
	}
	return &tag, false, nil
}

// List タグ一覧を名前順で取得
func (r *tagRepository) List(ctx context.Context) ([]models.Tag, error) {
	tags := []models.Tag{}
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}
