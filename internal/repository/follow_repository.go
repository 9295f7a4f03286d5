package repository

import (
	"context"

	"github.com/mediumclone/mediumclone_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository フォロー関係に関するデータベース操作を行うインターフェース
type FollowRepository interface {
	Exists(ctx context.Context, followerID, followingID uint) (bool, error)
	Create(ctx context.Context, followerID, followingID uint) error
	Delete(ctx context.Context, followerID, followingID uint) error
	FollowingIDs(ctx context.Context, followerID uint) ([]uint, error)
	FollowingAmong(ctx context.Context, followerID uint, userIDs []uint) (map[uint]bool, error)
}

// followRepository FollowRepositoryの実装
type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository FollowRepositoryを作成
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Exists フォローしているか確認
func (r *followRepository) Exists(ctx context.Context, followerID, followingID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create フォローを作成（既に存在する場合は何もしない）
func (r *followRepository) Create(ctx context.Context, followerID, followingID uint) error {
	follow := &models.Follow{FollowerID: followerID, FollowingID: followingID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(follow).Error
}

// Delete フォローを削除（存在しない場合は何もしない）
func (r *followRepository) Delete(ctx context.Context, followerID, followingID uint) error {
	return r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{}).Error
}

// FollowingIDs フォロー中のユーザーID一覧
func (r *followRepository) FollowingIDs(ctx context.Context, followerID uint) ([]uint, error) {
	ids := []uint{}
	if err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ?", followerID).
		Pluck("following_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// FollowingAmong userIDsのうちフォロー中のものを返す
func (r *followRepository) FollowingAmong(ctx context.Context, followerID uint, userIDs []uint) (map[uint]bool, error) {
	out := make(map[uint]bool)
	if followerID == 0 || len(userIDs) == 0 {
		return out, nil
	}

	var ids []uint
	if err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND following_id IN ?", followerID, userIDs).
		Pluck("following_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}
