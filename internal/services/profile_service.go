package services

import (
	"context"
	"errors"

	"github.com/mediumclone/mediumclone_backend/internal/models"
	"github.com/mediumclone/mediumclone_backend/internal/repository"

	"gorm.io/gorm"
)

// Profile 公開プロフィール（followingは閲覧者から見た値）
type Profile struct {
	User      *models.User
	Following bool
}

// ProfileService プロフィールとフォローに関するサービスインターフェース
type ProfileService interface {
	GetProfile(ctx context.Context, currentUserID uint, username string) (*Profile, error)
	Follow(ctx context.Context, currentUserID uint, username string) (*Profile, error)
	Unfollow(ctx context.Context, currentUserID uint, username string) (*Profile, error)
}

// profileService ProfileServiceの実装
type profileService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

// NewProfileService ProfileServiceを作成
func NewProfileService(userRepo repository.UserRepository, followRepo repository.FollowRepository) ProfileService {
	return &profileService{
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

func (s *profileService) findByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("プロフィールが存在しません")
		}
		return nil, err
	}
	return user, nil
}

// GetProfile プロフィールを取得（currentUserIDが0なら未ログイン）
func (s *profileService) GetProfile(ctx context.Context, currentUserID uint, username string) (*Profile, error) {
	user, err := s.findByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if currentUserID == 0 {
		return &Profile{User: user}, nil
	}

	following, err := s.followRepo.Exists(ctx, currentUserID, user.ID)
	if err != nil {
		return nil, err
	}

	return &Profile{User: user, Following: following}, nil
}

// Follow ユーザーをフォロー（既にフォロー済みなら何もしない）
func (s *profileService) Follow(ctx context.Context, currentUserID uint, username string) (*Profile, error) {
	user, err := s.findByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if user.ID == currentUserID {
		return nil, NewBadRequestError("自分自身をフォローすることはできません")
	}

	if err := s.followRepo.Create(ctx, currentUserID, user.ID); err != nil {
		return nil, err
	}

	return &Profile{User: user, Following: true}, nil
}

// Unfollow フォローを解除（フォローしていなければ何もしない）
func (s *profileService) Unfollow(ctx context.Context, currentUserID uint, username string) (*Profile, error) {
	user, err := s.findByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if user.ID == currentUserID {
		return nil, NewBadRequestError("自分自身のフォローを解除することはできません")
	}

	if err := s.followRepo.Delete(ctx, currentUserID, user.ID); err != nil {
		return nil, err
	}

	return &Profile{User: user, Following: false}, nil
}
