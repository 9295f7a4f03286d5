package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mediumclone/mediumclone_backend/internal/models"
	"github.com/mediumclone/mediumclone_backend/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UpdateUserInput ユーザー更新内容（nilのフィールドは変更しない）
type UpdateUserInput struct {
	Email    *string
	Username *string
	Password *string
	Bio      *string
	Image    *string
}

// UserService ユーザーに関するサービスインターフェース
type UserService interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	Update(ctx context.Context, userID uint, input UpdateUserInput) (*models.User, error)
	UploadImage(ctx context.Context, userID uint, file io.Reader) (*models.User, error)
}

// userService UserServiceの実装
type userService struct {
	userRepo repository.UserRepository
	avatars  AvatarUploader
}

// NewUserService UserServiceを作成（avatarsはnil可）
func NewUserService(userRepo repository.UserRepository, avatars AvatarUploader) UserService {
	return &userService{
		userRepo: userRepo,
		avatars:  avatars,
	}
}

// GetByID IDでユーザーを取得
func (s *userService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("ユーザーが見つかりません")
		}
		return nil, err
	}
	return user, nil
}

// Update ユーザー情報を更新
func (s *userService) Update(ctx context.Context, userID uint, input UpdateUserInput) (*models.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var email, username string
	if input.Email != nil {
		email = strings.TrimSpace(*input.Email)
		if email == "" {
			return nil, NewUnprocessableError("メールアドレスは空にできません")
		}
	}
	if input.Username != nil {
		username = strings.TrimSpace(*input.Username)
		if username == "" {
			return nil, NewUnprocessableError("ユーザー名は空にできません")
		}
	}

	// 他のユーザーと重複しないか確認
	taken, err := emailOrUsernameTaken(ctx, s.userRepo, user.ID, email, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, NewUnprocessableError("メールアドレスまたはユーザー名は既に使用されています")
	}

	if email != "" {
		user.Email = email
	}
	if username != "" {
		user.Username = username
	}
	if input.Password != nil && *input.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashedPassword)
	}
	// bio・imageは空文字でも更新する
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Image != nil {
		user.Image = *input.Image
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// UploadImage アバター画像をアップロードしてimageを更新
func (s *userService) UploadImage(ctx context.Context, userID uint, file io.Reader) (*models.User, error) {
	if s.avatars == nil {
		return nil, NewUnavailableError("画像アップロードは設定されていません")
	}

	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	publicID := fmt.Sprintf("user_%d_%d", user.ID, time.Now().Unix())
	url, err := s.avatars.UploadAvatar(ctx, file, publicID)
	if err != nil {
		return nil, err
	}

	user.Image = url
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
