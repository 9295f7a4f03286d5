package services

import (
	"context"
	"errors"
	"strings"

	"github.com/mediumclone/mediumclone_backend/internal/models"
	"github.com/mediumclone/mediumclone_backend/internal/repository"
	"github.com/mediumclone/mediumclone_backend/internal/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService 認証に関するサービスインターフェース
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	GenerateToken(user *models.User) (string, error)
	GetUserFromToken(ctx context.Context, tokenString string) (*models.User, error)
}

// authService AuthServiceの実装
type authService struct {
	userRepo repository.UserRepository
	signer   *utils.TokenSigner
}

// NewAuthService AuthServiceを作成
func NewAuthService(userRepo repository.UserRepository, signer *utils.TokenSigner) AuthService {
	return &authService{
		userRepo: userRepo,
		signer:   signer,
	}
}

// Register ユーザー登録
func (s *authService) Register(ctx context.Context, username, email, password string) (*models.User, string, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	// メールアドレス・ユーザー名が既に使用されているか確認
	taken, err := emailOrUsernameTaken(ctx, s.userRepo, 0, email, username)
	if err != nil {
		return nil, "", err
	}
	if taken {
		return nil, "", NewUnprocessableError("ユーザーは既に存在します")
	}

	// パスワードをハッシュ化
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Login ログイン
func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", NewBadRequestError("メールアドレス %s のユーザーは存在しません", email)
		}
		return nil, "", err
	}

	// パスワードを検証
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", NewForbiddenError("パスワードが正しくありません")
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// GenerateToken id・ユーザー名・メールアドレスを含むJWTを生成
func (s *authService) GenerateToken(user *models.User) (string, error) {
	return s.signer.Generate(user.ID, user.Username, user.Email)
}

// GetUserFromToken トークンからユーザーを取得
func (s *authService) GetUserFromToken(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := s.signer.Validate(tokenString)
	if err != nil {
		return nil, err
	}

	return s.userRepo.FindByID(ctx, claims.ID)
}

// emailOrUsernameTaken selfID以外のユーザーがemailかusernameを使っているか
func emailOrUsernameTaken(ctx context.Context, repo repository.UserRepository, selfID uint, email, username string) (bool, error) {
	if email != "" {
		user, err := repo.FindByEmail(ctx, email)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return false, err
		}
		if err == nil && user.ID != selfID {
			return true, nil
		}
	}

	if username != "" {
		user, err := repo.FindByUsername(ctx, username)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return false, err
		}
		if err == nil && user.ID != selfID {
			return true, nil
		}
	}

	return false, nil
}
