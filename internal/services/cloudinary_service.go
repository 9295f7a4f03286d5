package services

import (
	"context"
	"fmt"
	"io"

	"github.com/mediumclone/mediumclone_backend/internal/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// AvatarUploader アバター画像を外部ストレージに保存する
type AvatarUploader interface {
	UploadAvatar(ctx context.Context, file io.Reader, publicID string) (string, error)
}

// cloudinaryService Cloudinaryとの連携を管理するサービス
type cloudinaryService struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryService Cloudinary版AvatarUploaderを作成
func NewCloudinaryService(cfg config.CloudinaryConfig) (AvatarUploader, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, err
	}

	return &cloudinaryService{
		cld:    cld,
		folder: cfg.Folder,
	}, nil
}

// UploadAvatar 画像をアップロードしてHTTPSのURLを返す
func (s *cloudinaryService) UploadAvatar(ctx context.Context, file io.Reader, publicID string) (string, error) {
	uploadParams := uploader.UploadParams{
		Folder:       s.folder,
		PublicID:     publicID,
		ResourceType: "image",
		// 正方形にトリミング
		Transformation: "c_fill,g_face,w_256,h_256",
	}

	result, err := s.cld.Upload.Upload(ctx, file, uploadParams)
	if err != nil {
		return "", fmt.Errorf("Cloudinaryへのアップロードに失敗しました: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("Cloudinaryへのアップロードに失敗しました: %s", result.Error.Message)
	}

	return result.SecureURL, nil
}
