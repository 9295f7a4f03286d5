package services

import (
	"context"

	"github.com/mediumclone/mediumclone_backend/internal/cache"
	"github.com/mediumclone/mediumclone_backend/internal/repository"
)

// TagService タグに関するサービスインターフェース
type TagService interface {
	List(ctx context.Context) ([]string, error)
	Register(ctx context.Context, names []string) error
}

// tagService TagServiceの実装
type tagService struct {
	tagRepo repository.TagRepository
	cache   cache.TagCache
}

// NewTagService TagServiceを作成
func NewTagService(tagRepo repository.TagRepository, tagCache cache.TagCache) TagService {
	return &tagService{
		tagRepo: tagRepo,
		cache:   tagCache,
	}
}

// List タグ名一覧を取得（名前順）
func (s *tagService) List(ctx context.Context) ([]string, error) {
	if names, ok := s.cache.Get(ctx); ok {
		return names, nil
	}

	tags, err := s.tagRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}

	s.cache.Set(ctx, names)
	return names, nil
}

// Register 記事で使われたタグを登録（新規があればキャッシュを破棄）
func (s *tagService) Register(ctx context.Context, names []string) error {
	created := false
	for _, name := range names {
		_, isNew, err := s.tagRepo.FindOrCreate(ctx, name)
		if err != nil {
			return err
		}
		created = created || isNew
	}

	if created {
		s.cache.Invalidate(ctx)
	}
	return nil
}
