package mock

import (
	"context"
	"errors"
	"fmt"

	"github.com/mediumclone/mediumclone_backend/internal/models"
	"github.com/mediumclone/mediumclone_backend/internal/repository"
	"github.com/mediumclone/mediumclone_backend/internal/utils"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Result 投入した件数
type Result struct {
	Users    int
	Tags     int
	Articles int
	Follows  int
}

// Seed デモデータを投入（既に存在するユーザーの記事は投入しない）
func Seed(ctx context.Context, db *gorm.DB) (Result, error) {
	var result Result

	userRepo := repository.NewUserRepository(db)
	articleRepo := repository.NewArticleRepository(db)
	followRepo := repository.NewFollowRepository(db)
	tagRepo := repository.NewTagRepository(db)

	users := make(map[string]*models.User, len(Users))
	created := make(map[string]bool, len(Users))
	for _, u := range Users {
		user, err := userRepo.FindByEmail(ctx, u.Email)
		if err == nil {
			users[u.Username] = user
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return result, err
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return result, err
		}
		user = &models.User{
			Username: u.Username,
			Email:    u.Email,
			Password: string(hashedPassword),
			Bio:      u.Bio,
			Image:    u.Image,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return result, fmt.Errorf("ユーザー %s の作成に失敗しました: %w", u.Username, err)
		}
		users[u.Username] = user
		created[u.Username] = true
		result.Users++
	}

	for _, name := range Tags {
		_, isNew, err := tagRepo.FindOrCreate(ctx, name)
		if err != nil {
			return result, err
		}
		if isNew {
			result.Tags++
		}
	}

	for _, a := range Articles {
		author, ok := users[a.Author]
		if !ok {
			return result, fmt.Errorf("著者 %s が存在しません", a.Author)
		}
		// 既存ユーザーの記事は再投入しない
		if !created[a.Author] {
			continue
		}

		article := &models.Article{
			Slug:        utils.GenerateSlug(a.Title),
			Title:       a.Title,
			Description: a.Description,
			Body:        a.Body,
			TagList:     models.NormalizeTags(a.TagList),
			AuthorID:    author.ID,
		}
		if err := articleRepo.Create(ctx, article); err != nil {
			return result, fmt.Errorf("記事 %q の作成に失敗しました: %w", a.Title, err)
		}
		result.Articles++

		for _, name := range a.FavoritedBy {
			fan, ok := users[name]
			if !ok {
				return result, fmt.Errorf("ユーザー %s が存在しません", name)
			}
			if _, err := articleRepo.AddFavorite(ctx, fan.ID, article.ID); err != nil {
				return result, err
			}
		}
	}

	for _, f := range Follows {
		follower, ok1 := users[f.Follower]
		following, ok2 := users[f.Following]
		if !ok1 || !ok2 {
			return result, fmt.Errorf("フォロー %s -> %s のユーザーが存在しません", f.Follower, f.Following)
		}
		exists, err := followRepo.Exists(ctx, follower.ID, following.ID)
		if err != nil {
			return result, err
		}
		if exists {
			continue
		}
		if err := followRepo.Create(ctx, follower.ID, following.ID); err != nil {
			return result, err
		}
		result.Follows++
	}

	log.Ctx(ctx).Info().
		Int("users", result.Users).
		Int("tags", result.Tags).
		Int("articles", result.Articles).
		Int("follows", result.Follows).
		Msg("デモデータを投入しました")

	return result, nil
}
