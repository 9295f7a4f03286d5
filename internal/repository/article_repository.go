package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/mediumclone/mediumclone_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ArticleFilter 記事一覧の絞り込み条件
type ArticleFilter struct {
	Tag string
	// nilなら絞り込まない。空スライスなら結果は常に空
	AuthorIDs []uint
	IDs       []uint
	Limit     int
	Offset    int
}

// empty 条件から結果が空と分かるか（カンマを含むタグは存在しない）
func (f ArticleFilter) empty() bool {
	return (f.AuthorIDs != nil && len(f.AuthorIDs) == 0) ||
		(f.IDs != nil && len(f.IDs) == 0) ||
		strings.Contains(f.Tag, ",")
}

// ArticleRepository 記事に関するデータベース操作を行うインターフェース
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	FindBySlug(ctx context.Context, slug string) (*models.Article, error)
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter ArticleFilter) ([]models.Article, int64, error)
	AddFavorite(ctx context.Context, userID, articleID uint) (bool, error)
	RemoveFavorite(ctx context.Context, userID, articleID uint) (bool, error)
	FavoritedArticleIDs(ctx context.Context, userID uint) ([]uint, error)
	FavoritedAmong(ctx context.Context, userID uint, articleIDs []uint) (map[uint]bool, error)
}

// articleRepository ArticleRepositoryの実装
type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository ArticleRepositoryを作成
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

// Create 新しい記事を作成
func (r *articleRepository) Create(ctx context.Context, article *models.Article) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(article).Error
}

// FindBySlug スラッグで記事を検索（著者も読み込む）
func (r *articleRepository) FindBySlug(ctx context.Context, slug string) (*models.Article, error) {
	var article models.Article
	if err := r.db.WithContext(ctx).Preload("Author").Where("slug = ?", slug).First(&article).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

// Update 記事の編集可能な列を更新（favorites_countは書き換えない）
func (r *articleRepository) Update(ctx context.Context, article *models.Article) error {
	return r.db.WithContext(ctx).Model(article).
		Select("slug", "title", "description", "body", "tag_list", "updated_at").
		Updates(article).Error
}

// Delete 記事とそのお気に入りを削除
func (r *articleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("article_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Article{}, id).Error
	})
}

// tagMatchSQL カンマで囲んだtag_listに ",tag," が含まれるかを調べる条件。
// LIKEを使わないのでワイルドカードは効かず、大文字小文字も区別する
func tagMatchSQL(dialect string) string {
	switch dialect {
	case "mysql":
		return "LOCATE(CAST(? AS BINARY), CONCAT(',', tag_list, ',')) > 0"
	case "postgres":
		return "strpos(',' || tag_list || ',', ?) > 0"
	default:
		return "instr(',' || tag_list || ',', ?) > 0"
	}
}

// filterScope 絞り込み条件をクエリに適用
func filterScope(f ArticleFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Tag != "" {
			db = db.Where(tagMatchSQL(db.Dialector.Name()), ","+f.Tag+",")
		}
		if f.AuthorIDs != nil {
			db = db.Where("author_id IN ?", f.AuthorIDs)
		}
		if f.IDs != nil {
			db = db.Where("id IN ?", f.IDs)
		}
		return db
	}
}

// List 記事一覧と（ページング前の）総数を取得。新着順
func (r *articleRepository) List(ctx context.Context, filter ArticleFilter) ([]models.Article, int64, error) {
	articles := []models.Article{}
	var total int64

	// IN () を生成しないよう空条件は即座に返す
	if filter.empty() {
		return articles, 0, nil
	}

	// 合計数を取得
	if err := r.db.WithContext(ctx).Model(&models.Article{}).
		Scopes(filterScope(filter)).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).
		Scopes(filterScope(filter)).
		Preload("Author").
		Order("created_at DESC").
		Order("id DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	// データを取得
	if err := query.Find(&articles).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, 0, err
	}

	return articles, total, nil
}

// AddFavorite お気に入りを追加し件数を増やす（既にお気に入りならfalse）
func (r *articleRepository) AddFavorite(ctx context.Context, userID, articleID uint) (bool, error) {
	added := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Favorite{}).
			Where("user_id = ? AND article_id = ?", userID, articleID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		if err := tx.Create(&models.Favorite{UserID: userID, ArticleID: articleID}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Article{}).Where("id = ?", articleID).
			UpdateColumn("favorites_count", gorm.Expr("favorites_count + ?", 1)).Error; err != nil {
			return err
		}
		added = true
		return nil
	})
	return added, err
}

// RemoveFavorite お気に入りを削除し件数を減らす（お気に入りでなければfalse）
func (r *articleRepository) RemoveFavorite(ctx context.Context, userID, articleID uint) (bool, error) {
	removed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND article_id = ?", userID, articleID).Delete(&models.Favorite{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		if err := tx.Model(&models.Article{}).Where("id = ? AND favorites_count > 0", articleID).
			UpdateColumn("favorites_count", gorm.Expr("favorites_count - ?", 1)).Error; err != nil {
			return err
		}
		removed = true
		return nil
	})
	return removed, err
}

// FavoritedArticleIDs ユーザーがお気に入りした記事ID一覧
func (r *articleRepository) FavoritedArticleIDs(ctx context.Context, userID uint) ([]uint, error) {
	ids := []uint{}
	if err := r.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_id = ?", userID).
		Pluck("article_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// FavoritedAmong articleIDsのうちユーザーがお気に入りしているもの
func (r *articleRepository) FavoritedAmong(ctx context.Context, userID uint, articleIDs []uint) (map[uint]bool, error) {
	out := make(map[uint]bool)
	if userID == 0 || len(articleIDs) == 0 {
		return out, nil
	}

	var ids []uint
	if err := r.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_id = ? AND article_id IN ?", userID, articleIDs).
		Pluck("article_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}
