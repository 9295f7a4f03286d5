package models

// Favorite はお気に入り（users_favorites_articles の1行）
type Favorite struct {
	UserID    uint `json:"userId" gorm:"primaryKey"`
	ArticleID uint `json:"articleId" gorm:"primaryKey;index"`
}

// TableName テーブル名指定
func (Favorite) TableName() string {
	return "users_favorites_articles"
}
