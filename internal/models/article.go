package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// Article は記事モデル
type Article struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	Slug           string     `json:"slug" gorm:"size:255;index;not null"`
	Title          string     `json:"title" gorm:"size:255;not null"`
	Description    string     `json:"description" gorm:"size:1024;not null;default:''"`
	Body           string     `json:"body" gorm:"type:text;not null"`
	TagList        StringList `json:"tagList" gorm:"type:text;not null"`
	FavoritesCount int        `json:"favoritesCount" gorm:"not null;default:0"`
	CreatedAt      time.Time  `json:"createdAt" gorm:"index"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	AuthorID       uint       `json:"-" gorm:"not null;index"`

	// リレーション
	Author User `json:"author" gorm:"foreignKey:AuthorID"`
}

// StringList カンマ区切りで1カラムに保存される文字列リスト
type StringList []string

// Value driver.Valuer の実装
func (l StringList) Value() (driver.Value, error) {
	return strings.Join(l, ","), nil
}

// Scan sql.Scanner の実装
func (l *StringList) Scan(src interface{}) error {
	var s string
	switch v := src.(type) {
	case nil:
		s = ""
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("StringList に変換できない型です: %T", src)
	}

	if s == "" {
		*l = StringList{}
		return nil
	}
	*l = strings.Split(s, ",")
	return nil
}

// NormalizeTags 空白を除去し、空要素・重複・カンマを含む要素を取り除く
func NormalizeTags(tags []string) StringList {
	out := StringList{}
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || strings.Contains(tag, ",") {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
