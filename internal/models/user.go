package models

import (
	"time"
)

// User はユーザーモデル
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Username  string    `json:"username" gorm:"size:255;uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"size:255;not null"`
	Bio       string    `json:"bio" gorm:"size:1024;not null;default:''"`
	Image     string    `json:"image" gorm:"size:1024;not null;default:''"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// リレーション
	Articles  []Article `json:"-" gorm:"foreignKey:AuthorID"`
	Favorites []Article `json:"-" gorm:"many2many:users_favorites_articles;"`
}
