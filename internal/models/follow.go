package models

import "time"

// Follow はフォロー関係（follower → following）
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  uint      `json:"followerId" gorm:"not null;uniqueIndex:idx_follows_follower_following"`
	FollowingID uint      `json:"followingId" gorm:"not null;index;uniqueIndex:idx_follows_follower_following"`
	CreatedAt   time.Time `json:"createdAt"`
}
