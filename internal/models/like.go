package models

import "gorm.io/gorm"

// Like is a like fact: user UserID likes post PostID. Existence is the
// primitive; there is at most one row per (post, user) pair.
type Like struct {
	gorm.Model
	PostID string `json:"post_id" gorm:"uniqueIndex:idx_post_user"` // MongoDB ObjectID as string
	UserID uint   `json:"user_id" gorm:"uniqueIndex:idx_post_user"`
}
