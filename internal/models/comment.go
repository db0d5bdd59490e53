package models

import "gorm.io/gorm"

// Comment is a comment on a post. Threads are append-only and ordered by
// creation time ascending.
type Comment struct {
	gorm.Model
	PostID string `json:"post_id" gorm:"index"` // MongoDB ObjectID as string
	UserID uint   `json:"user_id" gorm:"index"`
	Text   string `json:"text" validate:"required,min=1,max=500"`
}

// ThreadComment is a comment with its author embedded, as served to the UI.
type ThreadComment struct {
	Comment
	Author UserCompact `json:"author"`
}

// SubmitCommentRequest defines the request body for submitting a comment on
// the currently selected post.
type SubmitCommentRequest struct {
	Text string `json:"text" validate:"max=500"`
}
