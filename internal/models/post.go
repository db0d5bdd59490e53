package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a feed post stored in MongoDB. Posts are immutable once
// fetched; the engine never rewrites a post's own fields.
type Post struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AuthorID  uint               `json:"author_id" bson:"author_id"`
	Body      string             `json:"body" bson:"body"`
	Media     MediaRef           `json:"media,omitempty" bson:"media,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// HexID returns the post identity as the string used by the relational
// collections (likes, comments) to key against it.
func (p *Post) HexID() string {
	return p.ID.Hex()
}

// CreatePostRequest defines the request body for creating a new post. File is
// an already-uploaded storage object name; upload transport is not handled here.
type CreatePostRequest struct {
	Body string `json:"body" validate:"required,min=1,max=1000"`
	File string `json:"file,omitempty" validate:"omitempty,max=255"`
}
