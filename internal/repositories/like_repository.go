package repositories

import (
	"fmt"

	"github.com/linkup-app/feed-engine/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLike(like *models.Like) error
	DeleteLike(postID string, userID uint) error
	GetAllLikes() ([]models.Like, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// CreateLike creates a new like in PostgreSQL
func (r *PostgresLikeRepository) CreateLike(like *models.Like) error {
	return r.db.Create(like).Error
}

// DeleteLike deletes a like from PostgreSQL, keyed by the (post, user) pair.
// Hard delete: a soft-deleted row would still occupy the pair's unique index
// and block the next toggle-on.
func (r *PostgresLikeRepository) DeleteLike(postID string, userID uint) error {
	res := r.db.Unscoped().Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("like not found")
	}
	return nil
}

// GetAllLikes retrieves the full like table from PostgreSQL. Fetched once at
// session start; per-post like state is derived locally from this set.
func (r *PostgresLikeRepository) GetAllLikes() ([]models.Like, error) {
	var likes []models.Like
	if err := r.db.Find(&likes).Error; err != nil {
		return nil, err
	}
	return likes, nil
}
