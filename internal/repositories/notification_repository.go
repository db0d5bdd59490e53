package repositories

import (
	"github.com/linkup-app/feed-engine/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations.
// The feed engine only ever writes notifications; reading them back belongs
// to the notifications screen.
type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	GetByReceiverID(receiverID uint, limit int) ([]models.Notification, error)
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotification(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

func (r *postgresNotificationRepository) GetByReceiverID(receiverID uint, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where("receiver_id = ?", receiverID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}
