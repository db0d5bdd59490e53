package engine

import (
	"log"

	"github.com/linkup-app/feed-engine/internal/models"
	"github.com/linkup-app/feed-engine/internal/repositories"
)

// NotificationDispatcher fires best-effort notification records on qualifying
// like and comment events. Dispatch failures are logged and swallowed: they
// never roll back or fail the action that triggered them, and are not retried.
type NotificationDispatcher struct {
	notificationRepository repositories.NotificationRepository
}

// NewNotificationDispatcher creates a new NotificationDispatcher
func NewNotificationDispatcher(notificationRepo repositories.NotificationRepository) *NotificationDispatcher {
	return &NotificationDispatcher{notificationRepository: notificationRepo}
}

// Dispatch inserts a notification record addressed to receiverID. Self
// notifications are never written; callers already skip them, this guard is
// the invariant's last line.
func (d *NotificationDispatcher) Dispatch(title string, receiverID, senderID uint) {
	if receiverID == senderID {
		return
	}
	notification := &models.Notification{
		Title:      title,
		ReceiverID: receiverID,
		SenderID:   senderID,
	}
	if err := d.notificationRepository.CreateNotification(notification); err != nil {
		log.Printf("Failed to dispatch notification to user %d: %v", receiverID, err)
	}
}
