package models

import "time"

// Notification is a PostgreSQL row telling ReceiverID that SenderID acted on
// their content. Write-only from the engine's perspective; the notifications
// screen reads it through its own service.
type Notification struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Title      string    `json:"title"`
	ReceiverID uint      `json:"receiver_id" gorm:"index"`
	SenderID   uint      `json:"sender_id" gorm:"index"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`
}
