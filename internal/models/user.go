package models

import "gorm.io/gorm"

// User is an account row in PostgreSQL. The engine only reads users; account
// lifecycle is owned by the auth backend.
type User struct {
	gorm.Model  `json:"-"`
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name"`
	Image       string `json:"image,omitempty"`
	FirebaseUID string `json:"firebase_uid,omitempty" gorm:"uniqueIndex"` // Link to Firebase User UID
}

// UserCompact is the author projection embedded in feed posts and comments.
type UserCompact struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// ToCompact returns the embeddable projection of the user.
func (u *User) ToCompact() UserCompact {
	return UserCompact{ID: u.ID, Name: u.Name, Image: u.Image}
}
