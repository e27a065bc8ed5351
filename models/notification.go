package models

import "time"

// Notification belongs to one user. Only the read flag changes after creation.
type Notification struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UserID    string    `gorm:"size:128;not null;index:idx_notifications_user_read,priority:1" json:"userId"`
	Type      string    `gorm:"size:64;not null" json:"type"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Link      string    `gorm:"size:512" json:"link,omitempty"`
	Read      bool      `gorm:"default:false;not null;index:idx_notifications_user_read,priority:2" json:"read"`
}
