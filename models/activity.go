package models

import (
	"time"

	"gorm.io/datatypes"
)

// Activity is an immutable entry in a user's activity log.
type Activity struct {
	ID          string            `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt   time.Time         `gorm:"index:idx_activity_user_created,priority:2,sort:desc;not null" json:"createdAt"`
	UserID      string            `gorm:"size:128;not null;index:idx_activity_user_created,priority:1" json:"userId"`
	Type        string            `gorm:"size:64;not null" json:"type"`
	Description string            `gorm:"type:text" json:"description"`
	Metadata    datatypes.JSONMap `json:"metadata,omitempty"`
}

func (Activity) TableName() string { return "activity_log" }
