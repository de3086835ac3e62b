package model

import "time"

// Notification 用户通知
type Notification struct {
	BaseModel
	UserID            string     `gorm:"type:char(36);not null;index" json:"user_id"`
	Title             string     `gorm:"type:varchar(255);not null" json:"title"`
	Message           string     `gorm:"type:text;not null" json:"message"`
	Type              string     `gorm:"type:varchar(32);not null;index" json:"type"`
	RelatedEntityType *string    `gorm:"type:varchar(32)" json:"related_entity_type,omitempty"`
	RelatedEntityID   *string    `gorm:"type:char(36)" json:"related_entity_id,omitempty"`
	IsRead            bool       `gorm:"not null;default:false;index" json:"is_read"`
	ReadAt            *time.Time `json:"read_at,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}
