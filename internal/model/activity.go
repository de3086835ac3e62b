package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Activity 工单活动记录, 追加写入, 应用层不做更新和删除
type Activity struct {
	ID           string         `gorm:"type:char(36);primaryKey" json:"id"`
	TicketID     string         `gorm:"type:char(36);not null;index" json:"ticket_id"`
	UserID       string         `gorm:"type:char(36);not null" json:"user_id"`
	ActivityType string         `gorm:"type:varchar(32);not null" json:"activity_type"`
	OldValue     datatypes.JSON `json:"old_value,omitempty"`
	NewValue     datatypes.JSON `json:"new_value,omitempty"`
	Description  string         `gorm:"type:varchar(512);not null" json:"description"`
	CreatedAt    time.Time      `gorm:"not null;autoCreateTime;index" json:"created_at"`
}

func (Activity) TableName() string {
	return "ticket_activities"
}

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
