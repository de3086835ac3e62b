package model

import "time"

// TimeLog 工时记录
type TimeLog struct {
	BaseModel
	TicketID    string    `gorm:"type:char(36);not null;index" json:"ticket_id"`
	UserID      string    `gorm:"type:char(36);not null;index" json:"user_id"`
	Hours       float64   `gorm:"not null" json:"hours"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	LoggedDate  time.Time `gorm:"not null" json:"logged_date"`
}

func (TimeLog) TableName() string {
	return "time_logs"
}
