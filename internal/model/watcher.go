package model

// Watcher 工单关注人
type Watcher struct {
	BaseModel
	TicketID string `gorm:"type:char(36);not null;uniqueIndex:uk_watchers" json:"ticket_id"`
	UserID   string `gorm:"type:char(36);not null;uniqueIndex:uk_watchers" json:"user_id"`
}

func (Watcher) TableName() string {
	return "watchers"
}
