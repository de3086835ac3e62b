package model

// Tag 标签
type Tag struct {
	BaseModel
	Name        string  `gorm:"type:varchar(64);not null;uniqueIndex" json:"name"`
	Color       string  `gorm:"type:varchar(16);not null;default:#3B82F6" json:"color"`
	Description *string `gorm:"type:text" json:"description,omitempty"`
}

func (Tag) TableName() string {
	return "tags"
}

// TicketTag 工单标签关联, 唯一约束兜底并发重复绑定
type TicketTag struct {
	BaseModel
	TicketID string `gorm:"type:char(36);not null;uniqueIndex:uk_ticket_tags" json:"ticket_id"`
	TagID    string `gorm:"type:char(36);not null;uniqueIndex:uk_ticket_tags" json:"tag_id"`
}

func (TicketTag) TableName() string {
	return "ticket_tags"
}
