package model

// Relationship 工单关联, (ticket_id, related_ticket_id, relationship_type)三元组唯一
type Relationship struct {
	BaseModel
	TicketID         string `gorm:"type:char(36);not null;uniqueIndex:uk_relationships" json:"ticket_id"`
	RelatedTicketID  string `gorm:"type:char(36);not null;uniqueIndex:uk_relationships" json:"related_ticket_id"`
	RelationshipType string `gorm:"type:varchar(32);not null;uniqueIndex:uk_relationships" json:"relationship_type"`
	CreatedBy        string `gorm:"type:char(36);not null" json:"created_by"`
}

func (Relationship) TableName() string {
	return "relationships"
}
