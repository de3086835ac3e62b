package model

// Team 团队, 归属于一个组织(历史数据允许为空)
type Team struct {
	BaseModel
	Name           string  `gorm:"type:varchar(128);not null;uniqueIndex:uk_teams_org_name" json:"name"`
	OrganizationID *string `gorm:"type:char(36);uniqueIndex:uk_teams_org_name;index" json:"organization_id,omitempty"`
	Description    *string `gorm:"type:text" json:"description,omitempty"`
	IsActive       bool    `gorm:"not null;default:true" json:"is_active"`
}

func (Team) TableName() string {
	return "teams"
}
