package model

// Project 项目, organization_id由所属团队推导
type Project struct {
	BaseModel
	Name           string  `gorm:"type:varchar(128);not null" json:"name"`
	Description    *string `gorm:"type:text" json:"description,omitempty"`
	CreatedBy      string  `gorm:"type:char(36);not null;index" json:"created_by"`
	TeamID         *string `gorm:"type:char(36);index" json:"team_id,omitempty"`
	OrganizationID *string `gorm:"type:char(36);index" json:"organization_id,omitempty"`
	IsActive       bool    `gorm:"not null;default:true" json:"is_active"`
}

func (Project) TableName() string {
	return "projects"
}

// ProjectMember 项目成员关联
type ProjectMember struct {
	BaseModel
	ProjectID string `gorm:"type:char(36);not null;uniqueIndex:uk_project_members" json:"project_id"`
	UserID    string `gorm:"type:char(36);not null;uniqueIndex:uk_project_members" json:"user_id"`
}

func (ProjectMember) TableName() string {
	return "project_members"
}
