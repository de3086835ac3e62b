package model

// User 用户
// 角色决定归属范围: SUPER_ADMIN无范围要求; ORG_ADMIN归属一个组织;
// TEAM_LEAD和USER归属组织下的一个团队
type User struct {
	BaseModel
	Name           string  `gorm:"type:varchar(128);not null" json:"name"`
	Email          string  `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Password       string  `gorm:"type:varchar(255);not null" json:"-"`
	Role           string  `gorm:"type:varchar(32);not null;default:USER;index" json:"role"`
	OrganizationID *string `gorm:"type:char(36);index" json:"organization_id,omitempty"`
	TeamID         *string `gorm:"type:char(36);index" json:"team_id,omitempty"`
	IsActive       bool    `gorm:"not null;default:true" json:"is_active"`
	Phone          *string `gorm:"type:varchar(32)" json:"phone,omitempty"`
	Designation    *string `gorm:"type:varchar(128)" json:"designation,omitempty"`
	Department     *string `gorm:"type:varchar(128)" json:"department,omitempty"`
	Bio            *string `gorm:"type:text" json:"bio,omitempty"`
}

func (User) TableName() string {
	return "users"
}
