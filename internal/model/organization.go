package model

// Organization 组织, 层级结构的顶层
type Organization struct {
	BaseModel
	Name        string  `gorm:"type:varchar(128);not null;uniqueIndex" json:"name"`
	Description *string `gorm:"type:text" json:"description,omitempty"`
	IsActive    bool    `gorm:"not null;default:true" json:"is_active"`
}

func (Organization) TableName() string {
	return "organizations"
}
