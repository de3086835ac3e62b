package model

// Template 工单模板, 共享模板对所有人可见, 仅创建者可修改
type Template struct {
	BaseModel
	Name               string  `gorm:"type:varchar(128);not null" json:"name"`
	Type               string  `gorm:"type:varchar(32);not null;default:TASK" json:"type"`
	Priority           string  `gorm:"type:varchar(32);not null;default:MEDIUM" json:"priority"`
	DefaultTitle       *string `gorm:"type:varchar(255)" json:"default_title,omitempty"`
	DefaultDescription *string `gorm:"type:text" json:"default_description,omitempty"`
	DefaultModule      *string `gorm:"type:varchar(128)" json:"default_module,omitempty"`
	CreatedBy          string  `gorm:"type:char(36);not null;index" json:"created_by"`
	IsShared           bool    `gorm:"not null;default:false" json:"is_shared"`
}

func (Template) TableName() string {
	return "ticket_templates"
}
