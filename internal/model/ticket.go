package model

import "time"

// Ticket 工单
// 状态离开CREATED的变更仅限报告人或管理员层级角色
type Ticket struct {
	BaseModel
	ProjectID              string     `gorm:"type:char(36);not null;index" json:"project_id"`
	Type                   string     `gorm:"type:varchar(32);not null;default:TASK" json:"type"`
	Title                  string     `gorm:"type:varchar(255);not null" json:"title"`
	Description            *string    `gorm:"type:text" json:"description,omitempty"`
	Module                 *string    `gorm:"type:varchar(128)" json:"module,omitempty"`
	ReporterID             string     `gorm:"type:char(36);not null;index" json:"reporter_id"`
	AssigneeID             *string    `gorm:"type:char(36);index" json:"assignee_id,omitempty"`
	BranchName             *string    `gorm:"type:varchar(255)" json:"branch_name,omitempty"`
	Scenario               *string    `gorm:"type:text" json:"scenario,omitempty"`
	StartDate              *time.Time `json:"start_date,omitempty"`
	DueDate                *time.Time `gorm:"index" json:"due_date,omitempty"`
	DurationHours          *float64   `json:"duration_hours,omitempty"`
	BreachThresholdMinutes *int       `json:"breach_threshold_minutes,omitempty"`
	Status                 string     `gorm:"type:varchar(32);not null;default:CREATED;index" json:"status"`
	Priority               string     `gorm:"type:varchar(32);not null;default:MEDIUM;index" json:"priority"`
	IsBreached             bool       `gorm:"not null;default:false" json:"is_breached"`
	LastBreachNotifiedAt   *time.Time `json:"last_breach_notified_at,omitempty"`
}

func (Ticket) TableName() string {
	return "tickets"
}
