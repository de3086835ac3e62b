package dto

import (
	"time"

	"ticketdesk/internal/model"
)

// CreateTicketRequest 创建工单请求
// mentioned_users与tags为可选的附加动作: 提及通知与标签绑定
type CreateTicketRequest struct {
	ProjectID              string     `json:"project_id" binding:"required,uuid"`
	Type                   string     `json:"type" binding:"omitempty,oneof=TASK BUG ISSUE SUGGESTION"`
	Title                  string     `json:"title" binding:"required,max=255"`
	Description            *string    `json:"description"`
	Module                 *string    `json:"module"`
	AssigneeID             string     `json:"assignee_id" binding:"required,uuid"`
	BranchName             *string    `json:"branch_name"`
	Scenario               *string    `json:"scenario"`
	StartDate              *time.Time `json:"start_date"`
	DueDate                *time.Time `json:"due_date"`
	DurationHours          *float64   `json:"duration_hours"`
	BreachThresholdMinutes *int       `json:"breach_threshold_minutes"`
	Priority               string     `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	MentionedUsers         []string   `json:"mentioned_users" binding:"omitempty,dive,uuid"`
	Tags                   []string   `json:"tags" binding:"omitempty,dive,uuid"`
}

// UpdateTicketRequest 更新工单请求
type UpdateTicketRequest struct {
	Type                   *string    `json:"type" binding:"omitempty,oneof=TASK BUG ISSUE SUGGESTION"`
	Title                  *string    `json:"title" binding:"omitempty,max=255"`
	Description            *string    `json:"description"`
	Module                 *string    `json:"module"`
	AssigneeID             *string    `json:"assignee_id" binding:"omitempty,uuid"`
	BranchName             *string    `json:"branch_name"`
	Scenario               *string    `json:"scenario"`
	StartDate              *time.Time `json:"start_date"`
	DueDate                *time.Time `json:"due_date"`
	DurationHours          *float64   `json:"duration_hours"`
	BreachThresholdMinutes *int       `json:"breach_threshold_minutes"`
	Status                 *string    `json:"status" binding:"omitempty,oneof=CREATED IN_PROGRESS DEPENDENCY HOLD SOLVED CLOSED"`
	Priority               *string    `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
}

// ListTicketsQuery 工单列表查询参数
type ListTicketsQuery struct {
	PageQuery
	ProjectID  string `form:"project_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=CREATED IN_PROGRESS DEPENDENCY HOLD SOLVED CLOSED"`
	Priority   string `form:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	Type       string `form:"type" binding:"omitempty,oneof=TASK BUG ISSUE SUGGESTION"`
	Module     string `form:"module"`
	AssigneeID string `form:"assignee_id" binding:"omitempty,uuid"`
	ReporterID string `form:"reporter_id" binding:"omitempty,uuid"`
	IsBreached *bool  `form:"is_breached"`
	Search     string `form:"search"`
}

// TicketResponse 工单列表项, 附带关联方名称
type TicketResponse struct {
	model.Ticket
	ProjectName   string  `json:"project_name"`
	ReporterName  string  `json:"reporter_name"`
	ReporterEmail string  `json:"reporter_email"`
	AssigneeName  *string `json:"assignee_name,omitempty"`
	AssigneeEmail *string `json:"assignee_email,omitempty"`
}

// TicketDetailResponse 工单详情
type TicketDetailResponse struct {
	TicketResponse
	Tags          []*model.Tag          `json:"tags"`
	Watchers      []*model.Watcher      `json:"watchers"`
	Comments      []*CommentResponse    `json:"comments"`
	Activities    []*ActivityResponse   `json:"activities"`
	Relationships []*model.Relationship `json:"relationships"`
	TimeLogs      []*model.TimeLog      `json:"time_logs"`
}

// AddCommentRequest 添加评论请求
type AddCommentRequest struct {
	CommentText    string   `json:"comment_text" form:"comment_text" binding:"required"`
	MentionedUsers []string `json:"mentioned_users" form:"mentioned_users" binding:"omitempty,dive,uuid"`
}

// UpdateCommentRequest 更新评论请求
type UpdateCommentRequest struct {
	CommentText string `json:"comment_text" binding:"required"`
}

// CommentResponse 评论及作者信息
type CommentResponse struct {
	model.Comment
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
}

// ActivityResponse 活动及操作人信息
type ActivityResponse struct {
	model.Activity
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
}

// AddTagToTicketRequest 工单绑定标签请求
type AddTagToTicketRequest struct {
	TagID string `json:"tag_id" binding:"required,uuid"`
}

// AddWatcherRequest 添加关注人请求
type AddWatcherRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

// AddRelationshipRequest 添加工单关联请求
type AddRelationshipRequest struct {
	RelatedTicketID  string `json:"related_ticket_id" binding:"required,uuid"`
	RelationshipType string `json:"relationship_type" binding:"required,oneof=BLOCKS BLOCKED_BY DUPLICATE RELATES_TO PARENT CHILD"`
}

// LogTimeRequest 记录工时请求
type LogTimeRequest struct {
	Hours       float64    `json:"hours" binding:"required,gt=0"`
	Description *string    `json:"description"`
	LoggedDate  *time.Time `json:"logged_date"`
}
