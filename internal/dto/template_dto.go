package dto

// CreateTemplateRequest 创建工单模板请求
type CreateTemplateRequest struct {
	Name               string  `json:"name" binding:"required,max=128"`
	Type               string  `json:"type" binding:"omitempty,oneof=TASK BUG ISSUE SUGGESTION"`
	Priority           string  `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	DefaultTitle       *string `json:"default_title" binding:"omitempty,max=255"`
	DefaultDescription *string `json:"default_description"`
	DefaultModule      *string `json:"default_module"`
	IsShared           *bool   `json:"is_shared"`
}

// UpdateTemplateRequest 更新工单模板请求
type UpdateTemplateRequest struct {
	Name               *string `json:"name" binding:"omitempty,max=128"`
	Type               *string `json:"type" binding:"omitempty,oneof=TASK BUG ISSUE SUGGESTION"`
	Priority           *string `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	DefaultTitle       *string `json:"default_title" binding:"omitempty,max=255"`
	DefaultDescription *string `json:"default_description"`
	DefaultModule      *string `json:"default_module"`
	IsShared           *bool   `json:"is_shared"`
}
