package dto

// CreateProjectRequest 创建项目请求
type CreateProjectRequest struct {
	Name        string  `json:"name" binding:"required,max=128"`
	Description *string `json:"description"`
	TeamID      *string `json:"team_id" binding:"omitempty,uuid"`
}

// UpdateProjectRequest 更新项目请求
type UpdateProjectRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=128"`
	Description *string `json:"description"`
	TeamID      *string `json:"team_id" binding:"omitempty,uuid"`
	IsActive    *bool   `json:"is_active"`
}

// AddProjectMemberRequest 添加项目成员请求
type AddProjectMemberRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}
