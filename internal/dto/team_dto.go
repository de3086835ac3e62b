package dto

// CreateTeamRequest 创建团队请求
type CreateTeamRequest struct {
	Name           string  `json:"name" binding:"required,max=128"`
	OrganizationID *string `json:"organization_id" binding:"omitempty,uuid"`
	Description    *string `json:"description"`
}

// UpdateTeamRequest 更新团队请求
type UpdateTeamRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=128"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}
