package dto

// CreateOrganizationRequest 创建组织请求
type CreateOrganizationRequest struct {
	Name        string  `json:"name" binding:"required,max=128"`
	Description *string `json:"description"`
}

// UpdateOrganizationRequest 更新组织请求
type UpdateOrganizationRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=128"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}
