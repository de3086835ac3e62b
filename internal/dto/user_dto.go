package dto

// CreateUserRequest 创建用户请求
type CreateUserRequest struct {
	Name           string  `json:"name" binding:"required,max=128"`
	Email          string  `json:"email" binding:"required,email"`
	Password       string  `json:"password" binding:"required,min=6"`
	Role           string  `json:"role" binding:"required,oneof=SUPER_ADMIN ORG_ADMIN TEAM_LEAD USER"`
	OrganizationID *string `json:"organization_id" binding:"omitempty,uuid"`
	TeamID         *string `json:"team_id" binding:"omitempty,uuid"`
	Phone          *string `json:"phone"`
	Designation    *string `json:"designation"`
	Department     *string `json:"department"`
	Bio            *string `json:"bio"`
}

// UpdateUserRequest 更新用户请求
type UpdateUserRequest struct {
	Name           *string `json:"name" binding:"omitempty,max=128"`
	Email          *string `json:"email" binding:"omitempty,email"`
	Password       *string `json:"password" binding:"omitempty,min=6"`
	Role           *string `json:"role" binding:"omitempty,oneof=SUPER_ADMIN ORG_ADMIN TEAM_LEAD USER"`
	OrganizationID *string `json:"organization_id" binding:"omitempty,uuid"`
	TeamID         *string `json:"team_id" binding:"omitempty,uuid"`
	IsActive       *bool   `json:"is_active"`
	Phone          *string `json:"phone"`
	Designation    *string `json:"designation"`
	Department     *string `json:"department"`
	Bio            *string `json:"bio"`
}

// ResetPasswordRequest 重置密码请求
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// ListUsersQuery 用户列表查询参数
type ListUsersQuery struct {
	PageQuery
	Role   string `form:"role" binding:"omitempty,oneof=SUPER_ADMIN ORG_ADMIN TEAM_LEAD USER"`
	TeamID string `form:"team_id" binding:"omitempty,uuid"`
	Search string `form:"search"`
}

// UserResponse 用户信息
type UserResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Role           string  `json:"role"`
	OrganizationID *string `json:"organization_id,omitempty"`
	TeamID         *string `json:"team_id,omitempty"`
	IsActive       bool    `json:"is_active"`
	Phone          *string `json:"phone,omitempty"`
	Designation    *string `json:"designation,omitempty"`
	Department     *string `json:"department,omitempty"`
	Bio            *string `json:"bio,omitempty"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}
