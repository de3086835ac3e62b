package dto

// CreateTagRequest 创建标签请求
type CreateTagRequest struct {
	Name        string  `json:"name" binding:"required,max=64"`
	Color       string  `json:"color" binding:"omitempty,hexcolor"`
	Description *string `json:"description"`
}

// UpdateTagRequest 更新标签请求
type UpdateTagRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=64"`
	Color       *string `json:"color" binding:"omitempty,hexcolor"`
	Description *string `json:"description"`
}
