package model

import "time"

// RefreshToken 服务端保存的刷新令牌, 登出或过期时删除
type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"type:char(36);not null;index" json:"user_id"`
	Token     string    `gorm:"type:varchar(512);not null;uniqueIndex" json:"token"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}
