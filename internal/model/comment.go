package model

import "gorm.io/datatypes"

// Comment 工单评论, mentioned_user_ids为被@用户的ID列表
type Comment struct {
	BaseModel
	TicketID         string         `gorm:"type:char(36);not null;index" json:"ticket_id"`
	UserID           string         `gorm:"type:char(36);not null;index" json:"user_id"`
	CommentText      string         `gorm:"type:text;not null" json:"comment_text"`
	MentionedUserIDs datatypes.JSON `json:"mentioned_user_ids,omitempty"`
	AttachmentPath   *string        `gorm:"type:varchar(512)" json:"attachment_path,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}
