package dto

import "ticketdesk/internal/model"

// ListNotificationsQuery 通知列表查询参数
type ListNotificationsQuery struct {
	PageQuery
	IsRead *bool  `form:"is_read"`
	Type   string `form:"type"`
}

// NotificationListResponse 通知列表, 附带未读数
type NotificationListResponse struct {
	Items       []*model.Notification `json:"items"`
	UnreadCount int64                 `json:"unread_count"`
}
