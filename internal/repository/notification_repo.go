package repository

import (
	"time"

	"gorm.io/gorm"

	"ticketdesk/internal/dto"
	"ticketdesk/internal/model"
	pkgErrors "ticketdesk/pkg/errors"
)

type NotificationRepository interface {
	Create(notification *model.Notification) error
	FindByID(id string) (*model.Notification, error)
	ListByUserID(userID string, query *dto.ListNotificationsQuery) ([]*model.Notification, int64, error)
	MarkAsRead(id string, readAt time.Time) error
	MarkAllAsRead(userID string, readAt time.Time) (int64, error)
	CountUnread(userID string) (int64, error)
	Delete(id string) error
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(notification *model.Notification) error {
	if err := r.db.Create(notification).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "创建通知失败", err)
	}
	return nil
}

func (r *notificationRepository) FindByID(id string) (*model.Notification, error) {
	var notification model.Notification
	err := r.db.First(&notification, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgErrors.New(pkgErrors.CodeNotFound, "通知不存在")
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "查询通知失败", err)
	}
	return &notification, nil
}

func (r *notificationRepository) ListByUserID(userID string, query *dto.ListNotificationsQuery) ([]*model.Notification, int64, error) {
	db := r.db.Model(&model.Notification{}).Where("user_id = ?", userID)

	if query.IsRead != nil {
		db = db.Where("is_read = ?", *query.IsRead)
	}
	if query.Type != "" {
		db = db.Where("type = ?", query.Type)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, pkgErrors.Wrap(pkgErrors.CodeInternalError, "统计通知失败", err)
	}

	var notifications []*model.Notification
	err := db.Order("created_at DESC").
		Limit(query.GetLimit()).Offset(query.GetOffset()).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, pkgErrors.Wrap(pkgErrors.CodeInternalError, "查询通知列表失败", err)
	}
	return notifications, total, nil
}

func (r *notificationRepository) MarkAsRead(id string, readAt time.Time) error {
	err := r.db.Model(&model.Notification{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_read": true, "read_at": readAt}).Error
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "标记已读失败", err)
	}
	return nil
}

// MarkAllAsRead 批量已读, read_at统一取同一时间戳
func (r *notificationRepository) MarkAllAsRead(userID string, readAt time.Time) (int64, error) {
	result := r.db.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": readAt})
	if result.Error != nil {
		return 0, pkgErrors.Wrap(pkgErrors.CodeInternalError, "批量标记已读失败", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *notificationRepository) CountUnread(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, pkgErrors.Wrap(pkgErrors.CodeInternalError, "统计未读通知失败", err)
	}
	return count, nil
}

func (r *notificationRepository) Delete(id string) error {
	if err := r.db.Delete(&model.Notification{}, "id = ?", id).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "删除通知失败", err)
	}
	return nil
}
