package service

import (
	"time"

	"go.uber.org/zap"

	"ticketdesk/internal/dto"
	"ticketdesk/internal/model"
	"ticketdesk/internal/pkg/logger"
	"ticketdesk/internal/repository"
	pkgErrors "ticketdesk/pkg/errors"
)

type NotificationService interface {
	// Notify 尽力而为地写入一条通知, 失败只记日志, 绝不影响主操作
	Notify(userID, notificationType, title, message string, relatedEntityType, relatedEntityID *string)
	GetUserNotifications(userID string, query *dto.ListNotificationsQuery) (*dto.NotificationListResponse, int64, error)
	MarkAsRead(userID, notificationID string) error
	MarkAllAsRead(userID string) (int64, error)
	GetUnreadCount(userID string) (int64, error)
	Delete(userID, notificationID string) error
}

type notificationService struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

func (s *notificationService) Notify(userID, notificationType, title, message string, relatedEntityType, relatedEntityID *string) {
	notification := &model.Notification{
		UserID:            userID,
		Title:             title,
		Message:           message,
		Type:              notificationType,
		RelatedEntityType: relatedEntityType,
		RelatedEntityID:   relatedEntityID,
	}
	if err := s.repo.Create(notification); err != nil {
		logger.Warn("写入通知失败",
			zap.String("user_id", userID),
			zap.String("type", notificationType),
			zap.Error(err))
	}
}

func (s *notificationService) GetUserNotifications(userID string, query *dto.ListNotificationsQuery) (*dto.NotificationListResponse, int64, error) {
	items, total, err := s.repo.ListByUserID(userID, query)
	if err != nil {
		return nil, 0, err
	}

	unreadCount, err := s.repo.CountUnread(userID)
	if err != nil {
		return nil, 0, err
	}

	return &dto.NotificationListResponse{
		Items:       items,
		UnreadCount: unreadCount,
	}, total, nil
}

// MarkAsRead 标记已读, 只允许操作自己的通知
func (s *notificationService) MarkAsRead(userID, notificationID string) error {
	notification, err := s.repo.FindByID(notificationID)
	if err != nil {
		return err
	}
	if notification.UserID != userID {
		return pkgErrors.ErrForbidden
	}
	return s.repo.MarkAsRead(notificationID, time.Now())
}

func (s *notificationService) MarkAllAsRead(userID string) (int64, error) {
	return s.repo.MarkAllAsRead(userID, time.Now())
}

func (s *notificationService) GetUnreadCount(userID string) (int64, error) {
	return s.repo.CountUnread(userID)
}

func (s *notificationService) Delete(userID, notificationID string) error {
	notification, err := s.repo.FindByID(notificationID)
	if err != nil {
		return err
	}
	if notification.UserID != userID {
		return pkgErrors.ErrForbidden
	}
	return s.repo.Delete(notificationID)
}
