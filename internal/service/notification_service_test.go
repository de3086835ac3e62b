package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketdesk/internal/dto"
	"ticketdesk/internal/model"
	"ticketdesk/internal/repository"
	"ticketdesk/pkg/constants"
	pkgErrors "ticketdesk/pkg/errors"
	"ticketdesk/pkg/utils"
)

func TestMarkAsRead_OwnershipEnforced(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(repository.NewNotificationRepository(db))
	owner := createTestUser(t, db, "owner", constants.RoleUser, nil, nil)
	intruder := createTestUser(t, db, "intruder", constants.RoleUser, nil, nil)

	notification := &model.Notification{
		UserID:  owner.ID,
		Title:   "New Comment",
		Message: "someone added a comment",
		Type:    constants.NotificationCommentAdded,
	}
	require.NoError(t, db.Create(notification).Error)

	err := svc.MarkAsRead(intruder.ID, notification.ID)
	assertErrCode(t, err, pkgErrors.CodeForbidden)

	var reloaded model.Notification
	require.NoError(t, db.First(&reloaded, "id = ?", notification.ID).Error)
	assert.False(t, reloaded.IsRead)

	require.NoError(t, svc.MarkAsRead(owner.ID, notification.ID))
	require.NoError(t, db.First(&reloaded, "id = ?", notification.ID).Error)
	assert.True(t, reloaded.IsRead)
	assert.NotNil(t, reloaded.ReadAt)
}

func TestDeleteNotification_OwnershipEnforced(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(repository.NewNotificationRepository(db))
	owner := createTestUser(t, db, "owner", constants.RoleUser, nil, nil)
	intruder := createTestUser(t, db, "intruder", constants.RoleUser, nil, nil)

	notification := &model.Notification{
		UserID:  owner.ID,
		Title:   "New Ticket Assigned",
		Message: "assigned",
		Type:    constants.NotificationTicketAssigned,
	}
	require.NoError(t, db.Create(notification).Error)

	err := svc.Delete(intruder.ID, notification.ID)
	assertErrCode(t, err, pkgErrors.CodeForbidden)

	require.NoError(t, svc.Delete(owner.ID, notification.ID))
	var count int64
	require.NoError(t, db.Model(&model.Notification{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGetUserNotifications_Pagination(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(repository.NewNotificationRepository(db))
	user := createTestUser(t, db, "reader", constants.RoleUser, nil, nil)

	for i := 0; i < 25; i++ {
		require.NoError(t, db.Create(&model.Notification{
			UserID:  user.ID,
			Title:   "New Comment",
			Message: fmt.Sprintf("comment %d", i),
			Type:    constants.NotificationCommentAdded,
		}).Error)
	}

	page1, total, err := svc.GetUserNotifications(user.ID, &dto.ListNotificationsQuery{
		PageQuery: dto.PageQuery{Page: 1, Limit: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	assert.Len(t, page1.Items, 10)
	assert.Equal(t, int64(25), page1.UnreadCount)

	pagination := utils.NewPagination(total, 1, 10)
	assert.Equal(t, 3, pagination.TotalPages)
	assert.True(t, pagination.HasNext)
	assert.False(t, pagination.HasPrev)

	page3, _, err := svc.GetUserNotifications(user.ID, &dto.ListNotificationsQuery{
		PageQuery: dto.PageQuery{Page: 3, Limit: 10},
	})
	require.NoError(t, err)
	assert.Len(t, page3.Items, 5)

	pagination = utils.NewPagination(total, 3, 10)
	assert.False(t, pagination.HasNext)
	assert.True(t, pagination.HasPrev)
}

func TestMarkAllAsRead(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(repository.NewNotificationRepository(db))
	user := createTestUser(t, db, "reader", constants.RoleUser, nil, nil)

	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&model.Notification{
			UserID:  user.ID,
			Title:   "Mentioned in Ticket",
			Message: "mention",
			Type:    constants.NotificationMention,
		}).Error)
	}

	affected, err := svc.MarkAllAsRead(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), affected)

	count, err := svc.GetUnreadCount(user.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	// 已读后再次批量操作不影响任何行
	affected, err = svc.MarkAllAsRead(user.ID)
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestGetUserNotifications_Filters(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(repository.NewNotificationRepository(db))
	user := createTestUser(t, db, "reader", constants.RoleUser, nil, nil)

	require.NoError(t, db.Create(&model.Notification{
		UserID: user.ID, Title: "a", Message: "a", Type: constants.NotificationMention,
	}).Error)
	require.NoError(t, db.Create(&model.Notification{
		UserID: user.ID, Title: "b", Message: "b", Type: constants.NotificationCommentAdded, IsRead: true,
	}).Error)

	unread := false
	result, total, err := svc.GetUserNotifications(user.ID, &dto.ListNotificationsQuery{IsRead: &unread})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, result.Items, 1)
	assert.Equal(t, constants.NotificationMention, result.Items[0].Type)

	_, total, err = svc.GetUserNotifications(user.ID, &dto.ListNotificationsQuery{Type: constants.NotificationCommentAdded})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
