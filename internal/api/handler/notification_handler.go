package handler

import (
	"github.com/gin-gonic/gin"

	"ticketdesk/internal/dto"
	"ticketdesk/internal/service"
	"ticketdesk/pkg/utils"
)

type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// List 当前用户通知列表, 附带未读数
// @Summary 通知列表
// @Tags Notification
// @Produce json
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Param is_read query bool false "已读过滤"
// @Param type query string false "类型过滤"
// @Success 200 {object} utils.Response{data=dto.NotificationListResponse}
// @Router /api/v1/notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	var query dto.ListNotificationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.ValidationError(c, err)
		return
	}

	result, total, err := h.notificationService.GetUserNotifications(currentUser(c).ID, &query)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.PageSuccess(c, result, utils.NewPagination(total, query.GetPage(), query.GetLimit()))
}

// UnreadCount 未读通知数
// @Summary 未读通知数
// @Tags Notification
// @Produce json
// @Success 200 {object} utils.Response{data=int64}
// @Router /api/v1/notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.notificationService.GetUnreadCount(currentUser(c).ID)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, gin.H{"unread_count": count})
}

// MarkAsRead 标记单条通知已读
// @Summary 标记通知已读
// @Tags Notification
// @Produce json
// @Param id path string true "通知ID"
// @Success 200 {object} utils.Response
// @Router /api/v1/notifications/{id}/read [put]
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ValidationError(c, err)
		return
	}

	if err := h.notificationService.MarkAsRead(currentUser(c).ID, param.ID); err != nil {
		utils.Error(c, err)
		return
	}

	utils.SuccessWithMessage(c, "已标记为已读", nil)
}

// MarkAllAsRead 全部标记已读
// @Summary 全部标记已读
// @Tags Notification
// @Produce json
// @Success 200 {object} utils.Response
// @Router /api/v1/notifications/read-all [put]
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	affected, err := h.notificationService.MarkAllAsRead(currentUser(c).ID)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, gin.H{"affected": affected})
}

// Delete 删除通知
// @Summary 删除通知
// @Tags Notification
// @Produce json
// @Param id path string true "通知ID"
// @Success 200 {object} utils.Response
// @Router /api/v1/notifications/{id} [delete]
func (h *NotificationHandler) Delete(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ValidationError(c, err)
		return
	}

	if err := h.notificationService.Delete(currentUser(c).ID, param.ID); err != nil {
		utils.Error(c, err)
		return
	}

	utils.SuccessWithMessage(c, "通知已删除", nil)
}
