package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"ticketdesk/internal/dto"
	"ticketdesk/internal/pkg/upload"
	"ticketdesk/internal/service"
	pkgErrors "ticketdesk/pkg/errors"
	"ticketdesk/pkg/utils"
)

type TicketHandler struct {
	ticketService   service.TicketService
	activityService service.ActivityService
}

func NewTicketHandler(ticketService service.TicketService, activityService service.ActivityService) *TicketHandler {
	return &TicketHandler{
		ticketService:   ticketService,
		activityService: activityService,
	}
}

// List 工单列表
// @Summary 工单列表
// @Tags Ticket
// @Produce json
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Param project_id query string false "项目过滤"
// @Param status query string false "状态过滤"
// @Param priority query string false "优先级过滤"
// @Param type query string false "类型过滤"
// @Param assignee_id query string false "指派人过滤"
// @Param is_breached query bool false "SLA超时过滤"
// @Param search query string false "按标题搜索"
// @Success 200 {object} utils.Response{data=[]dto.TicketResponse}
// @Router /api/v1/tickets [get]
func (h *TicketHandler) List(c *gin.Context) {
	var query dto.ListTicketsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.ValidationError(c, err)
		return
	}

	tickets, total, err := h.ticketService.List(currentUser(c), &query)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.PageSuccess(c, tickets, utils.NewPagination(total, query.GetPage(), query.GetLimit()))
}

// Get 工单详情, 含标签/关注人/评论/活动/关联/工时
// @Summary 工单详情
// @Tags Ticket
// @Produce json
// @Param id path string true "工单ID"
// @Success 200 {object} utils.Response{data=dto.TicketDetailResponse}
// @Router /api/v1/tickets/{id} [get]
func (h *TicketHandler) Get(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ValidationError(c, err)
		return
	}

	detail, err := h.ticketService.GetByID(currentUser(c), param.ID)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, detail)
}

// Create 创建工单
// @Summary 创建工单
// @Tags Ticket
// @Accept json
// @Produce json
// @Param request body dto.CreateTicketRequest true "创建工单请求"
// @Success 200 {object} utils.Response{data=model.Ticket}
// @Router /api/v1/tickets [post]
func (h *TicketHandler) Create(c *gin.Context) {
	var req dto.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationError(c, err)
		return
	}

	ticket, err := h.ticketService.Create(currentUser(c), &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, ticket)
}

// Update 更新工单, 变更字段逐项记入活动流
// @Summary 更新工单
// @Tags Ticket
// @Accept json
// @Produce json
// @Param id path string true "工单ID"
// @Param request body dto.UpdateTicketRequest true "更新工单请求"
// @Success 200 {object} utils.Response{data=dto.TicketResponse}
// @Router /api/v1/tickets/{id} [put]
func (h *TicketHandler) Update(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ValidationError(c, err)
		return
	}

	var req dto.UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationError(c, err)
		return
	}

	ticket, err := h.ticketService.Update(currentUser(c), param.ID, &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, ticket)
}

// Delete 删除工单
// @Summary 删除工单
// @Tags Ticket
// @Produce json
// @Param id path string true "工单ID"
// @Success 200 {object} utils.Response
// @Router /api/v1/tickets/{id} [delete]
func (h *TicketHandler) Delete(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ValidationError(c, err)
		return
	}

	if err := h.ticketService.Delete(currentUser(c), param.ID); err != nil {
		utils.Error(c, err)
		return
	}

	utils.SuccessWithMessage(c, "工单已删除", nil)
}

// AddComment 添加评论, 支持multipart附件上传
// @Summary 添加评论
// @Tags Ticket
// @Accept json
// @Accept mpfd
// @Produce json
// @Param id path string true "工单ID"
// @Param request body dto.AddCommentRequest true "评论请求"
// @Success 200 {object} utils.Response{data=model.Comment}
// @Router /api/v1/tickets/{id}/comments [post]
func (h *TicketHandler) AddComment(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ValidationError(c, err)
		return
	}

	var req dto.AddCommentRequest
	var attachmentPath *string

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.ShouldBind(&req); err != nil {
			utils.ValidationError(c, err)
			return
		}
		file, err := c.FormFile("attachment")
		if err == nil && file != nil {
			if err := upload.Validate(file); err != nil {
				utils.Error(c, err)
				return
			}
			diskPath, relPath, err := upload.BuildPath(file.Filename)
			if err != nil {
				utils.Error(c, err)
				return
			}
			if err := c.SaveUploadedFile(file, diskPath); err != nil {
				utils.Error(c, pkgErrors.Wrap(pkgErrors.CodeInternalError, "附件保存失败", err))
				return
			}
			attachmentPath = &relPath
		}
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.ValidationError(c, err)
			return
		}
	}

	comment, err := h.ticketService.AddComment(currentUser(c), param.ID, &req, attachmentPath)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, comment)
}

// Activities 工单活动流, 按时间倒序
// @Summary 工单活动流
// @Tags Ticket
// @Produce json
// @Param id path string true "工单ID"
// @Success 200 {object} utils.Response{data=[]dto.ActivityResponse}
// @Router /api/v1/tickets/{id}/activities [get]
func (h *TicketHandler) Activities(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ValidationError(c, err)
		return
	}

	activities, err := h.activityService.GetTicketActivities(param.ID)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, activities)
}

// AddTag 绑定标签
// @Summary 工单绑定标签
// @Tags Ticket
// @Accept json
// @Produce json
// @Param id path string true "工单ID"
// @Param request body dto.AddTagToTicketRequest true "绑定标签请求"
// @Success 200 {object} utils.Response
// @Router /api/v1/tickets/{id}/tags [post]
func (h *TicketHandler) AddTag(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ValidationError(c, err)
		return
	}

	var req dto.AddTagToTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationError(c, err)
		return
	}

	if err := h.ticketService.AddTag(currentUser(c), param.ID, req.TagID); err != nil {
		utils.Error(c, err)
		return
	}

	utils.SuccessWithMessage(c, "标签已绑定", nil)
}

// RemoveTag 解绑标签
// @Summary 工单解绑标签
// @Tags Ticket
// @Produce json
// @Param id path string true "工单ID"
// @Param tagId path string true "标签ID"
// @Success 200 {object} utils.Response
// @Router /api/v1/tickets/{id}/tags/{tagId} [delete]
func (h *TicketHandler) RemoveTag(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ValidationError(c, err)
		return
	}

	if err := h.ticketService.RemoveTag(currentUser(c), param.ID, c.Param("tagId")); err != nil {
		utils.Error(c, err)
		return
	}

	utils.SuccessWithMessage(c, "标签已解绑", nil)
}

// AddWatcher 添加关注人
// @Summary 添加关注人
// @Tags Ticket
// @Accept json
// @Produce json
// @Param id path string true "工单ID"
// @Param request body dto.AddWatcherRequest true "添加关注人请求"
// @Success 200 {object} utils.Response
// @Router /api/v1/tickets/{id}/watchers [post]
func (h *TicketHandler) AddWatcher(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ValidationError(c, err)
		return
	}

	var req dto.AddWatcherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationError(c, err)
		return
	}

	if err := h.ticketService.AddWatcher(currentUser(c), param.ID, req.UserID); err != nil {
		utils.Error(c, err)
		return
	}

	utils.SuccessWithMessage(c, "关注人已添加", nil)
}

// RemoveWatcher 移除关注人
// @Summary 移除关注人
// @Tags Ticket
// @Produce json
// @Param id path string true "工单ID"
// @Param userId path string true "用户ID"
// @Success 200 {object} utils.Response
// @Router /api/v1/tickets/{id}/watchers/{userId} [delete]
func (h *TicketHandler) RemoveWatcher(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ValidationError(c, err)
		return
	}

	if err := h.ticketService.RemoveWatcher(currentUser(c), param.ID, c.Param("userId")); err != nil {
		utils.Error(c, err)
		return
	}

	utils.SuccessWithMessage(c, "关注人已移除", nil)
}

// AddRelationship 添加工单关联
// @Summary 添加工单关联
// @Tags Ticket
// @Accept json
// @Produce json
// @Param id path string true "工单ID"
// @Param request body dto.AddRelationshipRequest true "添加关联请求"
// @Success 200 {object} utils.Response{data=model.Relationship}
// @Router /api/v1/tickets/{id}/relationships [post]
func (h *TicketHandler) AddRelationship(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ValidationError(c, err)
		return
	}

	var req dto.AddRelationshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationError(c, err)
		return
	}

	relationship, err := h.ticketService.AddRelationship(currentUser(c), param.ID, &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, relationship)
}

// LogTime 记录工时
// @Summary 记录工时
// @Tags Ticket
// @Accept json
// @Produce json
// @Param id path string true "工单ID"
// @Param request body dto.LogTimeRequest true "记录工时请求"
// @Success 200 {object} utils.Response{data=model.TimeLog}
// @Router /api/v1/tickets/{id}/time-logs [post]
func (h *TicketHandler) LogTime(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ValidationError(c, err)
		return
	}

	var req dto.LogTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationError(c, err)
		return
	}

	timeLog, err := h.ticketService.LogTime(currentUser(c), param.ID, &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, timeLog)
}
